package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

const (
	// SessionStatusActive means the session currently lives in the Redis cache.
	SessionStatusActive = "active"
	// SessionStatusArchived means the session exists only in the database.
	SessionStatusArchived = "archived"
	// SessionStatusLoaded means the session was hydrated from the database into the cache.
	SessionStatusLoaded = "loaded"
)

const (
	FlushReasonUserClose   = "user_close"
	FlushReasonSwitchToNew = "switch_to_new"
	FlushReasonManual      = "manual"
)

const (
	// CompletionServedTopic is the in-process event topic for completion audit records.
	CompletionServedTopic = "COMPLETION_SERVED"

	// Context window policies for chat generation.
	ContextPolicyChronological = "chronological"
	ContextPolicyPairs         = "pairs"
)
