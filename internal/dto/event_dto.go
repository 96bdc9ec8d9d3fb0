package dto

// CompletionServedMessage is the event payload published after a completion
// response is returned, consumed asynchronously into the audit table.
type CompletionServedMessage struct {
	UserId     string  `json:"user_id"`
	Language   string  `json:"language"`
	Mode       string  `json:"mode"`
	CacheHit   bool    `json:"cache_hit"`
	Confidence float64 `json:"confidence"`
	LatencyMs  int64   `json:"latency_ms"`
}
