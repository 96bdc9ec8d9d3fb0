package dto

type CompletionContext struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type CodeCompletionRequest struct {
	Language string            `json:"language" validate:"required"`
	Context  CompletionContext `json:"context"`
	FilePath string            `json:"file_path,omitempty"`
	Mode     string            `json:"mode,omitempty" validate:"omitempty,oneof=inline menu"`
	UserId   string            `json:"user_id" validate:"required"`
}

type CodeCompletionResponse struct {
	Completion       string  `json:"completion"`
	Language         string  `json:"language"`
	Confidence       float64 `json:"confidence"`
	Cached           bool    `json:"cached"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
}

type CompletionStatsResponse struct {
	UserId       string  `json:"user_id"`
	Total        int64   `json:"total"`
	CacheHits    int64   `json:"cache_hits"`
	HitRate      float64 `json:"hit_rate"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
	CacheEntries int     `json:"cache_entries"`
}

type ModelInfoResponse struct {
	Provider           string   `json:"provider"`
	Model              string   `json:"model"`
	SupportedLanguages []string `json:"supported_languages"`
}
