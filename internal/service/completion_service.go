package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ai-copilot-be/internal/config"
	"ai-copilot-be/internal/dto"
	"ai-copilot-be/internal/pkg/logger"
	"ai-copilot-be/internal/repository/contract"
	"ai-copilot-be/pkg/completion"
	compcache "ai-copilot-be/pkg/completion/cache"
	"ai-copilot-be/pkg/completion/language"
	"ai-copilot-be/pkg/completion/postprocess"
	"ai-copilot-be/pkg/completion/prompt"
	"ai-copilot-be/pkg/llm"
)

// ICompletionService serves editor code completions: cache lookup first,
// otherwise prompt the model and clean up whatever comes back. Generation
// failures degrade to an empty completion, never an error response.
type ICompletionService interface {
	GetCompletion(ctx context.Context, request *dto.CodeCompletionRequest) (*dto.CodeCompletionResponse, error)
	Stats(ctx context.Context, userId string) (*dto.CompletionStatsResponse, error)
	ModelInfo() *dto.ModelInfoResponse
}

type completionService struct {
	llmProvider   llm.LLMProvider
	auditRepo     contract.CompletionAuditRepository
	publisher     IPublisherService
	logger        logger.ILogger
	cfg           config.CompletionConfig
	cache         *compcache.Cache
	promptBuilder *prompt.Builder
	projectLoader *prompt.ProjectContextLoader
	providerName  string
	modelName     string
}

func NewCompletionService(
	llmProvider llm.LLMProvider,
	auditRepo contract.CompletionAuditRepository,
	publisher IPublisherService,
	log logger.ILogger,
	cfg config.CompletionConfig,
	providerName, modelName string,
) ICompletionService {
	return &completionService{
		llmProvider:   llmProvider,
		auditRepo:     auditRepo,
		publisher:     publisher,
		logger:        log,
		cfg:           cfg,
		cache:         compcache.New(cfg.CacheTTL, cfg.CacheMaxEntries),
		promptBuilder: prompt.NewBuilder(cfg.MaxBefore, cfg.MaxAfter),
		projectLoader: prompt.NewProjectContextLoader(cfg.ProjectMaxChars, cfg.ProjectCacheTTL),
		providerName:  providerName,
		modelName:     modelName,
	}
}

func (s *completionService) GetCompletion(ctx context.Context, request *dto.CodeCompletionRequest) (*dto.CodeCompletionResponse, error) {
	start := time.Now()

	mode := completion.ParseMode(request.Mode)
	lang := language.Lookup(request.Language)
	key := compcache.Key(lang.Name, string(mode), request.Context.Before, request.Context.After, request.FilePath)

	if cached, hit := s.cache.Get(key); hit {
		resp := &dto.CodeCompletionResponse{
			Completion:       cached,
			Language:         lang.Name,
			Confidence:       completion.HitConfidence,
			Cached:           true,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		}
		s.publishServed(ctx, request.UserId, lang.Name, mode, resp)
		return resp, nil
	}

	projectContext := s.projectLoader.Load(request.FilePath)
	promptText := s.promptBuilder.Build(lang, mode, request.Context.Before, request.Context.After, projectContext)

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	raw, err := s.llmProvider.Generate(genCtx, promptText,
		llm.WithTemperature(s.cfg.Temperature),
		llm.WithMaxTokens(s.cfg.MaxTokens),
	)
	if err != nil {
		// The editor polls constantly; an empty low-confidence result is the
		// degraded answer, not a 5xx.
		s.logger.Warn("CompletionService", "Generation failed", map[string]interface{}{
			"language": lang.Name,
			"error":    err.Error(),
		})
		resp := &dto.CodeCompletionResponse{
			Completion:       "",
			Language:         lang.Name,
			Confidence:       0.0,
			Cached:           false,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		}
		s.publishServed(ctx, request.UserId, lang.Name, mode, resp)
		return resp, nil
	}

	cleaned := postprocess.Clean(raw, request.Context.Before, lang.Name, s.cfg.MaxLength)
	latency := time.Since(start)

	if len(strings.TrimSpace(cleaned)) > 2 {
		s.cache.Put(key, cleaned)
	}

	resp := &dto.CodeCompletionResponse{
		Completion:       cleaned,
		Language:         lang.Name,
		Confidence:       completion.Score(cleaned, mode, latency),
		Cached:           false,
		ProcessingTimeMs: latency.Milliseconds(),
	}
	s.publishServed(ctx, request.UserId, lang.Name, mode, resp)
	return resp, nil
}

// publishServed emits the audit event. Best-effort: a dropped audit record
// never delays or fails the completion.
func (s *completionService) publishServed(ctx context.Context, userId, lang string, mode completion.Mode, resp *dto.CodeCompletionResponse) {
	payload, err := json.Marshal(dto.CompletionServedMessage{
		UserId:     userId,
		Language:   lang,
		Mode:       string(mode),
		CacheHit:   resp.Cached,
		Confidence: resp.Confidence,
		LatencyMs:  resp.ProcessingTimeMs,
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("CompletionService", "Failed to publish audit event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *completionService) Stats(ctx context.Context, userId string) (*dto.CompletionStatsResponse, error) {
	stats, err := s.auditRepo.SummaryByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	hitRate := 0.0
	if stats.Total > 0 {
		hitRate = float64(stats.CacheHits) / float64(stats.Total)
	}

	return &dto.CompletionStatsResponse{
		UserId:       userId,
		Total:        stats.Total,
		CacheHits:    stats.CacheHits,
		HitRate:      hitRate,
		AvgLatencyMs: stats.AvgLatencyMs,
		CacheEntries: s.cache.Len(),
	}, nil
}

func (s *completionService) ModelInfo() *dto.ModelInfoResponse {
	return &dto.ModelInfoResponse{
		Provider:           s.providerName,
		Model:              s.modelName,
		SupportedLanguages: language.Supported(),
	}
}
