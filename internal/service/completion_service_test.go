package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-copilot-be/internal/config"
	"ai-copilot-be/internal/dto"
	"ai-copilot-be/internal/entity"
)

type fakePublisher struct {
	events [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	f.events = append(f.events, payload)
	return nil
}

type fakeAuditRepo struct {
	created []*entity.CompletionAudit
	stats   entity.CompletionStats
}

func (f *fakeAuditRepo) Create(_ context.Context, audit *entity.CompletionAudit) error {
	f.created = append(f.created, audit)
	return nil
}

func (f *fakeAuditRepo) SummaryByUserId(context.Context, string) (*entity.CompletionStats, error) {
	s := f.stats
	return &s, nil
}

func testCompletionConfig() config.CompletionConfig {
	return config.CompletionConfig{
		MaxBefore:       1200,
		MaxAfter:        400,
		MaxLength:       150,
		Temperature:     0.2,
		MaxTokens:       256,
		Timeout:         5 * time.Second,
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 512,
		ProjectMaxChars: 3000,
		ProjectCacheTTL: 5 * time.Minute,
	}
}

func newTestCompletionService(model *fakeLLM, audits *fakeAuditRepo, pub *fakePublisher) ICompletionService {
	return NewCompletionService(model, audits, pub, nopLogger{}, testCompletionConfig(), "ollama", "test-model")
}

func TestGetCompletionCleansModelOutput(t *testing.T) {
	model := &fakeLLM{response: "```python\nreturn a + b\n```\n\nThis code adds the two arguments."}
	svc := newTestCompletionService(model, &fakeAuditRepo{}, &fakePublisher{})

	res, err := svc.GetCompletion(context.Background(), &dto.CodeCompletionRequest{
		Language: "python",
		UserId:   "u1",
		Context:  dto.CompletionContext{Before: "def add(a, b):\n    "},
	})
	if err != nil {
		t.Fatalf("GetCompletion() error = %v", err)
	}

	if res.Completion != "return a + b" {
		t.Errorf("Completion = %q, want fences and trailing prose stripped", res.Completion)
	}
	if res.Cached {
		t.Error("first request must not report a cache hit")
	}
	if res.Confidence < 0.8 {
		t.Errorf("Confidence = %v, want >= 0.8", res.Confidence)
	}
}

func TestGetCompletionSecondRequestHitsCache(t *testing.T) {
	model := &fakeLLM{response: "return a + b"}
	pub := &fakePublisher{}
	svc := newTestCompletionService(model, &fakeAuditRepo{}, pub)

	req := &dto.CodeCompletionRequest{
		Language: "python",
		UserId:   "u1",
		Context:  dto.CompletionContext{Before: "def add(a, b):\n    "},
	}

	first, err := svc.GetCompletion(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	model.err = errors.New("model must not be called again")
	second, err := svc.GetCompletion(context.Background(), req)
	if err != nil {
		t.Fatalf("GetCompletion() error = %v", err)
	}

	if !second.Cached {
		t.Error("second identical request should be a cache hit")
	}
	if second.Completion != first.Completion {
		t.Errorf("cached completion %q differs from original %q", second.Completion, first.Completion)
	}
	if second.Confidence != 0.9 {
		t.Errorf("hit confidence = %v, want 0.9", second.Confidence)
	}

	if len(pub.events) != 2 {
		t.Fatalf("published %d audit events, want 2", len(pub.events))
	}
	var msg dto.CompletionServedMessage
	if err := json.Unmarshal(pub.events[1], &msg); err != nil {
		t.Fatal(err)
	}
	if !msg.CacheHit {
		t.Error("second audit event should record a cache hit")
	}
}

func TestGetCompletionGenerationFailureDegrades(t *testing.T) {
	model := &fakeLLM{err: errors.New("provider down")}
	pub := &fakePublisher{}
	svc := newTestCompletionService(model, &fakeAuditRepo{}, pub)

	res, err := svc.GetCompletion(context.Background(), &dto.CodeCompletionRequest{
		Language: "go",
		UserId:   "u1",
		Context:  dto.CompletionContext{Before: "func main() {\n\t"},
	})
	if err != nil {
		t.Fatalf("degraded completion must not error, got %v", err)
	}

	if res.Completion != "" || res.Confidence != 0.0 {
		t.Errorf("degraded response = (%q, %v), want empty with zero confidence", res.Completion, res.Confidence)
	}
	if len(pub.events) != 1 {
		t.Error("degraded responses are still audited")
	}
}

func TestGetCompletionContinuesTypedLine(t *testing.T) {
	// The model echoes the typed prefix and adds the continuation.
	model := &fakeLLM{response: "result = a + b"}
	svc := newTestCompletionService(model, &fakeAuditRepo{}, &fakePublisher{})

	res, err := svc.GetCompletion(context.Background(), &dto.CodeCompletionRequest{
		Language: "python",
		UserId:   "u1",
		Mode:     "inline",
		Context:  dto.CompletionContext{Before: "result = a "},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Completion != "+ b" {
		t.Errorf("Completion = %q, want the already-typed prefix removed", res.Completion)
	}
}

func TestGetCompletionPromptTemplateFollowsMode(t *testing.T) {
	model := &fakeLLM{response: "return a + b"}
	svc := newTestCompletionService(model, &fakeAuditRepo{}, &fakePublisher{})

	if _, err := svc.GetCompletion(context.Background(), &dto.CodeCompletionRequest{
		Language: "python",
		UserId:   "u1",
		Mode:     "inline",
		Context:  dto.CompletionContext{Before: "def add(a, b):\n    "},
	}); err != nil {
		t.Fatal(err)
	}
	prompt := model.received[0].Content
	if !strings.Contains(prompt, "Python code completion assistant") {
		t.Errorf("inline prompt missing the terse language instruction:\n%s", prompt)
	}
	if strings.Contains(prompt, "best practices") {
		t.Error("inline prompt should not carry the menu instruction block")
	}

	// Absent mode gets the fuller menu template.
	if _, err := svc.GetCompletion(context.Background(), &dto.CodeCompletionRequest{
		Language: "python",
		UserId:   "u1",
		Context:  dto.CompletionContext{Before: "def sub(a, b):\n    "},
	}); err != nil {
		t.Fatal(err)
	}
	prompt = model.received[0].Content
	if !strings.Contains(prompt, "best practices") {
		t.Errorf("default prompt missing the menu instruction block:\n%s", prompt)
	}
}

func TestGetCompletionUnknownLanguageFallsBack(t *testing.T) {
	model := &fakeLLM{response: "return value"}
	svc := newTestCompletionService(model, &fakeAuditRepo{}, &fakePublisher{})

	res, err := svc.GetCompletion(context.Background(), &dto.CodeCompletionRequest{
		Language: "klingon",
		UserId:   "u1",
		Context:  dto.CompletionContext{Before: "def f():\n    "},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Language != "python" {
		t.Errorf("Language = %q, unknown languages should fall back to python", res.Language)
	}
}

func TestStats(t *testing.T) {
	audits := &fakeAuditRepo{stats: entity.CompletionStats{
		Total:        10,
		CacheHits:    4,
		AvgLatencyMs: 120.5,
	}}
	svc := newTestCompletionService(&fakeLLM{}, audits, &fakePublisher{})

	res, err := svc.Stats(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if res.HitRate != 0.4 {
		t.Errorf("HitRate = %v, want 0.4", res.HitRate)
	}
	if res.AvgLatencyMs != 120.5 {
		t.Errorf("AvgLatencyMs = %v", res.AvgLatencyMs)
	}
}

func TestStatsEmpty(t *testing.T) {
	svc := newTestCompletionService(&fakeLLM{}, &fakeAuditRepo{}, &fakePublisher{})

	res, err := svc.Stats(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if res.HitRate != 0.0 {
		t.Errorf("HitRate = %v, want 0 when there is no traffic", res.HitRate)
	}
}

func TestModelInfo(t *testing.T) {
	svc := newTestCompletionService(&fakeLLM{}, &fakeAuditRepo{}, &fakePublisher{})

	info := svc.ModelInfo()
	if info.Provider != "ollama" || info.Model != "test-model" {
		t.Errorf("ModelInfo() = %+v", info)
	}
	if len(info.SupportedLanguages) == 0 {
		t.Error("SupportedLanguages should not be empty")
	}
}
