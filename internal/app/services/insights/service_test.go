package insights

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/insight"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/timeaudit"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/config"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

type generatorFunc func(ctx context.Context, system, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

func newService(store *memory.Store, gen TextGenerator) *Service {
	return New(store, store, store, store, gen, nil)
}

func TestGenerateTimeAuditInsight(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	for _, level := range []timeaudit.EnergyLevel{timeaudit.EnergyGreen, timeaudit.EnergyGreen, timeaudit.EnergyRed} {
		if _, err := store.CreateEntry(ctx, timeaudit.Entry{
			UserID:      1,
			Description: "work block",
			EnergyLevel: level,
			DollarValue: 3,
		}); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}

	var gotSystem, gotPrompt string
	svc := newService(store, generatorFunc(func(_ context.Context, system, prompt string) (string, error) {
		gotSystem, gotPrompt = system, prompt
		return "Protect your mornings.", nil
	}))

	in, err := svc.Generate(ctx, 1, "time_audit")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if in.Title != "Time & Energy Audit Insights" {
		t.Fatalf("title = %q", in.Title)
	}
	if in.Content != "Protect your mornings." || in.Category != "time_audit" {
		t.Fatalf("insight = %+v", in)
	}
	if !strings.Contains(gotSystem, "productivity coach") {
		t.Fatalf("system prompt = %q", gotSystem)
	}
	if !strings.Contains(gotPrompt, "Green (energizing) activities: 2") || !strings.Contains(gotPrompt, "$$$") {
		t.Fatalf("prompt missing counts or dollar marks:\n%s", gotPrompt)
	}
}

func TestGenerateGoalAndPatternTitles(t *testing.T) {
	store := memory.New()
	svc := newService(store, generatorFunc(func(context.Context, string, string) (string, error) {
		return "ok", nil
	}))
	ctx := context.Background()

	cases := map[string]string{
		"goal_progress":         "Goal Progress Analysis",
		"productivity_patterns": "Productivity Pattern Analysis",
	}
	for typ, title := range cases {
		in, err := svc.Generate(ctx, 1, typ)
		if err != nil {
			t.Fatalf("generate %s: %v", typ, err)
		}
		if in.Title != title {
			t.Fatalf("%s title = %q, want %q", typ, in.Title, title)
		}
	}
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	svc := newService(memory.New(), generatorFunc(func(context.Context, string, string) (string, error) {
		return "", nil
	}))

	if _, err := svc.Generate(context.Background(), 1, "horoscope"); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGeneratorFailureIsUpstreamAndNotStored(t *testing.T) {
	store := memory.New()
	svc := newService(store, generatorFunc(func(context.Context, string, string) (string, error) {
		return "", stderrors.New("model overloaded")
	}))
	ctx := context.Background()

	if _, err := svc.Generate(ctx, 1, "goal_progress"); !errors.IsCode(err, errors.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	list, err := svc.List(ctx, 1, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected nothing stored on failure, got %v", list)
	}
}

func TestEmptyGenerationFallsBack(t *testing.T) {
	svc := newService(memory.New(), generatorFunc(func(context.Context, string, string) (string, error) {
		return "  ", nil
	}))

	in, err := svc.Generate(context.Background(), 1, "goal_progress")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if in.Content != fallbackContent {
		t.Fatalf("content = %q, want fallback", in.Content)
	}
}

func TestListUnreadAndMarkRead(t *testing.T) {
	store := memory.New()
	svc := newService(store, generatorFunc(func(context.Context, string, string) (string, error) {
		return "ok", nil
	}))
	ctx := context.Background()

	first, err := svc.Generate(ctx, 1, "goal_progress")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.Generate(ctx, 1, "time_audit"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if err := svc.MarkRead(ctx, 1, first.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unread, err := svc.List(ctx, 1, true)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 1 || unread[0].Type != domain.TypeTimeAudit {
		t.Fatalf("unread = %v, want only the unread time_audit insight", unread)
	}

	all, err := svc.List(ctx, 1, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d insights, want 2", len(all))
	}

	// Marking another user's insight is a silent no-op.
	if err := svc.MarkRead(ctx, 2, first.ID); err != nil {
		t.Fatalf("mark read as other user: %v", err)
	}
}

func TestChatGeneratorParsesChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Focus on one goal."}}]}`))
	}))
	defer srv.Close()

	gen := NewChatGenerator(config.TextGenConfig{URL: srv.URL, APIKey: "k", Model: "gpt-4o-mini"})
	got, err := gen.Generate(context.Background(), "system", "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Focus on one goal." {
		t.Fatalf("content = %q", got)
	}
}
