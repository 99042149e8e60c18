// Package insights is the procedure layer for generated coaching insights.
// Generation gathers the caller's records for the requested analysis, asks
// the external text generator for advice, and persists the result.
package insights

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/insight"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/timeaudit"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// TextGenerator produces advisory text from a system instruction and a user
// prompt.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

const systemPrompt = "You are a productivity coach analyzing user data. Provide clear, actionable insights."

// fallbackContent is stored when the generator answers with an empty body.
const fallbackContent = "Unable to generate insights at this time."

// Service builds prompts, calls the generator, and persists insights.
type Service struct {
	store     storage.InsightStore
	audits    storage.TimeAuditStore
	goals     storage.GoalStore
	pomodoros storage.PomodoroStore
	gen       TextGenerator
	log       *logger.Logger
}

// New constructs an insights service.
func New(store storage.InsightStore, audits storage.TimeAuditStore, goals storage.GoalStore, pomodoros storage.PomodoroStore, gen TextGenerator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("insights")
	}
	return &Service{store: store, audits: audits, goals: goals, pomodoros: pomodoros, gen: gen, log: log}
}

// Generate runs the requested analysis over the caller's records and persists
// the generated insight. A generator failure surfaces as an upstream error;
// nothing is stored in that case.
func (s *Service) Generate(ctx context.Context, userID int64, insightType string) (domain.Insight, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.Insight{}, err
	}
	typ := domain.Type(insightType)
	if !typ.Valid() {
		return domain.Insight{}, errors.Validationf("type", "type must be time_audit, goal_progress or productivity_patterns, got %q", insightType)
	}

	title, prompt, err := s.buildPrompt(ctx, userID, typ)
	if err != nil {
		return domain.Insight{}, err
	}

	content, err := s.gen.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return domain.Insight{}, errors.Upstream("text generation", err)
	}
	if strings.TrimSpace(content) == "" {
		content = fallbackContent
	}

	in, err := s.store.CreateInsight(ctx, domain.Insight{
		UserID:   userID,
		Type:     typ,
		Title:    title,
		Content:  content,
		Category: string(typ),
	})
	if err != nil {
		return domain.Insight{}, validate.StoreWrite(err)
	}

	s.log.WithField("insight_id", in.ID).WithField("user_id", userID).WithField("type", string(typ)).Info("insight generated")
	return in, nil
}

func (s *Service) buildPrompt(ctx context.Context, userID int64, typ domain.Type) (title, prompt string, err error) {
	switch typ {
	case domain.TypeTimeAudit:
		entries, err := s.audits.ListEntries(ctx, userID, nil, nil)
		if err != nil {
			return "", "", err
		}
		return "Time & Energy Audit Insights", timeAuditPrompt(entries), nil

	case domain.TypeGoalProgress:
		goals, err := s.goals.ListPowerGoals(ctx, userID)
		if err != nil {
			return "", "", err
		}
		lines := make([]string, 0, len(goals))
		for _, g := range goals {
			lines = append(lines, fmt.Sprintf("- %s (%s)", g.Title, g.Status))
		}
		prompt := fmt.Sprintf(`Analyze these goals and provide progress insights:
%s

Provide recommendations for staying on track and achieving these goals.`, strings.Join(lines, "\n"))
		return "Goal Progress Analysis", prompt, nil

	default:
		sessions, err := s.pomodoros.ListSessions(ctx, userID, nil, nil)
		if err != nil {
			return "", "", err
		}
		var completed int
		for _, sess := range sessions {
			if sess.Completed {
				completed++
			}
		}
		var rate int
		if len(sessions) > 0 {
			rate = int(float64(completed)/float64(len(sessions))*100 + 0.5)
		}
		prompt := fmt.Sprintf(`Analyze productivity patterns:
- Total Pomodoro sessions: %d
- Completed sessions: %d
- Completion rate: %d%%

Provide insights on productivity trends and recommendations for improvement.`, len(sessions), completed, rate)
		return "Productivity Pattern Analysis", prompt, nil
	}
}

// timeAuditPrompt summarizes energy counts over the full history plus the
// ten most recent entries, dollar value rendered as repeated "$".
func timeAuditPrompt(entries []timeaudit.Entry) string {
	var red, yellow, green int
	for _, e := range entries {
		switch e.EnergyLevel {
		case timeaudit.EnergyRed:
			red++
		case timeaudit.EnergyYellow:
			yellow++
		case timeaudit.EnergyGreen:
			green++
		}
	}

	recent := entries
	if len(recent) > 10 {
		recent = recent[:10]
	}
	lines := make([]string, 0, len(recent))
	for _, e := range recent {
		lines = append(lines, fmt.Sprintf("- %s (%s, %s)", e.Description, e.EnergyLevel, strings.Repeat("$", e.DollarValue)))
	}

	return fmt.Sprintf(`Analyze this time audit data and provide insights:
- Red (energy-draining) activities: %d
- Yellow (neutral) activities: %d
- Green (energizing) activities: %d

Recent entries:
%s

Provide 3-5 actionable recommendations to maximize green time and minimize red time.`, red, yellow, green, strings.Join(lines, "\n"))
}

// List returns the caller's insights most recent first, optionally only the
// unread ones.
func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool) ([]domain.Insight, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListInsights(ctx, userID, unreadOnly)
}

// MarkRead flags the caller's insight as read; a missing row is a silent
// no-op.
func (s *Service) MarkRead(ctx context.Context, userID, id int64) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	return validate.StoreWrite(s.store.MarkInsightRead(ctx, id, userID))
}
