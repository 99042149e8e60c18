// Package storage declares the persistence contracts for all record kinds.
// Creates return the persisted row with assigned id and timestamps. Updates
// and deletes are scoped to (id, userID) and are silent no-ops when no row
// matches; list methods return records owned by the user in a kind-specific
// order. ScorecardMetric update/delete intentionally take no user id; see
// the ScorecardStore comment.
package storage

import (
	"context"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/accountability"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/goal"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/insight"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/metric"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/planning"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/pomodoro"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/relationship"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/timeaudit"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/voice"
)

// TimeAuditStore persists time-audit entries. ListEntries filters by
// activity date when both bounds are given (inclusive) and orders most
// recent first.
type TimeAuditStore interface {
	CreateEntry(ctx context.Context, e timeaudit.Entry) (timeaudit.Entry, error)
	ListEntries(ctx context.Context, userID int64, start, end *time.Time) ([]timeaudit.Entry, error)
	UpdateEntry(ctx context.Context, id, userID int64, patch timeaudit.EntryPatch) error
	DeleteEntry(ctx context.Context, id, userID int64) error
}

// GoalStore persists the goal hierarchy: power goals, projects, next actions.
type GoalStore interface {
	CreatePowerGoal(ctx context.Context, g goal.PowerGoal) (goal.PowerGoal, error)
	ListPowerGoals(ctx context.Context, userID int64) ([]goal.PowerGoal, error)
	UpdatePowerGoal(ctx context.Context, id, userID int64, patch goal.PowerGoalPatch) error
	DeletePowerGoal(ctx context.Context, id, userID int64) error

	CreateProject(ctx context.Context, p goal.Project) (goal.Project, error)
	ListProjectsByGoal(ctx context.Context, goalID, userID int64) ([]goal.Project, error)
	UpdateProject(ctx context.Context, id, userID int64, patch goal.ProjectPatch) error
	DeleteProject(ctx context.Context, id, userID int64) error

	CreateNextAction(ctx context.Context, a goal.NextAction) (goal.NextAction, error)
	ListNextActionsByProject(ctx context.Context, projectID, userID int64) ([]goal.NextAction, error)
	UpdateNextAction(ctx context.Context, id, userID int64, patch goal.NextActionPatch) error
	DeleteNextAction(ctx context.Context, id, userID int64) error
}

// PomodoroStore persists focus sessions. ListSessions filters by start
// timestamp when both bounds are given (inclusive) and orders most recent
// first.
type PomodoroStore interface {
	CreateSession(ctx context.Context, s pomodoro.Session) (pomodoro.Session, error)
	ListSessions(ctx context.Context, userID int64, start, end *time.Time) ([]pomodoro.Session, error)
	UpdateSession(ctx context.Context, id, userID int64, patch pomodoro.SessionPatch) error
}

// MetricStore persists north-star and scorecard readings. Scorecard update
// and delete are addressed by id alone, without a user scope; this mirrors
// the established contract and is covered by regression tests rather than
// silently tightened.
type MetricStore interface {
	CreateNorthStar(ctx context.Context, m metric.NorthStar) (metric.NorthStar, error)
	ListNorthStars(ctx context.Context, userID int64, metricName string) ([]metric.NorthStar, error)

	CreateScorecard(ctx context.Context, m metric.Scorecard) (metric.Scorecard, error)
	ListScorecards(ctx context.Context, userID int64, start, end *time.Time) ([]metric.Scorecard, error)
	UpdateScorecard(ctx context.Context, id int64, patch metric.ScorecardPatch) error
	DeleteScorecard(ctx context.Context, id int64) error
}

// AccountabilityStore persists partners, commitments, and check-ins.
// Commitments list most recent first; check-ins list in scheduled order.
type AccountabilityStore interface {
	CreatePartner(ctx context.Context, p accountability.Partner) (accountability.Partner, error)
	ListPartners(ctx context.Context, userID int64) ([]accountability.Partner, error)
	UpdatePartner(ctx context.Context, id, userID int64, patch accountability.PartnerPatch) error

	CreateCommitment(ctx context.Context, c accountability.Commitment) (accountability.Commitment, error)
	ListCommitments(ctx context.Context, userID int64) ([]accountability.Commitment, error)
	UpdateCommitment(ctx context.Context, id, userID int64, patch accountability.CommitmentPatch) error

	CreateCheckIn(ctx context.Context, c accountability.CheckIn) (accountability.CheckIn, error)
	ListCheckIns(ctx context.Context, userID int64) ([]accountability.CheckIn, error)
	UpdateCheckIn(ctx context.Context, id, userID int64, patch accountability.CheckInPatch) error
}

// RelationshipStore persists relationship contacts.
type RelationshipStore interface {
	CreateContact(ctx context.Context, c relationship.Contact) (relationship.Contact, error)
	ListContacts(ctx context.Context, userID int64) ([]relationship.Contact, error)
	UpdateContact(ctx context.Context, id, userID int64, patch relationship.ContactPatch) error
	DeleteContact(ctx context.Context, id, userID int64) error
}

// PlanningStore persists daily plans and goal reviews. GetDailyPlanByDate
// returns nil when no plan exists for the date; uniqueness of (user, date)
// is not enforced and the first match wins.
type PlanningStore interface {
	CreateDailyPlan(ctx context.Context, p planning.DailyPlan) (planning.DailyPlan, error)
	GetDailyPlanByDate(ctx context.Context, userID int64, date time.Time) (*planning.DailyPlan, error)
	UpdateDailyPlan(ctx context.Context, id, userID int64, patch planning.DailyPlanPatch) error

	CreateGoalReview(ctx context.Context, r planning.GoalReview) (planning.GoalReview, error)
	ListGoalReviewsByDate(ctx context.Context, userID int64, date time.Time) ([]planning.GoalReview, error)
	UpdateGoalReview(ctx context.Context, id, userID int64, patch planning.GoalReviewPatch) error
}

// InsightStore persists generated insights, most recent first.
type InsightStore interface {
	CreateInsight(ctx context.Context, in insight.Insight) (insight.Insight, error)
	ListInsights(ctx context.Context, userID int64, unreadOnly bool) ([]insight.Insight, error)
	MarkInsightRead(ctx context.Context, id, userID int64) error
}

// VoiceStore persists audio recordings, most recent first.
type VoiceStore interface {
	CreateRecording(ctx context.Context, r voice.Recording) (voice.Recording, error)
	ListRecordings(ctx context.Context, userID int64) ([]voice.Recording, error)
	SetRecordingTranscription(ctx context.Context, id, userID int64, transcription string) error
}
