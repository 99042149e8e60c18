package memory

import (
	"context"
	"sort"
	"sync"
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
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local development.
type Store struct {
	mu          sync.RWMutex
	nextID      int64
	entries     map[int64]timeaudit.Entry
	powerGoals  map[int64]goal.PowerGoal
	projects    map[int64]goal.Project
	nextActions map[int64]goal.NextAction
	sessions    map[int64]pomodoro.Session
	northStars  map[int64]metric.NorthStar
	scorecards  map[int64]metric.Scorecard
	partners    map[int64]accountability.Partner
	commitments map[int64]accountability.Commitment
	checkIns    map[int64]accountability.CheckIn
	contacts    map[int64]relationship.Contact
	dailyPlans  map[int64]planning.DailyPlan
	goalReviews map[int64]planning.GoalReview
	insights    map[int64]insight.Insight
	recordings  map[int64]voice.Recording
}

var _ storage.TimeAuditStore = (*Store)(nil)
var _ storage.GoalStore = (*Store)(nil)
var _ storage.PomodoroStore = (*Store)(nil)
var _ storage.MetricStore = (*Store)(nil)
var _ storage.AccountabilityStore = (*Store)(nil)
var _ storage.RelationshipStore = (*Store)(nil)
var _ storage.PlanningStore = (*Store)(nil)
var _ storage.InsightStore = (*Store)(nil)
var _ storage.VoiceStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:      1,
		entries:     make(map[int64]timeaudit.Entry),
		powerGoals:  make(map[int64]goal.PowerGoal),
		projects:    make(map[int64]goal.Project),
		nextActions: make(map[int64]goal.NextAction),
		sessions:    make(map[int64]pomodoro.Session),
		northStars:  make(map[int64]metric.NorthStar),
		scorecards:  make(map[int64]metric.Scorecard),
		partners:    make(map[int64]accountability.Partner),
		commitments: make(map[int64]accountability.Commitment),
		checkIns:    make(map[int64]accountability.CheckIn),
		contacts:    make(map[int64]relationship.Contact),
		dailyPlans:  make(map[int64]planning.DailyPlan),
		goalReviews: make(map[int64]planning.GoalReview),
		insights:    make(map[int64]insight.Insight),
		recordings:  make(map[int64]voice.Recording),
	}
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Helpers --------------------------------------------------------------------

func ptr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// inRange reports whether t falls in [start, end] inclusive. Filtering only
// applies when both bounds are present.
func inRange(t time.Time, start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !t.Before(*start) && !t.After(*end)
}

// TimeAuditStore implementation ----------------------------------------------

func (s *Store) CreateEntry(_ context.Context, e timeaudit.Entry) (timeaudit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextIDLocked()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) ListEntries(_ context.Context, userID int64, start, end *time.Time) ([]timeaudit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]timeaudit.Entry, 0)
	for _, e := range s.entries {
		if e.UserID == userID && inRange(e.ActivityDate, start, end) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ActivityDate.Equal(result[j].ActivityDate) {
			return result[i].ActivityDate.After(result[j].ActivityDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) UpdateEntry(_ context.Context, id, userID int64, patch timeaudit.EntryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return nil
	}

	if patch.ActivityDate != nil {
		e.ActivityDate = *patch.ActivityDate
	}
	if patch.StartTime != nil {
		e.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		e.EndTime = *patch.EndTime
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.EnergyLevel != nil {
		e.EnergyLevel = *patch.EnergyLevel
	}
	if patch.DollarValue != nil {
		e.DollarValue = *patch.DollarValue
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	e.UpdatedAt = time.Now().UTC()

	s.entries[id] = e
	return nil
}

func (s *Store) DeleteEntry(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok && e.UserID == userID {
		delete(s.entries, id)
	}
	return nil
}

// GoalStore implementation ----------------------------------------------------

func (s *Store) CreatePowerGoal(_ context.Context, g goal.PowerGoal) (goal.PowerGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = s.nextIDLocked()
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	if g.Status == "" {
		g.Status = goal.StatusActive
	}
	g.CompletedAt = ptr(g.CompletedAt)

	s.powerGoals[g.ID] = g
	return g, nil
}

func (s *Store) ListPowerGoals(_ context.Context, userID int64) ([]goal.PowerGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]goal.PowerGoal, 0)
	for _, g := range s.powerGoals {
		if g.UserID == userID {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TargetMonth != result[j].TargetMonth {
			return result[i].TargetMonth < result[j].TargetMonth
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) UpdatePowerGoal(_ context.Context, id, userID int64, patch goal.PowerGoalPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.powerGoals[id]
	if !ok || g.UserID != userID {
		return nil
	}

	if patch.Title != nil {
		g.Title = *patch.Title
	}
	if patch.Description != nil {
		g.Description = *patch.Description
	}
	if patch.TargetMonth != nil {
		g.TargetMonth = *patch.TargetMonth
	}
	if patch.TargetYear != nil {
		g.TargetYear = *patch.TargetYear
	}
	if patch.Status != nil {
		g.Status = *patch.Status
	}
	if patch.CompletedAt != nil {
		g.CompletedAt = ptr(patch.CompletedAt)
	}
	g.UpdatedAt = time.Now().UTC()

	s.powerGoals[id] = g
	return nil
}

func (s *Store) DeletePowerGoal(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.powerGoals[id]; ok && g.UserID == userID {
		delete(s.powerGoals, id)
	}
	return nil
}

func (s *Store) CreateProject(_ context.Context, p goal.Project) (goal.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextIDLocked()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = goal.ProjectNotStarted
	}
	p.CompletedAt = ptr(p.CompletedAt)

	s.projects[p.ID] = p
	return p, nil
}

func (s *Store) ListProjectsByGoal(_ context.Context, goalID, userID int64) ([]goal.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]goal.Project, 0)
	for _, p := range s.projects {
		if p.GoalID == goalID && p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpdateProject(_ context.Context, id, userID int64, patch goal.ProjectPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return nil
	}

	if patch.GoalID != nil {
		p.GoalID = *patch.GoalID
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.CompletedAt != nil {
		p.CompletedAt = ptr(patch.CompletedAt)
	}
	p.UpdatedAt = time.Now().UTC()

	s.projects[id] = p
	return nil
}

func (s *Store) DeleteProject(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.projects[id]; ok && p.UserID == userID {
		delete(s.projects, id)
	}
	return nil
}

func (s *Store) CreateNextAction(_ context.Context, a goal.NextAction) (goal.NextAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextIDLocked()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.CompletedAt = ptr(a.CompletedAt)

	s.nextActions[a.ID] = a
	return a, nil
}

func (s *Store) ListNextActionsByProject(_ context.Context, projectID, userID int64) ([]goal.NextAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]goal.NextAction, 0)
	for _, a := range s.nextActions {
		if a.ProjectID == projectID && a.UserID == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpdateNextAction(_ context.Context, id, userID int64, patch goal.NextActionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.nextActions[id]
	if !ok || a.UserID != userID {
		return nil
	}

	if patch.ProjectID != nil {
		a.ProjectID = *patch.ProjectID
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Completed != nil {
		a.Completed = *patch.Completed
	}
	if patch.CompletedAt != nil {
		a.CompletedAt = ptr(patch.CompletedAt)
	}
	a.UpdatedAt = time.Now().UTC()

	s.nextActions[id] = a
	return nil
}

func (s *Store) DeleteNextAction(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.nextActions[id]; ok && a.UserID == userID {
		delete(s.nextActions, id)
	}
	return nil
}

// PomodoroStore implementation ------------------------------------------------

func (s *Store) CreateSession(_ context.Context, sess pomodoro.Session) (pomodoro.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.ID = s.nextIDLocked()
	now := time.Now().UTC()
	sess.CreatedAt = now
	sess.UpdatedAt = now
	if sess.Duration == 0 {
		sess.Duration = pomodoro.DefaultDurationSeconds
	}
	sess.CompletedAt = ptr(sess.CompletedAt)

	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *Store) ListSessions(_ context.Context, userID int64, start, end *time.Time) ([]pomodoro.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]pomodoro.Session, 0)
	for _, sess := range s.sessions {
		if sess.UserID == userID && inRange(sess.StartedAt, start, end) {
			result = append(result, sess)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartedAt.Equal(result[j].StartedAt) {
			return result[i].StartedAt.After(result[j].StartedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) UpdateSession(_ context.Context, id, userID int64, patch pomodoro.SessionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.UserID != userID {
		return nil
	}

	if patch.CompletedAt != nil {
		sess.CompletedAt = ptr(patch.CompletedAt)
	}
	if patch.Duration != nil {
		sess.Duration = *patch.Duration
	}
	if patch.TaskDescription != nil {
		sess.TaskDescription = *patch.TaskDescription
	}
	if patch.Completed != nil {
		sess.Completed = *patch.Completed
	}
	sess.UpdatedAt = time.Now().UTC()

	s.sessions[id] = sess
	return nil
}

// MetricStore implementation --------------------------------------------------

func (s *Store) CreateNorthStar(_ context.Context, m metric.NorthStar) (metric.NorthStar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextIDLocked()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	s.northStars[m.ID] = m
	return m, nil
}

func (s *Store) ListNorthStars(_ context.Context, userID int64, metricName string) ([]metric.NorthStar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]metric.NorthStar, 0)
	for _, m := range s.northStars {
		if m.UserID == userID && (metricName == "" || m.MetricName == metricName) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RecordedDate.Equal(result[j].RecordedDate) {
			return result[i].RecordedDate.After(result[j].RecordedDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) CreateScorecard(_ context.Context, m metric.Scorecard) (metric.Scorecard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextIDLocked()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.TargetValue = ptr(m.TargetValue)

	s.scorecards[m.ID] = m
	return m, nil
}

func (s *Store) ListScorecards(_ context.Context, userID int64, start, end *time.Time) ([]metric.Scorecard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]metric.Scorecard, 0)
	for _, m := range s.scorecards {
		if m.UserID == userID && inRange(m.RecordedDate, start, end) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RecordedDate.Equal(result[j].RecordedDate) {
			return result[i].RecordedDate.After(result[j].RecordedDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// UpdateScorecard is addressed by id only; any caller can reach any row.
func (s *Store) UpdateScorecard(_ context.Context, id int64, patch metric.ScorecardPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.scorecards[id]
	if !ok {
		return nil
	}

	if patch.MetricName != nil {
		m.MetricName = *patch.MetricName
	}
	if patch.Category != nil {
		m.Category = *patch.Category
	}
	if patch.Unit != nil {
		m.Unit = *patch.Unit
	}
	if patch.TargetValue != nil {
		m.TargetValue = ptr(patch.TargetValue)
	}
	if patch.CurrentValue != nil {
		m.CurrentValue = *patch.CurrentValue
	}
	if patch.RecordedDate != nil {
		m.RecordedDate = *patch.RecordedDate
	}
	if patch.Status != nil {
		m.Status = *patch.Status
	}
	if patch.Notes != nil {
		m.Notes = *patch.Notes
	}
	m.UpdatedAt = time.Now().UTC()

	s.scorecards[id] = m
	return nil
}

// DeleteScorecard is addressed by id only; any caller can reach any row.
func (s *Store) DeleteScorecard(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.scorecards, id)
	return nil
}

// AccountabilityStore implementation ------------------------------------------

func (s *Store) CreatePartner(_ context.Context, p accountability.Partner) (accountability.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextIDLocked()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.partners[p.ID] = p
	return p, nil
}

func (s *Store) ListPartners(_ context.Context, userID int64) ([]accountability.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]accountability.Partner, 0)
	for _, p := range s.partners {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpdatePartner(_ context.Context, id, userID int64, patch accountability.PartnerPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.partners[id]
	if !ok || p.UserID != userID {
		return nil
	}

	if patch.PartnerName != nil {
		p.PartnerName = *patch.PartnerName
	}
	if patch.PartnerEmail != nil {
		p.PartnerEmail = *patch.PartnerEmail
	}
	if patch.PartnerPhone != nil {
		p.PartnerPhone = *patch.PartnerPhone
	}
	if patch.Relationship != nil {
		p.Relationship = *patch.Relationship
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	p.UpdatedAt = time.Now().UTC()

	s.partners[id] = p
	return nil
}

func (s *Store) CreateCommitment(_ context.Context, c accountability.Commitment) (accountability.Commitment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextIDLocked()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = accountability.CommitmentActive
	}
	c.PartnerID = ptr(c.PartnerID)
	c.GoalID = ptr(c.GoalID)
	c.Deadline = ptr(c.Deadline)
	c.CompletedAt = ptr(c.CompletedAt)

	s.commitments[c.ID] = c
	return c, nil
}

func (s *Store) ListCommitments(_ context.Context, userID int64) ([]accountability.Commitment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]accountability.Commitment, 0)
	for _, c := range s.commitments {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) UpdateCommitment(_ context.Context, id, userID int64, patch accountability.CommitmentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.commitments[id]
	if !ok || c.UserID != userID {
		return nil
	}

	if patch.PartnerID != nil {
		c.PartnerID = ptr(patch.PartnerID)
	}
	if patch.GoalID != nil {
		c.GoalID = ptr(patch.GoalID)
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Deadline != nil {
		c.Deadline = ptr(patch.Deadline)
	}
	if patch.Stakes != nil {
		c.Stakes = *patch.Stakes
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.CompletedAt != nil {
		c.CompletedAt = ptr(patch.CompletedAt)
	}
	c.UpdatedAt = time.Now().UTC()

	s.commitments[id] = c
	return nil
}

func (s *Store) CreateCheckIn(_ context.Context, c accountability.CheckIn) (accountability.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextIDLocked()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.PartnerID = ptr(c.PartnerID)
	c.CommitmentID = ptr(c.CommitmentID)
	c.CompletedAt = ptr(c.CompletedAt)

	s.checkIns[c.ID] = c
	return c, nil
}

func (s *Store) ListCheckIns(_ context.Context, userID int64) ([]accountability.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]accountability.CheckIn, 0)
	for _, c := range s.checkIns {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ScheduledDate.Equal(result[j].ScheduledDate) {
			return result[i].ScheduledDate.Before(result[j].ScheduledDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) UpdateCheckIn(_ context.Context, id, userID int64, patch accountability.CheckInPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.checkIns[id]
	if !ok || c.UserID != userID {
		return nil
	}

	if patch.PartnerID != nil {
		c.PartnerID = ptr(patch.PartnerID)
	}
	if patch.CommitmentID != nil {
		c.CommitmentID = ptr(patch.CommitmentID)
	}
	if patch.ScheduledDate != nil {
		c.ScheduledDate = *patch.ScheduledDate
	}
	if patch.Completed != nil {
		c.Completed = *patch.Completed
	}
	if patch.CompletedAt != nil {
		c.CompletedAt = ptr(patch.CompletedAt)
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	c.UpdatedAt = time.Now().UTC()

	s.checkIns[id] = c
	return nil
}

// RelationshipStore implementation --------------------------------------------

func (s *Store) CreateContact(_ context.Context, c relationship.Contact) (relationship.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextIDLocked()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.LastInteraction = ptr(c.LastInteraction)

	s.contacts[c.ID] = c
	return c, nil
}

func (s *Store) ListContacts(_ context.Context, userID int64) ([]relationship.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]relationship.Contact, 0)
	for _, c := range s.contacts {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpdateContact(_ context.Context, id, userID int64, patch relationship.ContactPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok || c.UserID != userID {
		return nil
	}

	if patch.ContactName != nil {
		c.ContactName = *patch.ContactName
	}
	if patch.Relationship != nil {
		c.Relationship = *patch.Relationship
	}
	if patch.EnergyImpact != nil {
		c.EnergyImpact = *patch.EnergyImpact
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	if patch.BoundarySet != nil {
		c.BoundarySet = *patch.BoundarySet
	}
	if patch.LastInteraction != nil {
		c.LastInteraction = ptr(patch.LastInteraction)
	}
	c.UpdatedAt = time.Now().UTC()

	s.contacts[id] = c
	return nil
}

func (s *Store) DeleteContact(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.contacts[id]; ok && c.UserID == userID {
		delete(s.contacts, id)
	}
	return nil
}

// PlanningStore implementation --------------------------------------------------

func (s *Store) CreateDailyPlan(_ context.Context, p planning.DailyPlan) (planning.DailyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextIDLocked()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.dailyPlans[p.ID] = p
	return p, nil
}

func (s *Store) GetDailyPlanByDate(_ context.Context, userID int64, date time.Time) (*planning.DailyPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var match *planning.DailyPlan
	for _, p := range s.dailyPlans {
		if p.UserID == userID && sameDate(p.PlanDate, date) {
			if match == nil || p.ID < match.ID {
				plan := p
				match = &plan
			}
		}
	}
	return match, nil
}

func (s *Store) UpdateDailyPlan(_ context.Context, id, userID int64, patch planning.DailyPlanPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.dailyPlans[id]
	if !ok || p.UserID != userID {
		return nil
	}

	if patch.PlanDate != nil {
		p.PlanDate = *patch.PlanDate
	}
	if patch.First90MinTask != nil {
		p.First90MinTask = *patch.First90MinTask
	}
	if patch.KeyTasks != nil {
		p.KeyTasks = *patch.KeyTasks
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.Completed != nil {
		p.Completed = *patch.Completed
	}
	p.UpdatedAt = time.Now().UTC()

	s.dailyPlans[id] = p
	return nil
}

func (s *Store) CreateGoalReview(_ context.Context, r planning.GoalReview) (planning.GoalReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextIDLocked()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.CompletedAt = ptr(r.CompletedAt)

	s.goalReviews[r.ID] = r
	return r, nil
}

func (s *Store) ListGoalReviewsByDate(_ context.Context, userID int64, date time.Time) ([]planning.GoalReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]planning.GoalReview, 0)
	for _, r := range s.goalReviews {
		if r.UserID == userID && sameDate(r.ReviewDate, date) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpdateGoalReview(_ context.Context, id, userID int64, patch planning.GoalReviewPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.goalReviews[id]
	if !ok || r.UserID != userID {
		return nil
	}

	if patch.ReviewDate != nil {
		r.ReviewDate = *patch.ReviewDate
	}
	if patch.ReviewTime != nil {
		r.ReviewTime = *patch.ReviewTime
	}
	if patch.Completed != nil {
		r.Completed = *patch.Completed
	}
	if patch.CompletedAt != nil {
		r.CompletedAt = ptr(patch.CompletedAt)
	}
	r.UpdatedAt = time.Now().UTC()

	s.goalReviews[id] = r
	return nil
}

// InsightStore implementation ---------------------------------------------------

func (s *Store) CreateInsight(_ context.Context, in insight.Insight) (insight.Insight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = s.nextIDLocked()
	now := time.Now().UTC()
	in.CreatedAt = now
	in.UpdatedAt = now

	s.insights[in.ID] = in
	return in, nil
}

func (s *Store) ListInsights(_ context.Context, userID int64, unreadOnly bool) ([]insight.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]insight.Insight, 0)
	for _, in := range s.insights {
		if in.UserID == userID && (!unreadOnly || !in.Read) {
			result = append(result, in)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) MarkInsightRead(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, ok := s.insights[id]
	if !ok || in.UserID != userID {
		return nil
	}

	in.Read = true
	in.UpdatedAt = time.Now().UTC()
	s.insights[id] = in
	return nil
}

// VoiceStore implementation -----------------------------------------------------

func (s *Store) CreateRecording(_ context.Context, r voice.Recording) (voice.Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextIDLocked()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	s.recordings[r.ID] = r
	return r, nil
}

func (s *Store) ListRecordings(_ context.Context, userID int64) ([]voice.Recording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]voice.Recording, 0)
	for _, r := range s.recordings {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *Store) SetRecordingTranscription(_ context.Context, id, userID int64, transcription string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recordings[id]
	if !ok || r.UserID != userID {
		return nil
	}

	r.Transcription = transcription
	r.Processed = true
	r.UpdatedAt = time.Now().UTC()
	s.recordings[id] = r
	return nil
}
