// Package app composes the dashboard's services, storage, and collaborators
// into one application with a managed lifecycle.
package app

import (
	"context"
	"fmt"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/core/service"
	accountabilitysvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/accountability"
	goalssvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/goals"
	insightssvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/insights"
	metricssvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/metrics"
	planningsvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/planning"
	pomodorosvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/pomodoro"
	relationshipssvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/relationships"
	timeauditsvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/timeaudit"
	voicesvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/voice"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/system"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	TimeAudit      storage.TimeAuditStore
	Goals          storage.GoalStore
	Pomodoro       storage.PomodoroStore
	Metrics        storage.MetricStore
	Accountability storage.AccountabilityStore
	Relationships  storage.RelationshipStore
	Planning       storage.PlanningStore
	Insights       storage.InsightStore
	Voice          storage.VoiceStore
}

// Collaborators are the external services the application depends on. Nil
// entries default to disabled implementations that fail with a clear error,
// so a deployment without them still serves everything else.
type Collaborators struct {
	TextGen     insightssvc.TextGenerator
	Blobs       voicesvc.BlobStore
	Transcriber voicesvc.Transcriber
}

// Application ties the domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	TimeAudit      *timeauditsvc.Service
	Goals          *goalssvc.Service
	Pomodoro       *pomodorosvc.Service
	Metrics        *metricssvc.Service
	Accountability *accountabilitysvc.Service
	Relationships  *relationshipssvc.Service
	Planning       *planningsvc.Service
	Insights       *insightssvc.Service
	Voice          *voicesvc.Service

	// Descriptors enumerate the mounted modules for the system endpoint.
	Descriptors []service.Descriptor
}

// New builds a fully initialised application with the provided stores and
// collaborators.
func New(stores Stores, collab Collaborators, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.TimeAudit == nil {
		stores.TimeAudit = mem
	}
	if stores.Goals == nil {
		stores.Goals = mem
	}
	if stores.Pomodoro == nil {
		stores.Pomodoro = mem
	}
	if stores.Metrics == nil {
		stores.Metrics = mem
	}
	if stores.Accountability == nil {
		stores.Accountability = mem
	}
	if stores.Relationships == nil {
		stores.Relationships = mem
	}
	if stores.Planning == nil {
		stores.Planning = mem
	}
	if stores.Insights == nil {
		stores.Insights = mem
	}
	if stores.Voice == nil {
		stores.Voice = mem
	}

	if collab.TextGen == nil {
		collab.TextGen = disabledTextGen{}
	}
	if collab.Blobs == nil {
		collab.Blobs = disabledBlobs{}
	}
	if collab.Transcriber == nil {
		collab.Transcriber = disabledTranscriber{}
	}

	a := &Application{
		manager:        system.NewManager(),
		log:            log,
		TimeAudit:      timeauditsvc.New(stores.TimeAudit, log),
		Goals:          goalssvc.New(stores.Goals, log),
		Pomodoro:       pomodorosvc.New(stores.Pomodoro, log),
		Metrics:        metricssvc.New(stores.Metrics, log),
		Accountability: accountabilitysvc.New(stores.Accountability, log),
		Relationships:  relationshipssvc.New(stores.Relationships, log),
		Planning:       planningsvc.New(stores.Planning, log),
		Insights:       insightssvc.New(stores.Insights, stores.TimeAudit, stores.Goals, stores.Pomodoro, collab.TextGen, log),
		Voice:          voicesvc.New(stores.Voice, collab.Blobs, collab.Transcriber, log),
	}

	a.Descriptors = []service.Descriptor{
		{Name: "timeaudit", Domain: "time and energy tracking", Capabilities: []string{"entries", "summaries", "suggestions"}},
		{Name: "goals", Domain: "goal hierarchy", Capabilities: []string{"power-goals", "projects", "next-actions"}},
		{Name: "pomodoro", Domain: "focus sessions", Capabilities: []string{"sessions", "daily-count"}},
		{Name: "metrics", Domain: "measurement", Capabilities: []string{"north-star", "scorecard", "series"}},
		{Name: "accountability", Domain: "commitments", Capabilities: []string{"partners", "commitments", "check-ins"}},
		{Name: "relationships", Domain: "relationship energy", Capabilities: []string{"contacts"}},
		{Name: "planning", Domain: "daily execution", Capabilities: []string{"daily-plans", "goal-reviews"}},
		{Name: "insights", Domain: "coaching", Capabilities: []string{"generation", "history"}},
		{Name: "voice", Domain: "voice capture", Capabilities: []string{"upload", "transcription"}},
	}

	for _, d := range a.Descriptors {
		if err := a.manager.Register(system.NoopService{ServiceName: d.Name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", d.Name, err)
		}
	}

	return a, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(svc system.Service) error {
	return a.manager.Register(svc)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}

type disabledTextGen struct{}

func (disabledTextGen) Generate(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("text generation not configured")
}

type disabledBlobs struct{}

func (disabledBlobs) Put(context.Context, string, string, []byte) (string, error) {
	return "", fmt.Errorf("blob storage not configured")
}

type disabledTranscriber struct{}

func (disabledTranscriber) Transcribe(context.Context, string) (string, error) {
	return "", fmt.Errorf("transcription not configured")
}
