// Package httpapi exposes the dashboard services over REST. All data routes
// live under /api/v1 behind bearer authentication; health and metrics are
// public.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	app "github.com/palisadeengineering/goal-achievement-dashboard/internal/app"
	appmetrics "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/metrics"
	accountabilitysvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/accountability"
	goalssvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/goals"
	metricssvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/metrics"
	planningsvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/planning"
	pomodorosvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/pomodoro"
	relationshipssvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/relationships"
	timeauditsvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/timeaudit"
	voicesvc "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/services/voice"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/middleware"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Config controls the HTTP surface.
type Config struct {
	JWTSecret string
	AuditPath string // optional JSONL audit sink
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app   *app.Application
	audit *auditLog
	log   *logger.Logger
}

// NewHandler returns the full router: public health and metrics endpoints
// plus the authenticated /api/v1 surface.
func NewHandler(application *app.Application, cfg Config, log *logger.Logger) (http.Handler, error) {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}

	var sink auditSink
	if fileSink, err := newFileAuditSink(cfg.AuditPath); err != nil {
		return nil, err
	} else if fileSink != nil {
		sink = fileSink
	}

	h := &handler{app: application, audit: newAuditLog(200, sink), log: log}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", appmetrics.Handler()).Methods(http.MethodGet)

	auth := middleware.NewAuthMiddleware(cfg.JWTSecret, log, nil)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(appmetrics.Instrument, auth.Handler, h.audit.middleware)

	// Time audit.
	api.HandleFunc("/time-audit", h.createTimeAudit).Methods(http.MethodPost)
	api.HandleFunc("/time-audit", h.listTimeAudit).Methods(http.MethodGet)
	api.HandleFunc("/time-audit/summary", h.timeAuditSummary).Methods(http.MethodGet)
	api.HandleFunc("/time-audit/suggestions", h.timeAuditSuggestions).Methods(http.MethodGet)
	api.HandleFunc("/time-audit/{id:[0-9]+}", h.updateTimeAudit).Methods(http.MethodPatch)
	api.HandleFunc("/time-audit/{id:[0-9]+}", h.deleteTimeAudit).Methods(http.MethodDelete)

	// Goal hierarchy.
	api.HandleFunc("/goals", h.createGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals", h.listGoals).Methods(http.MethodGet)
	api.HandleFunc("/goals/{id:[0-9]+}", h.updateGoal).Methods(http.MethodPatch)
	api.HandleFunc("/goals/{id:[0-9]+}", h.deleteGoal).Methods(http.MethodDelete)
	api.HandleFunc("/projects", h.createProject).Methods(http.MethodPost)
	api.HandleFunc("/projects", h.listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id:[0-9]+}", h.updateProject).Methods(http.MethodPatch)
	api.HandleFunc("/projects/{id:[0-9]+}", h.deleteProject).Methods(http.MethodDelete)
	api.HandleFunc("/next-actions", h.createAction).Methods(http.MethodPost)
	api.HandleFunc("/next-actions", h.listActions).Methods(http.MethodGet)
	api.HandleFunc("/next-actions/{id:[0-9]+}", h.updateAction).Methods(http.MethodPatch)
	api.HandleFunc("/next-actions/{id:[0-9]+}", h.deleteAction).Methods(http.MethodDelete)

	// Pomodoro.
	api.HandleFunc("/pomodoro", h.startPomodoro).Methods(http.MethodPost)
	api.HandleFunc("/pomodoro", h.listPomodoro).Methods(http.MethodGet)
	api.HandleFunc("/pomodoro/today", h.pomodoroToday).Methods(http.MethodGet)
	api.HandleFunc("/pomodoro/{id:[0-9]+}/complete", h.completePomodoro).Methods(http.MethodPost)

	// Metrics: north star and scorecard.
	api.HandleFunc("/north-star", h.createNorthStar).Methods(http.MethodPost)
	api.HandleFunc("/north-star", h.listNorthStars).Methods(http.MethodGet)
	api.HandleFunc("/north-star/progress", h.northStarProgress).Methods(http.MethodGet)
	api.HandleFunc("/scorecard", h.createScorecard).Methods(http.MethodPost)
	api.HandleFunc("/scorecard", h.listScorecards).Methods(http.MethodGet)
	api.HandleFunc("/scorecard/series", h.scorecardSeries).Methods(http.MethodGet)
	api.HandleFunc("/scorecard/latest", h.latestScorecards).Methods(http.MethodGet)
	api.HandleFunc("/scorecard/{id:[0-9]+}", h.updateScorecard).Methods(http.MethodPatch)
	api.HandleFunc("/scorecard/{id:[0-9]+}", h.deleteScorecard).Methods(http.MethodDelete)

	// Accountability.
	api.HandleFunc("/partners", h.createPartner).Methods(http.MethodPost)
	api.HandleFunc("/partners", h.listPartners).Methods(http.MethodGet)
	api.HandleFunc("/partners/{id:[0-9]+}", h.updatePartner).Methods(http.MethodPatch)
	api.HandleFunc("/commitments", h.createCommitment).Methods(http.MethodPost)
	api.HandleFunc("/commitments", h.listCommitments).Methods(http.MethodGet)
	api.HandleFunc("/commitments/{id:[0-9]+}", h.updateCommitment).Methods(http.MethodPatch)
	api.HandleFunc("/check-ins", h.createCheckIn).Methods(http.MethodPost)
	api.HandleFunc("/check-ins", h.listCheckIns).Methods(http.MethodGet)
	api.HandleFunc("/check-ins/{id:[0-9]+}/complete", h.completeCheckIn).Methods(http.MethodPost)

	// Relationships.
	api.HandleFunc("/relationships", h.createContact).Methods(http.MethodPost)
	api.HandleFunc("/relationships", h.listContacts).Methods(http.MethodGet)
	api.HandleFunc("/relationships/{id:[0-9]+}", h.updateContact).Methods(http.MethodPatch)
	api.HandleFunc("/relationships/{id:[0-9]+}", h.deleteContact).Methods(http.MethodDelete)

	// Planning.
	api.HandleFunc("/daily-plans", h.createDailyPlan).Methods(http.MethodPost)
	api.HandleFunc("/daily-plans", h.getDailyPlan).Methods(http.MethodGet)
	api.HandleFunc("/daily-plans/{id:[0-9]+}", h.updateDailyPlan).Methods(http.MethodPatch)
	api.HandleFunc("/goal-reviews", h.createGoalReview).Methods(http.MethodPost)
	api.HandleFunc("/goal-reviews", h.listGoalReviews).Methods(http.MethodGet)
	api.HandleFunc("/goal-reviews/{id:[0-9]+}/complete", h.completeGoalReview).Methods(http.MethodPost)

	// Insights.
	api.HandleFunc("/insights/generate", h.generateInsight).Methods(http.MethodPost)
	api.HandleFunc("/insights", h.listInsights).Methods(http.MethodGet)
	api.HandleFunc("/insights/{id:[0-9]+}/read", h.markInsightRead).Methods(http.MethodPost)

	// Voice.
	api.HandleFunc("/voice", h.uploadVoice).Methods(http.MethodPost)
	api.HandleFunc("/voice", h.listVoice).Methods(http.MethodGet)

	// Introspection.
	api.HandleFunc("/system/modules", h.systemModules).Methods(http.MethodGet)
	api.HandleFunc("/audit", h.listAudit).Methods(http.MethodGet)

	return r, nil
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- time audit ---

func (h *handler) createTimeAudit(w http.ResponseWriter, r *http.Request) {
	var in timeauditsvc.CreateInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	entry, err := h.app.TimeAudit.Create(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *handler) listTimeAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.app.TimeAudit.List(r.Context(), callerID(r), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handler) timeAuditSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.app.TimeAudit.Summaries(r.Context(), callerID(r), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) timeAuditSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.app.TimeAudit.Suggest(r.Context(), callerID(r), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *handler) updateTimeAudit(w http.ResponseWriter, r *http.Request) {
	var in timeauditsvc.UpdateInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.TimeAudit.Update(r.Context(), callerID(r), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) deleteTimeAudit(w http.ResponseWriter, r *http.Request) {
	if err := h.app.TimeAudit.Delete(r.Context(), callerID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

// --- goal hierarchy ---

func (h *handler) createGoal(w http.ResponseWriter, r *http.Request) {
	var in goalssvc.CreateGoalInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	g, err := h.app.Goals.CreateGoal(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *handler) listGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.app.Goals.ListGoals(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *handler) updateGoal(w http.ResponseWriter, r *http.Request) {
	var in goalssvc.UpdateGoalInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Goals.UpdateGoal(r.Context(), callerID(r), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Goals.DeleteGoal(r.Context(), callerID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) createProject(w http.ResponseWriter, r *http.Request) {
	var in goalssvc.CreateProjectInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	p, err := h.app.Goals.CreateProject(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handler) listProjects(w http.ResponseWriter, r *http.Request) {
	goalID, err := queryID(r, "goalId")
	if err != nil {
		writeError(w, err)
		return
	}
	projects, err := h.app.Goals.ListProjects(r.Context(), callerID(r), goalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *handler) updateProject(w http.ResponseWriter, r *http.Request) {
	var in goalssvc.UpdateProjectInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Goals.UpdateProject(r.Context(), callerID(r), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Goals.DeleteProject(r.Context(), callerID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) createAction(w http.ResponseWriter, r *http.Request) {
	var in goalssvc.CreateActionInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	a, err := h.app.Goals.CreateAction(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *handler) listActions(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryID(r, "projectId")
	if err != nil {
		writeError(w, err)
		return
	}
	actions, err := h.app.Goals.ListActions(r.Context(), callerID(r), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

func (h *handler) updateAction(w http.ResponseWriter, r *http.Request) {
	var in goalssvc.UpdateActionInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Goals.UpdateAction(r.Context(), callerID(r), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) deleteAction(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Goals.DeleteAction(r.Context(), callerID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

// --- pomodoro ---

func (h *handler) startPomodoro(w http.ResponseWriter, r *http.Request) {
	var in pomodorosvc.StartInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	sess, err := h.app.Pomodoro.Start(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *handler) listPomodoro(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startDate := q.Get("startDate")
	endDate := q.Get("endDate")
	start, err := validate.OptionalDate("startDate", &startDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := validate.OptionalDate("endDate", &endDate)
	if err != nil {
		writeError(w, err)
		return
	}
	sessions, err := h.app.Pomodoro.List(r.Context(), callerID(r), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *handler) pomodoroToday(w http.ResponseWriter, r *http.Request) {
	count, err := h.app.Pomodoro.Today(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, count)
}

func (h *handler) completePomodoro(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Pomodoro.Complete(r.Context(), callerID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

// --- metrics ---

func (h *handler) createNorthStar(w http.ResponseWriter, r *http.Request) {
	var in metricssvc.CreateNorthStarInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	m, err := h.app.Metrics.CreateNorthStar(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *handler) listNorthStars(w http.ResponseWriter, r *http.Request) {
	readings, err := h.app.Metrics.ListNorthStars(r.Context(), callerID(r), r.URL.Query().Get("metricName"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func (h *handler) northStarProgress(w http.ResponseWriter, r *http.Request) {
	percent, series, err := h.app.Metrics.NorthStarProgress(r.Context(), callerID(r), r.URL.Query().Get("metricName"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"percent": percent, "series": series})
}

func (h *handler) createScorecard(w http.ResponseWriter, r *http.Request) {
	var in metricssvc.CreateScorecardInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	m, err := h.app.Metrics.CreateScorecard(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *handler) listScorecards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	readings, err := h.app.Metrics.ListScorecards(r.Context(), callerID(r), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func (h *handler) scorecardSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.app.Metrics.ScorecardSeries(r.Context(), callerID(r), r.URL.Query().Get("metricName"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (h *handler) latestScorecards(w http.ResponseWriter, r *http.Request) {
	latest, err := h.app.Metrics.LatestScorecards(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func (h *handler) updateScorecard(w http.ResponseWriter, r *http.Request) {
	var in metricssvc.UpdateScorecardInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Metrics.UpdateScorecard(r.Context(), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) deleteScorecard(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Metrics.DeleteScorecard(r.Context(), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

// --- accountability ---

func (h *handler) createPartner(w http.ResponseWriter, r *http.Request) {
	var in accountabilitysvc.CreatePartnerInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	p, err := h.app.Accountability.CreatePartner(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handler) listPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.app.Accountability.ListPartners(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partners)
}

func (h *handler) updatePartner(w http.ResponseWriter, r *http.Request) {
	var in accountabilitysvc.UpdatePartnerInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Accountability.UpdatePartner(r.Context(), callerID(r), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) createCommitment(w http.ResponseWriter, r *http.Request) {
	var in accountabilitysvc.CreateCommitmentInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	c, err := h.app.Accountability.CreateCommitment(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *handler) listCommitments(w http.ResponseWriter, r *http.Request) {
	commitments, err := h.app.Accountability.ListCommitments(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commitments)
}

func (h *handler) updateCommitment(w http.ResponseWriter, r *http.Request) {
	var in accountabilitysvc.UpdateCommitmentInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Accountability.UpdateCommitment(r.Context(), callerID(r), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) createCheckIn(w http.ResponseWriter, r *http.Request) {
	var in accountabilitysvc.CreateCheckInInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	c, err := h.app.Accountability.CreateCheckIn(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *handler) listCheckIns(w http.ResponseWriter, r *http.Request) {
	checkIns, err := h.app.Accountability.ListCheckIns(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkIns)
}

func (h *handler) completeCheckIn(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Notes string `json:"notes"`
	}
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Accountability.CompleteCheckIn(r.Context(), callerID(r), pathID(r), in.Notes); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

// --- relationships ---

func (h *handler) createContact(w http.ResponseWriter, r *http.Request) {
	var in relationshipssvc.CreateInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	c, err := h.app.Relationships.Create(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *handler) listContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.app.Relationships.List(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *handler) updateContact(w http.ResponseWriter, r *http.Request) {
	var in relationshipssvc.UpdateInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Relationships.Update(r.Context(), callerID(r), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Relationships.Delete(r.Context(), callerID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

// --- planning ---

func (h *handler) createDailyPlan(w http.ResponseWriter, r *http.Request) {
	var in planningsvc.CreatePlanInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	p, err := h.app.Planning.CreatePlan(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handler) getDailyPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.app.Planning.GetPlanByDate(r.Context(), callerID(r), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	// No plan for the date serves JSON null, matching the query semantics.
	writeJSON(w, http.StatusOK, plan)
}

func (h *handler) updateDailyPlan(w http.ResponseWriter, r *http.Request) {
	var in planningsvc.UpdatePlanInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	if err := h.app.Planning.UpdatePlan(r.Context(), callerID(r), pathID(r), in); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

func (h *handler) createGoalReview(w http.ResponseWriter, r *http.Request) {
	var in planningsvc.CreateReviewInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	review, err := h.app.Planning.CreateReview(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *handler) listGoalReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.app.Planning.ListReviewsByDate(r.Context(), callerID(r), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *handler) completeGoalReview(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Planning.CompleteReview(r.Context(), callerID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

// --- insights ---

func (h *handler) generateInsight(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Type string `json:"type"`
	}
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}

	start := time.Now()
	insight, err := h.app.Insights.Generate(r.Context(), callerID(r), in.Type)
	appmetrics.RecordInsightGeneration(in.Type, time.Since(start), err == nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, insight)
}

func (h *handler) listInsights(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unreadOnly") == "true"
	insights, err := h.app.Insights.List(r.Context(), callerID(r), unreadOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (h *handler) markInsightRead(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Insights.MarkRead(r.Context(), callerID(r), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w)
}

// --- voice ---

func (h *handler) uploadVoice(w http.ResponseWriter, r *http.Request) {
	var in voicesvc.UploadInput
	if err := decodeJSON(r.Body, &in); err != nil {
		writeError(w, errors.Validation("body", err.Error()))
		return
	}
	rec, err := h.app.Voice.Upload(r.Context(), callerID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	appmetrics.RecordVoiceUpload(rec.Processed)
	writeJSON(w, http.StatusCreated, rec)
}

func (h *handler) listVoice(w http.ResponseWriter, r *http.Request) {
	recordings, err := h.app.Voice.List(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordings)
}

// --- introspection ---

func (h *handler) systemModules(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Descriptors)
}

func (h *handler) listAudit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	writeJSON(w, http.StatusOK, h.audit.listLimit(limit))
}

// --- helpers ---

func callerID(r *http.Request) int64 {
	id, _ := middleware.UserID(r.Context())
	return id
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func queryID(r *http.Request, key string) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, errors.Validationf(key, "%s is required", key)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Validationf(key, "%s must be numeric, got %q", key, raw)
	}
	return id, nil
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeError(w http.ResponseWriter, err error) {
	svcErr := errors.GetServiceError(err)
	if svcErr == nil {
		svcErr = errors.Internal("unexpected error", err)
	}

	body := map[string]interface{}{
		"code":    svcErr.Code,
		"message": svcErr.Message,
	}
	if len(svcErr.Details) > 0 {
		body["details"] = svcErr.Details
	}
	writeJSON(w, svcErr.HTTPStatus, map[string]interface{}{"error": body})
}
