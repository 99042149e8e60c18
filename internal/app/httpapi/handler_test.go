package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	app "github.com/palisadeengineering/goal-achievement-dashboard/internal/app"
)

const testSecret = "httpapi-test-secret"

type generatorFunc func(ctx context.Context, system, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gen := generatorFunc(func(context.Context, string, string) (string, error) {
		return "Focus your mornings on deep work.", nil
	})
	application, err := app.New(app.Stores{}, app.Collaborators{TextGen: gen}, nil)
	if err != nil {
		t.Fatalf("build application: %v", err)
	}

	h, err := NewHandler(application, Config{JWTSecret: testSecret}, nil)
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, userID int64) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, srv *httptest.Server, token, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, out.Bytes()
}

func decodeBody(t *testing.T, data []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, srv, "", http.MethodGet, "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out map[string]string
	decodeBody(t, body, &out)
	if out["status"] != "ok" {
		t.Fatalf("status body = %q", out["status"])
	}
}

func TestAPIRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, srv, "", http.MethodGet, "/api/v1/goals", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	var out struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, body, &out)
	if out.Error.Code != "UNAUTHORIZED" {
		t.Fatalf("code = %q, want UNAUTHORIZED", out.Error.Code)
	}
}

func TestGoalLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 1)

	resp, body := doRequest(t, srv, token, http.MethodPost, "/api/v1/goals", map[string]interface{}{
		"title":       "Launch the product",
		"targetMonth": 12,
		"targetYear":  2026,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, body)
	}
	var created struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	decodeBody(t, body, &created)
	if created.ID == 0 || created.Title != "Launch the product" {
		t.Fatalf("created = %+v", created)
	}

	resp, body = doRequest(t, srv, token, http.MethodGet, "/api/v1/goals", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var goals []json.RawMessage
	decodeBody(t, body, &goals)
	if len(goals) != 1 {
		t.Fatalf("len(goals) = %d, want 1", len(goals))
	}

	resp, body = doRequest(t, srv, token, http.MethodPatch, fmt.Sprintf("/api/v1/goals/%d", created.ID), map[string]interface{}{
		"status": "completed",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, body %s", resp.StatusCode, body)
	}
	var ok struct {
		Success bool `json:"success"`
	}
	decodeBody(t, body, &ok)
	if !ok.Success {
		t.Fatalf("update body = %s", body)
	}

	resp, _ = doRequest(t, srv, token, http.MethodDelete, fmt.Sprintf("/api/v1/goals/%d", created.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	_, body = doRequest(t, srv, token, http.MethodGet, "/api/v1/goals", nil)
	decodeBody(t, body, &goals)
	if len(goals) != 0 {
		t.Fatalf("len(goals) after delete = %d, want 0", len(goals))
	}
}

func TestValidationErrorShape(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 1)

	resp, body := doRequest(t, srv, token, http.MethodPost, "/api/v1/goals", map[string]interface{}{
		"description": "no title",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var out struct {
		Error struct {
			Code    string                 `json:"code"`
			Message string                 `json:"message"`
			Details map[string]interface{} `json:"details"`
		} `json:"error"`
	}
	decodeBody(t, body, &out)
	if out.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q", out.Error.Code)
	}
	if out.Error.Details["field"] != "title" {
		t.Fatalf("details = %v", out.Error.Details)
	}
}

func TestUnknownFieldsRejected(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 1)

	resp, _ := doRequest(t, srv, token, http.MethodPost, "/api/v1/goals", map[string]interface{}{
		"title":    "x",
		"bogusKey": true,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTimeAuditFlow(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 3)

	resp, body := doRequest(t, srv, token, http.MethodPost, "/api/v1/time-audit", map[string]interface{}{
		"activityDate": "2026-08-24",
		"startTime":    "09:00",
		"endTime":      "10:30",
		"description":  "Deep work",
		"energyLevel":  "green",
		"dollarValue":  3,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, body)
	}

	resp, body = doRequest(t, srv, token, http.MethodGet, "/api/v1/time-audit?startDate=2026-08-24&endDate=2026-08-24", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var entries []struct {
		Description string `json:"description"`
	}
	decodeBody(t, body, &entries)
	if len(entries) != 1 || entries[0].Description != "Deep work" {
		t.Fatalf("entries = %+v", entries)
	}

	resp, _ = doRequest(t, srv, token, http.MethodGet, "/api/v1/time-audit/suggestions?q=deep", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("suggestions status = %d", resp.StatusCode)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	owner := signToken(t, 10)
	other := signToken(t, 11)

	resp, _ := doRequest(t, srv, owner, http.MethodPost, "/api/v1/relationships", map[string]interface{}{
		"contactName":  "Jordan",
		"energyImpact": "green",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	_, body := doRequest(t, srv, other, http.MethodGet, "/api/v1/relationships", nil)
	var contacts []json.RawMessage
	decodeBody(t, body, &contacts)
	if len(contacts) != 0 {
		t.Fatalf("other user sees %d contacts", len(contacts))
	}
}

func TestInsightGeneration(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 5)

	resp, body := doRequest(t, srv, token, http.MethodPost, "/api/v1/insights/generate", map[string]interface{}{
		"type": "goal_progress",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status = %d, body %s", resp.StatusCode, body)
	}
	var insight struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	decodeBody(t, body, &insight)
	if insight.Title != "Goal Progress Analysis" {
		t.Fatalf("title = %q", insight.Title)
	}
	if insight.Content != "Focus your mornings on deep work." {
		t.Fatalf("content = %q", insight.Content)
	}

	resp, body = doRequest(t, srv, token, http.MethodPost, "/api/v1/insights/generate", map[string]interface{}{
		"type": "horoscope",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad type status = %d, body %s", resp.StatusCode, body)
	}
}

func TestPomodoroToday(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 8)

	resp, body := doRequest(t, srv, token, http.MethodPost, "/api/v1/pomodoro", map[string]interface{}{
		"taskDescription": "write report",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start status = %d", resp.StatusCode)
	}
	var sess struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, body, &sess)

	resp, _ = doRequest(t, srv, token, http.MethodPost, fmt.Sprintf("/api/v1/pomodoro/%d/complete", sess.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d", resp.StatusCode)
	}

	_, body = doRequest(t, srv, token, http.MethodGet, "/api/v1/pomodoro/today", nil)
	var count struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
	}
	decodeBody(t, body, &count)
	if count.Total != 1 || count.Completed != 1 {
		t.Fatalf("today = %+v", count)
	}
}

func TestDailyPlanByDateReturnsNullWhenAbsent(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 9)

	resp, body := doRequest(t, srv, token, http.MethodGet, "/api/v1/daily-plans?date=2026-08-20", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := string(bytes.TrimSpace(body)); got != "null" {
		t.Fatalf("body = %q, want null", got)
	}
}

func TestSystemModulesLists(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 2)

	resp, body := doRequest(t, srv, token, http.MethodGet, "/api/v1/system/modules", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var modules []struct {
		Name string `json:"name"`
	}
	decodeBody(t, body, &modules)
	if len(modules) != 9 {
		t.Fatalf("len(modules) = %d, want 9", len(modules))
	}
}

func TestAuditWindowRecordsCalls(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, 4)

	doRequest(t, srv, token, http.MethodGet, "/api/v1/goals", nil)

	resp, body := doRequest(t, srv, token, http.MethodGet, "/api/v1/audit?limit=10", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var entries []struct {
		UserID int64  `json:"userId"`
		Path   string `json:"path"`
		Status int    `json:"status"`
	}
	decodeBody(t, body, &entries)
	if len(entries) == 0 {
		t.Fatalf("audit window empty")
	}
	if entries[0].UserID != 4 || entries[0].Path != "/api/v1/goals" || entries[0].Status != http.StatusOK {
		t.Fatalf("first entry = %+v", entries[0])
	}
}
