package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/mail"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	auth := service.NewAuthService(userRepo, sessionRepo, &mail.LogMailer{}, "http://localhost", time.Hour)
	tasks := service.NewTaskService(taskRepo, categoryRepo)
	categories := service.NewCategoryService(categoryRepo)

	return New(db, auth, tasks, categories, time.Hour, nil).Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, router *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// signup registers a fresh user and returns the session cookie.
func signup(t *testing.T, router *gin.Engine, email string) *http.Cookie {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup",
		`{"email":"`+email+`","name":"Test","password":"pw"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", w.Code, w.Body.String())
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == SessionCookie {
			return cookie
		}
	}
	t.Fatal("signup set no session cookie")
	return nil
}

func TestHealthz(t *testing.T) {
	router := newTestServer(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz returned %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "ok" || body["db"] != "ok" {
		t.Errorf("healthz body = %v", body)
	}
}

func TestUnauthorizedSignals(t *testing.T) {
	router := newTestServer(t)

	// JSON callers get a 401.
	w := doJSON(t, router, http.MethodGet, "/api/tasks", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("JSON request: got %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "unauthorized" {
		t.Errorf("body = %v", body)
	}

	// Browser form posts get redirected to the login page.
	w = doForm(t, router, "/api/tasks", url.Values{"title": {"x"}}, nil)
	if w.Code != http.StatusSeeOther {
		t.Errorf("form request: got %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}

	// A garbage cookie is the same as none.
	w = doJSON(t, router, http.MethodGet, "/api/tasks", "", &http.Cookie{Name: SessionCookie, Value: "garbage"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage cookie: got %d, want 401", w.Code)
	}
}

func TestTaskLifecycle(t *testing.T) {
	router := newTestServer(t)
	cookie := signup(t, router, "jane@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/tasks",
		`{"title":"Buy milk","priority":"HIGH","due_date":"2099-01-01"}`, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	taskID := decodeBody(t, w)["task_id"].(string)

	w = doJSON(t, router, http.MethodGet, "/api/tasks", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}
	body := decodeBody(t, w)
	tasks := body["tasks"].([]interface{})
	if len(tasks) != 1 {
		t.Fatalf("dashboard holds %d tasks, want 1", len(tasks))
	}
	task := tasks[0].(map[string]interface{})
	if task["priority"] != "High" || task["due_date"] != "2099-01-01" {
		t.Errorf("task view = %v", task)
	}
	// Due 2099 is far outside the 7-day window.
	if upcoming := body["upcoming"]; upcoming != nil && len(upcoming.([]interface{})) != 0 {
		t.Errorf("upcoming should be empty, got %v", upcoming)
	}

	w = doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/complete", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("complete returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/tasks", "", cookie)
	if tasks := decodeBody(t, w)["tasks"].([]interface{}); len(tasks) != 0 {
		t.Errorf("completed task still on dashboard")
	}

	w = doJSON(t, router, http.MethodGet, "/api/history", "", cookie)
	history := decodeBody(t, w)["tasks"].([]interface{})
	if len(history) != 1 {
		t.Fatalf("history holds %d tasks, want 1", len(history))
	}
	done := history[0].(map[string]interface{})
	if done["status"] != "done" || done["completed_at"] == nil {
		t.Errorf("history task = %v", done)
	}
}

func TestTaskNotFoundAcrossUsers(t *testing.T) {
	router := newTestServer(t)
	owner := signup(t, router, "owner@example.com")
	intruder := signup(t, router, "intruder@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/tasks", `{"title":"mine"}`, owner)
	taskID := decodeBody(t, w)["task_id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/complete", "", intruder)
	if w.Code != http.StatusNotFound {
		t.Errorf("complete as intruder: got %d, want 404", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/api/tasks/"+taskID+"/delete", "", intruder)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete as intruder: got %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/tasks/not-a-number/delete", "", owner)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed id: got %d, want 400", w.Code)
	}
}

func TestFormPostsRedirect(t *testing.T) {
	router := newTestServer(t)
	cookie := signup(t, router, "jane@example.com")

	w := doForm(t, router, "/api/tasks", url.Values{"title": {"From a form"}, "priority": {"low"}}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("form create returned %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("redirect location = %q, want /dashboard", loc)
	}

	w = doJSON(t, router, http.MethodGet, "/api/tasks", "", cookie)
	if tasks := decodeBody(t, w)["tasks"].([]interface{}); len(tasks) != 1 {
		t.Errorf("form-created task missing from dashboard")
	}
}

func TestCategoryEndpoints(t *testing.T) {
	router := newTestServer(t)
	cookie := signup(t, router, "jane@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/categories", `{"name":"Shopping"}`, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create category returned %d: %s", w.Code, w.Body.String())
	}
	// Duplicate is a benign no-op, not an error.
	w = doJSON(t, router, http.MethodPost, "/api/categories", `{"name":"Shopping"}`, cookie)
	if w.Code != http.StatusCreated {
		t.Errorf("duplicate create returned %d, want 201", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/api/categories", `{"name":"  "}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name returned %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/categories", "", cookie)
	categories := decodeBody(t, w)["categories"].([]interface{})
	if len(categories) != 1 {
		t.Errorf("got %d categories, want 1", len(categories))
	}
}

func TestAuthEndpoints(t *testing.T) {
	router := newTestServer(t)
	cookie := signup(t, router, "jane@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/auth/me", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("me returned %d", w.Code)
	}
	user := decodeBody(t, w)["user"].(map[string]interface{})
	if user["email"] != "jane@example.com" {
		t.Errorf("me returned %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("me leaked the password hash")
	}

	w = doJSON(t, router, http.MethodPost, "/api/auth/signup", `{"email":"jane@example.com","password":"pw"}`, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup returned %d, want 409", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"nope"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login returned %d, want 401", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/auth/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout returned %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/auth/me", "", cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout returned %d, want 401", w.Code)
	}

	// Forgot-password responds identically for unknown accounts.
	w = doJSON(t, router, http.MethodPost, "/api/auth/forgot-password", `{"email":"nobody@example.com"}`, nil)
	if w.Code != http.StatusOK {
		t.Errorf("forgot-password returned %d, want 200", w.Code)
	}
}
