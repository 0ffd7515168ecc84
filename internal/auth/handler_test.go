package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/superbiz-erp/superbiz-erp/internal/auth"
	"github.com/superbiz-erp/superbiz-erp/internal/shared"
	"github.com/superbiz-erp/superbiz-erp/internal/view"
	_ "github.com/superbiz-erp/superbiz-erp/testing"
)

type stubRepo struct {
	admin *auth.Admin
}

func (s *stubRepo) FindByUsername(ctx context.Context, username string) (*auth.Admin, error) {
	if s.admin == nil || s.admin.Username != username {
		return nil, shared.ErrNotFound
	}
	return s.admin, nil
}

func newAuthHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := auth.NewHandler(logger, auth.NewService(repo), templates, csrfManager)
	return handler, sessionManager
}

func seededAdmin(t *testing.T, username, password string) *auth.Admin {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &auth.Admin{Username: username, PasswordHash: string(hashed)}
}

func requestWithSession(t *testing.T, sm *shared.SessionManager, method, target string, body string) (*http.Request, *shared.Session) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	sess, err := sm.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	return req.WithContext(ctx), sess
}

func TestLoginPage(t *testing.T) {
	handler, sm := newAuthHandler(t, &stubRepo{})

	req, sess := requestWithSession(t, sm, http.MethodGet, "/", "")
	res := httptest.NewRecorder()
	handler.ShowLoginForTest(res, req)
	if err := sm.Commit(req.Context(), res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "<form") {
		t.Fatalf("expected login form in body")
	}
}

func TestLoginSuccess(t *testing.T) {
	handler, sm := newAuthHandler(t, &stubRepo{admin: seededAdmin(t, "admin", "admin123")})

	form := url.Values{}
	form.Set("user", "admin")
	form.Set("pass", "admin123")

	req, sess := requestWithSession(t, sm, http.MethodPost, "/login", form.Encode())
	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
	if sess.User() != "admin" {
		t.Fatalf("expected session identity %q, got %q", "admin", sess.User())
	}
	flash := sess.PopFlash()
	if flash == nil || flash.Kind != "success" {
		t.Fatalf("expected success flash, got %+v", flash)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	handler, sm := newAuthHandler(t, &stubRepo{admin: seededAdmin(t, "admin", "admin123")})

	form := url.Values{}
	form.Set("user", "admin")
	form.Set("pass", "wrong")

	req, sess := requestWithSession(t, sm, http.MethodPost, "/login", form.Encode())
	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if sess.User() != "" {
		t.Fatalf("expected session identity unset, got %q", sess.User())
	}
	flash := sess.PopFlash()
	if flash == nil || flash.Kind != "danger" || !strings.Contains(flash.Message, "Invalid Username or Password") {
		t.Fatalf("expected failure flash, got %+v", flash)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	handler, sm := newAuthHandler(t, &stubRepo{})

	form := url.Values{}
	form.Set("user", "ghost")
	form.Set("pass", "whatever")

	req, sess := requestWithSession(t, sm, http.MethodPost, "/login", form.Encode())
	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)

	if loc := res.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if sess.User() != "" {
		t.Fatalf("expected session identity unset, got %q", sess.User())
	}
}

func TestLogoutClearsIdentity(t *testing.T) {
	handler, sm := newAuthHandler(t, &stubRepo{})

	req, sess := requestWithSession(t, sm, http.MethodGet, "/logout", "")
	sess.SetUser("admin")
	res := httptest.NewRecorder()
	handler.HandleLogoutForTest(res, req)

	if loc := res.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if sess.User() != "" {
		t.Fatalf("expected session identity cleared, got %q", sess.User())
	}
	flash := sess.PopFlash()
	if flash == nil || flash.Kind != "info" {
		t.Fatalf("expected info flash, got %+v", flash)
	}
}
