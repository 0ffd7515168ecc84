package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/superbiz-erp/superbiz-erp/internal/shared"
)

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetUser("admin")
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Login Successful!"})

	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	cookies := res.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "test_session" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie %+v", cookie)
	}

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	next.AddCookie(cookie)
	restored, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if restored.User() != "admin" {
		t.Fatalf("expected identity to survive round trip, got %q", restored.User())
	}
	flash := restored.PopFlash()
	if flash == nil || flash.Message != "Login Successful!" {
		t.Fatalf("expected flash to survive round trip, got %+v", flash)
	}
	if restored.PopFlash() != nil {
		t.Fatalf("expected flash to pop only once")
	}
}

func TestSessionDestroy(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.SetUser("admin")

	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookie := res.Result().Cookies()[0]

	next := httptest.NewRequest(http.MethodGet, "/logout", nil)
	next.AddCookie(cookie)
	restored, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	sm.Destroy(restored)

	res2 := httptest.NewRecorder()
	if err := sm.Commit(ctx, res2, next, restored); err != nil {
		t.Fatalf("commit destroy: %v", err)
	}
	cleared := res2.Result().Cookies()[0]
	if cleared.MaxAge != -1 {
		t.Fatalf("expected cookie expiry, got MaxAge %d", cleared.MaxAge)
	}

	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.AddCookie(cookie)
	fresh, err := sm.Load(ctx, again)
	if err != nil {
		t.Fatalf("reload after destroy: %v", err)
	}
	if fresh.User() != "" {
		t.Fatalf("expected destroyed session to lose identity, got %q", fresh.User())
	}
}

func TestCSRFTokenLifecycle(t *testing.T) {
	sm := newTestSessionManager(t)
	csrf := shared.NewCSRFManager("csrfsecret")
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	token, err := csrf.EnsureToken(ctx, sess)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	same, err := csrf.EnsureToken(ctx, sess)
	if err != nil {
		t.Fatalf("ensure token again: %v", err)
	}
	if same != token {
		t.Fatalf("expected stable token per session")
	}

	if err := csrf.VerifyToken(ctx, sess, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := csrf.VerifyToken(ctx, sess, "forged"); err == nil {
		t.Fatalf("expected forged token rejection")
	}
	if err := csrf.VerifyToken(ctx, sess, ""); err == nil {
		t.Fatalf("expected empty token rejection")
	}
	if err := csrf.VerifyToken(ctx, nil, token); err == nil {
		t.Fatalf("expected missing session rejection")
	}
}
