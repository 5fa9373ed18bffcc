package portfolio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestLoginWrongPassword(t *testing.T) {
	a := newTestApp(t)

	req := formRequest("/admin/login", url.Values{"password": {"wrong"}})
	rec := invoke(t, a, a.handleAdminLogin, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Invalid password" {
		t.Errorf(`error = %q, want "Invalid password"`, body["error"])
	}
}

func TestLoginRateLimited(t *testing.T) {
	a := newTestApp(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		req := formRequest("/admin/login", url.Values{"password": {"wrong"}})
		req.RemoteAddr = "203.0.113.50:12345"
		last = invoke(t, a, a.handleAdminLogin, req, nil)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Errorf("status after burst = %d, want 429", last.Code)
	}
}

func TestLoginSuccessNotRateLimited(t *testing.T) {
	a := newTestApp(t)

	// Only failed attempts count against the budget, so a legitimate admin
	// logging in repeatedly is never locked out.
	for i := 0; i < 8; i++ {
		req := formRequest("/admin/login", url.Values{"password": {a.Config.AdminPassword}})
		req.RemoteAddr = "203.0.113.51:12345"
		rec := invoke(t, a, a.handleAdminLogin, req, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("login %d status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestSavePostUnauthorized(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	before, err := a.Store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}

	form := url.Values{
		"title":     {"Sneaky Post"},
		"excerpt":   {"e"},
		"content":   {"c"},
		"imageUrl":  {"https://example.com/i.png"},
		"imageHint": {"h"},
	}
	rec := invoke(t, a, a.handleSavePost, formRequest("/api/posts", form), nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	var res SaveResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Success || res.Message != "Unauthorized" {
		t.Errorf("envelope = %+v, want unauthorized failure", res)
	}

	after, err := a.Store.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("store modified by unauthorized save: %d -> %d", len(before), len(after))
	}
}

func TestDeletePostUnauthorized(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	created := a.saveBlogPost(ctx, validBlogForm())
	if !created.Success {
		t.Fatalf("seed failed: %s", created.Message)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+created.Key, nil)
	rec := invoke(t, a, a.handleDeletePost, req, map[string]string{"slug": created.Key})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if _, err := a.Store.GetPost(ctx, created.Key); err != nil {
		t.Errorf("post removed by unauthorized delete: %v", err)
	}
}

func TestSavePostAuthorized(t *testing.T) {
	a := newTestApp(t)
	cookies := loginCookies(t, a)

	form := url.Values{
		"title":     {"An Authorized Post"},
		"excerpt":   {"excerpt"},
		"content":   {"<p>content</p>"},
		"imageUrl":  {"https://example.com/cover.png"},
		"imageHint": {"cover"},
		"tags":      {"go, web"},
	}
	req := formRequest("/api/posts", form)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := invoke(t, a, a.handleSavePost, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res SaveResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !res.Success || res.Key != "an-authorized-post" {
		t.Errorf("envelope = %+v", res)
	}
}

func TestGetPostNotFoundHTTP(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil)
	rec := invoke(t, a, a.handleGetPost, req, map[string]string{"slug": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListPostsReflectsMutations(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := invoke(t, a, a.handleListPosts, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	created := a.saveBlogPost(ctx, validBlogForm())
	if !created.Success {
		t.Fatalf("save failed: %s", created.Message)
	}

	// The cache is invalidated by the save, so the next read sees the post.
	rec = invoke(t, a, a.handleListPosts, httptest.NewRequest(http.MethodGet, "/api/posts", nil), nil)
	if !strings.Contains(rec.Body.String(), created.Key) {
		t.Errorf("list after save missing %q: %s", created.Key, rec.Body.String())
	}
}

func TestListPostsTagWithoutMatches(t *testing.T) {
	a := newTestApp(t)

	created := a.saveBlogPost(context.Background(), validBlogForm())
	if !created.Success {
		t.Fatalf("seed failed: %s", created.Message)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts?tag=nomatch", nil)
	rec := invoke(t, a, a.handleListPosts, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"posts":[]`) {
		t.Errorf("unmatched tag should serialize posts as []: %s", rec.Body.String())
	}
}

func TestFormatCitationRequiresAdmin(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{
		"title":   {"T"},
		"authors": {"A"},
		"venue":   {"V"},
		"year":    {"2024"},
		"style":   {StyleAPA},
	}
	rec := invoke(t, a, a.handleFormatCitation, formRequest("/api/citation", form), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	cookies := loginCookies(t, a)
	req := formRequest("/api/citation", form)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = invoke(t, a, a.handleFormatCitation, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "A (2024)") {
		t.Errorf("unexpected citation body: %s", rec.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	a := newTestApp(t)
	cookies := loginCookies(t, a)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := invoke(t, a, handleAdminLogout, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	// The logout response carries an expired cookie; a save using it fails.
	expired := rec.Result().Cookies()
	save := formRequest("/api/posts", url.Values{
		"title": {"After Logout"}, "excerpt": {"e"}, "content": {"c"},
		"imageUrl": {"https://example.com/i.png"}, "imageHint": {"h"},
	})
	for _, c := range expired {
		save.AddCookie(c)
	}
	rec = invoke(t, a, a.handleSavePost, save, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("save after logout status = %d, want 401", rec.Code)
	}
}
