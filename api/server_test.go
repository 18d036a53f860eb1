package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setidure/blog-api/models"
	"github.com/setidure/blog-api/services"
	"github.com/setidure/blog-api/store"
)

const testAPIKey = "test-secret-key"

// stubStore is an in-memory BlogStore that counts accesses so tests can
// assert that rejected requests caused no side effects.
type stubStore struct {
	posts    []models.BlogPost
	loads    int
	saves    int
	failSave bool
}

func (s *stubStore) LoadAll(_ context.Context) ([]models.BlogPost, error) {
	s.loads++
	out := make([]models.BlogPost, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *stubStore) SaveAll(_ context.Context, posts []models.BlogPost) error {
	if s.failSave {
		return fmt.Errorf("%w: disk full", store.ErrWrite)
	}
	s.saves++
	s.posts = make([]models.BlogPost, len(posts))
	copy(s.posts, posts)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

// post decodes the envelope's data field as a single blog post.
func (e envelope) post(t *testing.T) models.BlogPost {
	t.Helper()
	var p models.BlogPost
	require.NoError(t, json.Unmarshal(e.Data, &p))
	return p
}

func newTestRouter(t *testing.T, st store.BlogStore) http.Handler {
	t.Helper()

	service := services.NewBlogService(st, services.Defaults{
		Author: "Setidure Technologies Team",
		Image:  "/api/placeholder/800/400",
	})

	return newRouter(service, withConfig(map[string]string{
		"API_KEY":        testAPIKey,
		"RATE_LIMIT_MAX": "1000",
	}))
}

func doJSON(t *testing.T, handler http.Handler, method, target, apiKey string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func validBody() map[string]any {
	return map[string]any{
		"title":   "Hello World Title Here",
		"excerpt": "A sufficiently long excerpt text",
		"content": strings.TrimSpace(strings.Repeat("word ", 60)),
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	rec, env := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Blog API is running", env.Message)
}

func TestCreateBlogEndToEnd(t *testing.T) {
	st := &stubStore{}
	router := newTestRouter(t, st)

	rec, env := doJSON(t, router, http.MethodPost, "/api/blogs", testAPIKey, validBody())

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Blog post created successfully", env.Message)
	post := env.post(t)
	assert.Equal(t, 1, post.ID)
	assert.Equal(t, "hello-world-title-here", post.Slug)
	assert.Equal(t, "1 min read", post.ReadTime)
	assert.False(t, post.Featured)
	assert.Equal(t, "Setidure Technologies Team", post.Author)
	assert.Equal(t, "/api/placeholder/800/400", post.Image)
	assert.Equal(t, 1, st.saves)
}

func TestListBlogs(t *testing.T) {
	st := &stubStore{posts: []models.BlogPost{
		{ID: 1, Slug: "one", Tags: []string{}},
		{ID: 2, Slug: "two", Tags: []string{}},
	}}
	router := newTestRouter(t, st)

	rec, env := doJSON(t, router, http.MethodGet, "/api/blogs", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Count)
}

func TestGetBlogBySlug(t *testing.T) {
	st := &stubStore{posts: []models.BlogPost{{ID: 5, Slug: "known-slug", Title: "Known"}}}
	router := newTestRouter(t, st)

	rec, env := doJSON(t, router, http.MethodGet, "/api/blogs/known-slug", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, env.post(t).ID)

	rec, env = doJSON(t, router, http.MethodGet, "/api/blogs/unknown-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Blog post not found", env.Error)
}

func TestAuthGateHasNoSideEffects(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		key    string
	}{
		{name: "create missing key", method: http.MethodPost, target: "/api/blogs", key: ""},
		{name: "create wrong key", method: http.MethodPost, target: "/api/blogs", key: "wrong-key"},
		{name: "update missing key", method: http.MethodPut, target: "/api/blogs/1", key: ""},
		{name: "delete wrong key", method: http.MethodDelete, target: "/api/blogs/1", key: "wrong-key"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := &stubStore{}
			router := newTestRouter(t, st)

			rec, env := doJSON(t, router, tc.method, tc.target, tc.key, validBody())

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "Invalid or missing API key", env.Error)
			assert.Zero(t, st.loads, "rejected request must not read the store")
			assert.Zero(t, st.saves, "rejected request must not write the store")
		})
	}
}

func TestAuthAcceptsQueryParameterKey(t *testing.T) {
	st := &stubStore{}
	router := newTestRouter(t, st)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/blogs?apiKey="+testAPIKey, "", validBody())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateValidationReportsAllViolations(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	body := map[string]any{
		"title":   "abc",
		"excerpt": "long enough excerpt",
		"content": "too short",
	}

	rec, env := doJSON(t, router, http.MethodPost, "/api/blogs", testAPIKey, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation error", env.Error)
	assert.Len(t, env.Details, 2)
}

func TestUpdateBlog(t *testing.T) {
	st := &stubStore{}
	router := newTestRouter(t, st)

	_, createdEnv := doJSON(t, router, http.MethodPost, "/api/blogs", testAPIKey, validBody())
	created := createdEnv.post(t)

	body := validBody()
	body["title"] = "A Completely Different Title"
	rec, env := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/blogs/%d", created.ID), testAPIKey, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog post updated successfully", env.Message)
	updated := env.post(t)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.PublishDate, updated.PublishDate)
	assert.Equal(t, "a-completely-different-title", updated.Slug)
}

func TestUpdateUnknownOrMalformedID(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	rec, env := doJSON(t, router, http.MethodPut, "/api/blogs/42", testAPIKey, validBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog post not found", env.Error)

	rec, env = doJSON(t, router, http.MethodPut, "/api/blogs/not-a-number", testAPIKey, validBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog post not found", env.Error)
}

func TestDeleteThenGet(t *testing.T) {
	st := &stubStore{}
	router := newTestRouter(t, st)

	_, createdEnv := doJSON(t, router, http.MethodPost, "/api/blogs", testAPIKey, validBody())
	created := createdEnv.post(t)

	rec, env := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/blogs/%d", created.ID), testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog post deleted successfully", env.Message)
	assert.Equal(t, created.ID, env.post(t).ID)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/blogs/"+created.Slug, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateStoreWriteFailure(t *testing.T) {
	router := newTestRouter(t, &stubStore{failSave: true})

	rec, env := doJSON(t, router, http.MethodPost, "/api/blogs", testAPIKey, validBody())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to create blog post", env.Error)
}

func TestMalformedBody(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader("{not json"))
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnmatchedEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubStore{})

	rec, env := doJSON(t, router, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Endpoint not found", env.Error)
}

func TestRateLimitCeiling(t *testing.T) {
	service := services.NewBlogService(&stubStore{}, services.Defaults{})
	router := newRouter(service, withConfig(map[string]string{
		"API_KEY":           testAPIKey,
		"RATE_LIMIT_MAX":    "2",
		"RATE_LIMIT_WINDOW": "1m",
	}))

	for i := 0; i < 2; i++ {
		rec, _ := doJSON(t, router, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, env.Success)
}
