package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"recette/internal/pipeline"
	"recette/internal/recipe"
	"recette/internal/services"
	"recette/internal/store"
	"recette/internal/testsupport"
)

type fakeRunner struct {
	outcome pipeline.Outcome
	err     error
	lastURL string
}

func (f *fakeRunner) Run(ctx context.Context, videoURL string) (pipeline.Outcome, error) {
	f.lastURL = videoURL
	return f.outcome, f.err
}

func newTestServer(t *testing.T, runner PipelineRunner) (*Server, *store.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	srv, err := New(cfg, nil, st, runner, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, st
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func sampleOutcome(videoURL string) pipeline.Outcome {
	normalized := recipe.Normalized{
		VideoURL:        videoURL,
		Title:           "Purée maison",
		IngredientsText: "pommes de terre (1 kg)",
		StepsText:       "- Éplucher.\n- Cuire.",
		UtensilsText:    "casserole",
		CookTime:        "20 minutes",
		PrepTime:        "unknown",
	}
	return pipeline.Outcome{
		VideoURL:   videoURL,
		Title:      normalized.Title,
		Normalized: normalized,
	}
}

func TestIndexEmpty(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})
	rr := get(t, srv.Router(), "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "No recipes yet") {
		t.Fatalf("expected empty-state message, got %s", rr.Body.String())
	}
}

func TestAddSubmitRendersReviewForm(t *testing.T) {
	runner := &fakeRunner{outcome: sampleOutcome("https://example.com/v")}
	srv, _ := newTestServer(t, runner)

	rr := postForm(t, srv.Router(), "/add", url.Values{"video_url": {"https://example.com/v"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rr.Code, rr.Body.String())
	}
	if runner.lastURL != "https://example.com/v" {
		t.Fatalf("runner received %q", runner.lastURL)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "pommes de terre (1 kg)") {
		t.Fatalf("expected pre-filled ingredients, got %s", body)
	}
	if !strings.Contains(body, `action="/save"`) {
		t.Fatal("expected save form")
	}
}

func TestAddSubmitRequiresURL(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})
	rr := postForm(t, srv.Router(), "/add", url.Values{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestAddSubmitSurfacesPipelineFailure(t *testing.T) {
	runner := &fakeRunner{err: services.Wrap(services.ErrFetch, "fetch", "download", "no audio stream available", nil)}
	srv, _ := newTestServer(t, runner)

	rr := postForm(t, srv.Router(), "/add", url.Values{"video_url": {"https://example.com/bad"}})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "no audio stream available") {
		t.Fatalf("expected provider detail in page, got %s", rr.Body.String())
	}
}

func TestAddSubmitTimeoutStatus(t *testing.T) {
	runner := &fakeRunner{err: services.Wrap(services.ErrTimeout, "fetch", "deadline", "media acquisition timed out", nil)}
	srv, _ := newTestServer(t, runner)

	rr := postForm(t, srv.Router(), "/add", url.Values{"video_url": {"https://example.com/slow"}})
	if rr.Code != http.StatusGatewayTimeout {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestSavePersistsAndRedirects(t *testing.T) {
	srv, st := newTestServer(t, &fakeRunner{})

	form := url.Values{
		"video_url":   {"https://example.com/v"},
		"title":       {"Purée corrigée"},
		"ingredients": {"pommes de terre"},
		"steps":       {"- tout refaire"},
		"utensils":    {""},
		"cook_time":   {""},
		"prep_time":   {""},
	}
	rr := postForm(t, srv.Router(), "/save", form)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("unexpected status: %d (%s)", rr.Code, rr.Body.String())
	}
	location := rr.Header().Get("Location")
	if !strings.HasPrefix(location, "/recipe/") {
		t.Fatalf("unexpected redirect: %q", location)
	}

	summaries, err := st.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Title != "Purée corrigée" {
		t.Fatalf("unexpected rows: %+v", summaries)
	}

	rec, err := st.GetByID(context.Background(), summaries[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Recipe.CookTime != recipe.Unknown {
		t.Fatalf("expected blank cook time mapped to sentinel, got %q", rec.Recipe.CookTime)
	}
}

func TestDetailNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRunner{})
	rr := get(t, srv.Router(), "/recipe/999")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestEditSubmitUpdatesRecord(t *testing.T) {
	srv, st := newTestServer(t, &fakeRunner{})
	id, err := st.Insert(context.Background(), sampleOutcome("https://example.com/v").Normalized)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	form := url.Values{
		"title":       {"Nouveau titre"},
		"ingredients": {"autre chose"},
		"steps":       {"- refaire"},
	}
	rr := postForm(t, srv.Router(), "/recipe/1/edit", form)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("unexpected status: %d (%s)", rr.Code, rr.Body.String())
	}

	rec, err := st.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Title != "Nouveau titre" {
		t.Fatalf("edit not applied: %+v", rec)
	}
	if rec.VideoURL != "https://example.com/v" {
		t.Fatalf("video url must survive edits, got %q", rec.VideoURL)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	srv, st := newTestServer(t, &fakeRunner{})
	id, err := st.Insert(context.Background(), sampleOutcome("https://example.com/v").Normalized)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	rr := postForm(t, srv.Router(), "/recipe/1/delete", url.Values{})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	rec, err := st.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected row deleted, got %+v", rec)
	}
}
