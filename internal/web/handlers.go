package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"recette/internal/logging"
	"recette/internal/recipe"
	"recette/internal/services"
	"recette/internal/store"
)

type indexData struct {
	Recipes []store.Summary
}

type addData struct {
	VideoURL string
	Error    string
}

type reviewData struct {
	Recipe   recipe.Normalized
	Degraded bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list recipes", logging.Error(err))
		http.Error(w, "could not list recipes", http.StatusInternalServerError)
		return
	}
	s.render(w, http.StatusOK, "index.html", indexData{Recipes: summaries})
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "add.html", addData{})
}

func (s *Server) handleAddSubmit(w http.ResponseWriter, r *http.Request) {
	videoURL := strings.TrimSpace(r.FormValue("video_url"))
	if videoURL == "" {
		s.render(w, http.StatusBadRequest, "add.html", addData{Error: "a video URL is required"})
		return
	}

	ctx := services.WithVideoURL(r.Context(), videoURL)
	outcome, err := s.runner.Run(ctx, videoURL)
	if err != nil {
		logger := logging.WithContext(ctx, s.logger)
		logger.Error("pipeline run failed", logging.Error(err))
		if notifyErr := s.notifier.NotifyPipelineError(ctx, err, videoURL); notifyErr != nil {
			logger.Warn("error notification failed", logging.Error(notifyErr))
		}
		status := http.StatusBadGateway
		if services.IsTimeout(err) {
			status = http.StatusGatewayTimeout
		}
		s.render(w, status, "add.html", addData{VideoURL: videoURL, Error: err.Error()})
		return
	}

	s.render(w, http.StatusOK, "review.html", reviewData{
		Recipe:   outcome.Normalized,
		Degraded: outcome.Degraded,
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	rec := formRecipe(r)
	if rec.VideoURL == "" {
		http.Error(w, "a video URL is required", http.StatusBadRequest)
		return
	}

	id, err := s.store.Insert(r.Context(), rec)
	if err != nil {
		s.logger.Error("save recipe", logging.Error(err))
		http.Error(w, "could not save recipe", http.StatusInternalServerError)
		return
	}
	if notifyErr := s.notifier.NotifyRecipeSaved(r.Context(), rec.Title, id); notifyErr != nil {
		s.logger.Warn("saved notification failed", logging.Error(notifyErr))
	}
	http.Redirect(w, r, "/recipe/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupRecord(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "recipe.html", map[string]any{"Record": rec})
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupRecord(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "edit.html", map[string]any{"Record": rec})
}

func (s *Server) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupRecord(w, r)
	if !ok {
		return
	}
	edited := formRecipe(r)
	edited.VideoURL = rec.VideoURL
	if err := s.store.Update(r.Context(), rec.ID, edited); err != nil {
		s.logger.Error("update recipe", logging.Error(err))
		http.Error(w, "could not update recipe", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/recipe/"+strconv.FormatInt(rec.ID, 10), http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if _, err := s.store.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete recipe", logging.Error(err))
		http.Error(w, "could not delete recipe", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) lookupRecord(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	id, ok := parseID(w, r)
	if !ok {
		return nil, false
	}
	rec, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		s.logger.Error("get recipe", logging.Error(err))
		http.Error(w, "could not load recipe", http.StatusInternalServerError)
		return nil, false
	}
	if rec == nil {
		http.Error(w, "recipe not found", http.StatusNotFound)
		return nil, false
	}
	return rec, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// formRecipe reads the editable fields of the review and edit forms. The
// reviewer's values are authoritative; only timing fields get the unknown
// sentinel when blanked.
func formRecipe(r *http.Request) recipe.Normalized {
	rec := recipe.Normalized{
		VideoURL:        strings.TrimSpace(r.FormValue("video_url")),
		Title:           strings.TrimSpace(r.FormValue("title")),
		IngredientsText: strings.TrimSpace(r.FormValue("ingredients")),
		StepsText:       strings.TrimSpace(r.FormValue("steps")),
		UtensilsText:    strings.TrimSpace(r.FormValue("utensils")),
		CookTime:        strings.TrimSpace(r.FormValue("cook_time")),
		PrepTime:        strings.TrimSpace(r.FormValue("prep_time")),
	}
	if rec.Title == "" {
		rec.Title = recipe.UnknownTitle
	}
	if rec.CookTime == "" {
		rec.CookTime = recipe.Unknown
	}
	if rec.PrepTime == "" {
		rec.PrepTime = recipe.Unknown
	}
	return rec
}
