package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/model"
	"github.com/debemdeboas/folio/internal/notify"
	"github.com/debemdeboas/folio/internal/render"
)

const maxBodyBytes = 1 << 20

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Error: message})
}

func decodePostRequest(w http.ResponseWriter, r *http.Request) (postRequest, bool) {
	var req postRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return req, false
	}
	return req, true
}

func pathID(w http.ResponseWriter, r *http.Request) (model.PostID, bool) {
	id, err := model.ParsePostID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, config.HTTPErrInvalidID)
		return 0, false
	}
	return id, true
}

func (s *Server) apiListPosts(w http.ResponseWriter, r *http.Request) {
	posts := s.store.Posts()
	if posts == nil {
		posts = []model.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) apiGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	post, found := s.store.Get(id)
	if !found {
		writeError(w, http.StatusNotFound, config.HTTPErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) apiCreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	post, err := s.store.Create(r.Context(), req.Title, req.Content, req.Category)
	if err != nil {
		s.apiStoreError(w, r, err)
		return
	}

	s.mutated(notify.MsgPostCreated)
	w.Header().Set("Location", "/api/posts/"+post.ID.String())
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) apiEditPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodePostRequest(w, r)
	if !ok {
		return
	}

	post, found, err := s.store.Edit(r.Context(), id, req.Title, req.Content, req.Category)
	if err != nil {
		s.apiStoreError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, config.HTTPErrNotFound)
		return
	}

	s.mutated(notify.MsgPostUpdated)
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) apiDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	found, err := s.store.Delete(r.Context(), id)
	if err != nil {
		s.apiStoreError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, config.HTTPErrNotFound)
		return
	}

	s.mutated(notify.MsgPostDeleted)
	w.WriteHeader(http.StatusNoContent)
}

type categoriesResponse struct {
	Categories []render.CategoryCount `json:"categories"`
	Recent     []model.Post           `json:"recent"`
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	posts := s.store.Posts()
	categories := render.Categories(posts)
	if categories == nil {
		categories = []render.CategoryCount{}
	}
	writeJSON(w, http.StatusOK, categoriesResponse{
		Categories: categories,
		Recent:     render.Recent(posts, s.cfg.Blog.RecentCount),
	})
}

func (s *Server) apiStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error saving posts")
	writeError(w, http.StatusInternalServerError, notify.MsgSaveFailed)
}
