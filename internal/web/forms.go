package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/contact"
	"github.com/debemdeboas/folio/internal/model"
	"github.com/debemdeboas/folio/internal/notify"
	"github.com/debemdeboas/folio/internal/routes"
)

const msgFieldsRequired = "Title, content and category are required."

type postForm struct {
	Title    string
	Content  string
	Category string
}

func readPostForm(r *http.Request) postForm {
	return postForm{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Content:  strings.TrimSpace(r.FormValue("content")),
		Category: strings.TrimSpace(r.FormValue("category")),
	}
}

// redirectBack sends the browser to target with a flash message.
func redirectBack(w http.ResponseWriter, r *http.Request, target, message string, kind notify.Kind) {
	setFlash(w, message, kind)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	f := readPostForm(r)

	post, err := s.store.Create(r.Context(), f.Title, f.Content, f.Category)
	switch {
	case errors.Is(err, model.ErrValidation):
		redirectBack(w, r, routes.BlogPath, msgFieldsRequired, notify.KindError)
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error creating post")
		redirectBack(w, r, routes.BlogPath, notify.MsgSaveFailed, notify.KindError)
		return
	}

	s.mutated(notify.MsgPostCreated)
	redirectBack(w, r, routes.PostPath(post.ID.String()), notify.MsgPostCreated, notify.KindSuccess)
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParsePostID(r.PathValue("id"))
	if err != nil {
		http.Error(w, config.HTTPErrInvalidID, http.StatusBadRequest)
		return
	}
	f := readPostForm(r)
	back := routes.PostPath(id.String())

	_, ok, err := s.store.Edit(r.Context(), id, f.Title, f.Content, f.Category)
	switch {
	case errors.Is(err, model.ErrValidation):
		redirectBack(w, r, back, msgFieldsRequired, notify.KindError)
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Stringer("id", id).Msg("Error editing post")
		redirectBack(w, r, back, notify.MsgSaveFailed, notify.KindError)
		return
	case !ok:
		// The post may have been deleted from another tab.
		http.Redirect(w, r, routes.BlogPath, http.StatusSeeOther)
		return
	}

	s.mutated(notify.MsgPostUpdated)
	redirectBack(w, r, back, notify.MsgPostUpdated, notify.KindSuccess)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParsePostID(r.PathValue("id"))
	if err != nil {
		http.Error(w, config.HTTPErrInvalidID, http.StatusBadRequest)
		return
	}

	ok, err := s.store.Delete(r.Context(), id)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Stringer("id", id).Msg("Error deleting post")
		redirectBack(w, r, routes.BlogPath, notify.MsgSaveFailed, notify.KindError)
		return
	}
	if !ok {
		http.Redirect(w, r, routes.BlogPath, http.StatusSeeOther)
		return
	}

	s.mutated(notify.MsgPostDeleted)
	redirectBack(w, r, routes.BlogPath, notify.MsgPostDeleted, notify.KindSuccess)
}

type contactResponse struct {
	OK      bool                `json:"ok"`
	Message string              `json:"message"`
	Errors  contact.FieldErrors `json:"errors,omitempty"`
}

// handleContact answers script submissions with JSON and plain form posts
// with a redirect or the re-rendered form.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	form := contact.Form{
		Name:    r.FormValue(contact.FieldName),
		Email:   r.FormValue(contact.FieldEmail),
		Subject: r.FormValue(contact.FieldSubject),
		Message: r.FormValue(contact.FieldMessage),
	}
	wantsJSON := strings.Contains(r.Header.Get("Accept"), config.CTypeJSON)

	fieldErrs, err := s.contact.Submit(r.Context(), form)
	switch {
	case errors.Is(err, contact.ErrInvalid):
		if wantsJSON {
			writeJSON(w, http.StatusUnprocessableEntity, contactResponse{Message: contact.MsgFailed, Errors: fieldErrs})
			return
		}
		s.renderHome(w, r, form.Normalize(), fieldErrs, http.StatusUnprocessableEntity)
		return
	case err != nil:
		if wantsJSON {
			writeJSON(w, http.StatusServiceUnavailable, contactResponse{Message: contact.MsgFailed})
			return
		}
		redirectBack(w, r, "/#contact", contact.MsgFailed, notify.KindError)
		return
	}

	if wantsJSON {
		writeJSON(w, http.StatusOK, contactResponse{OK: true, Message: contact.MsgSent})
		return
	}
	redirectBack(w, r, "/#contact", contact.MsgSent, notify.KindSuccess)
}
