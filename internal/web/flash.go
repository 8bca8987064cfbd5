package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/model"
	"github.com/debemdeboas/folio/internal/notify"
)

// setFlash stores a notification to be shown by the page after a redirect.
func setFlash(w http.ResponseWriter, message string, kind notify.Kind) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieFlash,
		Value:    url.QueryEscape(string(kind) + ":" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *model.Flash {
	cookie, err := r.Cookie(config.CookieFlash)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:   config.CookieFlash,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(value, ":")
	if !ok || message == "" {
		return nil
	}
	switch notify.Kind(kind) {
	case notify.KindSuccess, notify.KindError:
	default:
		return nil
	}
	return &model.Flash{Message: message, Kind: kind}
}
