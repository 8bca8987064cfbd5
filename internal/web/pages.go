package web

import (
	"html/template"
	"net/http"

	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/contact"
	"github.com/debemdeboas/folio/internal/model"
	"github.com/debemdeboas/folio/internal/render"
	"github.com/debemdeboas/folio/internal/theme"
	"github.com/debemdeboas/folio/internal/util"
)

type sidebar struct {
	Categories []render.CategoryCount
	Recent     []recentItem
}

type recentItem struct {
	model.Post
	Date string
}

func (s *Server) sidebar(posts []model.Post) sidebar {
	recent := render.Recent(posts, s.cfg.Blog.RecentCount)
	items := make([]recentItem, 0, len(recent))
	for _, p := range recent {
		items = append(items, recentItem{Post: p, Date: render.FormatDate(p.Date.Time)})
	}
	return sidebar{
		Categories: render.Categories(posts),
		Recent:     items,
	}
}

func (s *Server) pageData(w http.ResponseWriter, r *http.Request) *model.PageData {
	pd := model.NewPageData(r, s.cfg)
	pd.Flash = popFlash(w, r)
	return pd
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, page string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		s.logger.Error().Err(err).Str("template", page).Msg("Error executing template")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	s.renderHome(w, r, contact.Form{}, nil, http.StatusOK)
}

// renderHome renders the portfolio page, refilling the contact form after a
// failed submission.
func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, form contact.Form, errs contact.FieldErrors, status int) {
	data := struct {
		*model.PageData
		Recent        []recentItem
		ContactForm   contact.Form
		ContactErrors contact.FieldErrors
	}{
		PageData:      s.pageData(w, r),
		Recent:        s.sidebar(s.store.Posts()).Recent,
		ContactForm:   form,
		ContactErrors: errs,
	}

	if status != http.StatusOK {
		w.Header().Set(config.HCType, config.CTypeHTML)
		w.WriteHeader(status)
	}
	s.execute(w, r, config.TemplateHome, data)
}

func (s *Server) serveBlog(w http.ResponseWriter, r *http.Request) {
	posts := s.store.Posts()

	data := struct {
		*model.PageData
		Posts      []render.ListingItem
		Sidebar    sidebar
		Categories []string
	}{
		PageData:   s.pageData(w, r),
		Posts:      render.Listing(posts),
		Sidebar:    s.sidebar(posts),
		Categories: s.cfg.Blog.Categories,
	}

	s.execute(w, r, config.TemplateBlog, data)
}

func (s *Server) servePost(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParsePostID(r.PathValue("id"))
	if err != nil {
		http.Error(w, config.HTTPErrInvalidID, http.StatusBadRequest)
		return
	}

	post, ok := s.store.Get(id)
	if !ok {
		http.Error(w, config.HTTPErrNotFound, http.StatusNotFound)
		return
	}

	pd := s.pageData(w, r)
	data := struct {
		*model.PageData
		Post       model.Post
		Date       string
		Body       template.HTML
		Sidebar    sidebar
		Categories []string
	}{
		PageData:   pd,
		Post:       post,
		Date:       render.FormatDate(post.Date.Time),
		Body:       render.Markdown(post.Content, pd.SyntaxTheme),
		Sidebar:    s.sidebar(s.store.Posts()),
		Categories: s.cfg.Blog.Categories,
	}

	s.execute(w, r, config.TemplatePost, data)
}

// serveThemeToggle flips the theme cookie and returns the icon for the new theme.
func (s *Server) serveThemeToggle(w http.ResponseWriter, r *http.Request) {
	newTheme := theme.Toggle(theme.GetThemeFromRequest(r, s.cfg.Theme))

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieTheme,
		Value:    newTheme,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	syntaxTheme := theme.GetDefaultSyntaxTheme(newTheme, s.cfg.Theme)
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil && cookie.Value != "" {
		syntaxTheme = cookie.Value
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.Header().Set("X-Theme", newTheme)
	w.Header().Set("X-Syntax-Theme", syntaxTheme)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(theme.GetThemeIcon(newTheme)))
}

func (s *Server) serveSyntaxTheme(w http.ResponseWriter, r *http.Request) {
	themeStyle := []byte(theme.GenerateSyntaxCSS(r.PathValue("theme")))

	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(themeStyle))
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}
