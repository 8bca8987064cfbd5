// Package web serves the portfolio and blog pages, the form handlers that
// feed the post store and the JSON API.
package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/folio/internal/blog"
	"github.com/debemdeboas/folio/internal/cache"
	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/contact"
	"github.com/debemdeboas/folio/internal/notify"
	"github.com/debemdeboas/folio/internal/routes"
	"github.com/debemdeboas/folio/internal/sse"
	"github.com/debemdeboas/folio/internal/util"
)

// EventPostsChanged tells open pages that the collection was modified.
const EventPostsChanged = "posts-changed"

type Server struct {
	cfg     *config.Config
	store   *blog.PostStore
	clients *sse.Clients
	sink    notify.Sink
	contact *contact.Sender
	logger  zerolog.Logger

	assets    fs.FS
	static    fs.FS
	templates map[string]*template.Template
}

type Option func(*Server)

// WithSink replaces the default notification sink, which broadcasts over
// SSE and logs.
func WithSink(sink notify.Sink) Option {
	return func(s *Server) { s.sink = sink }
}

func WithContactSender(sender *contact.Sender) Option {
	return func(s *Server) { s.contact = sender }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer parses the page templates found in assets. assets must contain
// the templates and static directories.
func NewServer(cfg *config.Config, store *blog.PostStore, assets fs.FS, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		store:   store,
		clients: sse.NewClients(),
		logger:  zerolog.Nop(),
		assets:  assets,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = notify.Multi{notify.NewSSESink(s.clients), notify.NewLogSink(s.logger)}
	}
	if s.contact == nil {
		s.contact = contact.NewSender(msDuration(cfg.Contact.SubmitDelayMs), s.logger)
	}

	static, err := fs.Sub(assets, config.StaticLocalDir)
	if err != nil {
		return nil, fmt.Errorf("error opening static files: %w", err)
	}
	s.static = static

	s.templates = make(map[string]*template.Template)
	for _, page := range []string{config.TemplateHome, config.TemplateBlog, config.TemplatePost} {
		tmpl, err := template.ParseFS(assets,
			path.Join(config.TemplatesLocalDir, config.TemplateLayout),
			path.Join(config.TemplatesLocalDir, page),
		)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", page, err)
		}
		s.templates[page] = tmpl
	}

	s.hashStatic()
	return s, nil
}

// hashStatic records an ETag for every embedded static file.
func (s *Server) hashStatic() {
	fs.WalkDir(s.static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(s.static, p)
		if err != nil {
			return nil
		}
		cache.SetStaticHash(config.StaticURLPath+p, util.ContentHash(data))
		return nil
	})
}

// Clients exposes the SSE hub so other components can broadcast events.
func (s *Server) Clients() *sse.Clients {
	return s.clients
}

// Handler returns the complete middleware-wrapped router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+routes.RobotsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCType, "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("User-agent: *\nDisallow:"))
	})
	mux.Handle("GET "+config.StaticURLPath, http.StripPrefix(config.StaticURLPath, http.FileServer(http.FS(s.static))))

	mux.HandleFunc("GET "+routes.RootPath, s.serveHome)
	mux.HandleFunc("GET "+routes.BlogPath, s.serveBlog)
	mux.HandleFunc("GET "+routes.BlogPostPath, s.servePost)

	mux.HandleFunc("POST "+routes.BlogPosts, s.handleCreatePost)
	mux.HandleFunc("POST "+routes.BlogPostEdit, s.handleEditPost)
	mux.HandleFunc("POST "+routes.BlogPostDelete, s.handleDeletePost)
	mux.HandleFunc("POST "+routes.ContactPath, s.handleContact)

	mux.HandleFunc("GET "+routes.APIPosts, s.apiListPosts)
	mux.HandleFunc("POST "+routes.APIPosts, s.apiCreatePost)
	mux.HandleFunc("GET "+routes.APIPost, s.apiGetPost)
	mux.HandleFunc("PUT "+routes.APIPost, s.apiEditPost)
	mux.HandleFunc("DELETE "+routes.APIPost, s.apiDeletePost)
	mux.HandleFunc("GET "+routes.APICategories, s.apiCategories)

	mux.HandleFunc("POST "+routes.ThemeToggle, s.serveThemeToggle)
	mux.HandleFunc("GET "+routes.SyntaxThemeGet, s.serveSyntaxTheme)
	mux.HandleFunc("GET "+routes.EventsPath, sse.Handler(s.clients, s.logger))

	return s.requestID(s.accessLog(cacheIt(secureHeaders(mux))))
}

// mutated reports a successful mutation to the sink and to other open pages.
// Failures are only shown to the requester.
func (s *Server) mutated(message string) {
	s.sink.Notify(message, notify.KindSuccess)
	s.clients.Broadcast(sse.Event{Name: EventPostsChanged, Data: message})
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
