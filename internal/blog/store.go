// Package blog owns the ordered post collection and keeps it in sync with
// the persisted state.
package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/folio/internal/model"
	"github.com/debemdeboas/folio/internal/repository"
)

const DefaultKey = "blogPosts"

// ErrNotLoaded is returned by mutations until Initialize has read the
// persisted state, so an unreadable backend is never overwritten.
var ErrNotLoaded = errors.New("posts not loaded")

// LoadSource records where the session's collection came from.
type LoadSource int

const (
	// SourceUnknown is the state before a successful Initialize.
	SourceUnknown LoadSource = iota
	SourcePersisted
	SourceSeedAbsent
	SourceSeedMalformed
)

func (s LoadSource) String() string {
	switch s {
	case SourcePersisted:
		return "persisted"
	case SourceSeedAbsent:
		return "seed (absent)"
	case SourceSeedMalformed:
		return "seed (malformed)"
	}
	return "unknown"
}

// PostStore is the in-memory source of truth for the posts of one session.
// Posts are ordered newest first. Every mutation rewrites the whole
// collection under a single key before returning.
type PostStore struct {
	mu     sync.RWMutex
	posts  []model.Post
	source LoadSource

	repo   repository.StateRepository
	key    string
	now    func() time.Time
	logger zerolog.Logger
}

type Option func(*PostStore)

func WithKey(key string) Option {
	return func(s *PostStore) { s.key = key }
}

func WithClock(now func() time.Time) Option {
	return func(s *PostStore) { s.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *PostStore) { s.logger = l }
}

func NewPostStore(repo repository.StateRepository, opts ...Option) *PostStore {
	s := &PostStore{
		repo:   repo,
		key:    DefaultKey,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection. An absent or malformed value
// is replaced by the seed posts, which are not written back until the next
// mutation. A failed read leaves the store empty and read-only and returns
// the error; calling Initialize again retries.
func (s *PostStore) Initialize(ctx context.Context) (LoadSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, source, err := s.load(ctx)
	s.posts = posts
	s.source = source
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("Error reading persisted posts")
		return source, err
	}

	s.logger.Info().
		Str("key", s.key).
		Str("source", source.String()).
		Int("posts", len(posts)).
		Msg("Blog posts loaded")
	return source, nil
}

func (s *PostStore) load(ctx context.Context) ([]model.Post, LoadSource, error) {
	data, err := s.repo.Read(ctx, s.key)
	if errors.Is(err, repository.ErrAbsent) {
		return SeedPosts(), SourceSeedAbsent, nil
	}
	if err != nil {
		return nil, SourceUnknown, fmt.Errorf("error reading posts from %s: %w", s.repo.Name(), err)
	}

	posts, err := decodePosts(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("Persisted posts are malformed, using seed posts")
		return SeedPosts(), SourceSeedMalformed, nil
	}
	return posts, SourcePersisted, nil
}

// decodePosts parses a persisted value. Any invalid record or duplicate id
// rejects the whole value.
func decodePosts(data []byte) ([]model.Post, error) {
	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("error decoding posts: %w", err)
	}
	if posts == nil {
		return nil, fmt.Errorf("error decoding posts: expected an array")
	}

	seen := make(map[model.PostID]struct{}, len(posts))
	for i, p := range posts {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("post %d: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("post %d: duplicate id %s", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return posts, nil
}

// DecodePosts parses and validates a persisted post collection.
func DecodePosts(data []byte) ([]model.Post, error) {
	return decodePosts(data)
}

// Create prepends a new post and persists the collection.
func (s *PostStore) Create(ctx context.Context, title, content, category string) (model.Post, error) {
	if err := model.ValidateFields(title, content, category); err != nil {
		return model.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == SourceUnknown {
		return model.Post{}, ErrNotLoaded
	}

	now := s.now()
	post, err := model.NewPost(s.nextID(now), title, content, category, now)
	if err != nil {
		return model.Post{}, err
	}

	prev := s.posts
	s.posts = append([]model.Post{post}, s.posts...)
	if err := s.persist(ctx); err != nil {
		s.posts = prev
		return model.Post{}, err
	}

	s.logger.Info().Stringer("id", post.ID).Str("title", post.Title).Msg("Post created")
	return post, nil
}

// Edit replaces the title, content and category of the post with id and
// returns the updated post. Unknown ids are reported with false and leave
// everything untouched.
func (s *PostStore) Edit(ctx context.Context, id model.PostID, title, content, category string) (model.Post, bool, error) {
	if err := model.ValidateFields(title, content, category); err != nil {
		return model.Post{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == SourceUnknown {
		return model.Post{}, false, ErrNotLoaded
	}

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug().Stringer("id", id).Msg("Edit of unknown post ignored")
		return model.Post{}, false, nil
	}

	prev := s.posts[i]
	updated := prev
	updated.Title = strings.TrimSpace(title)
	updated.Content = strings.TrimSpace(content)
	updated.Category = strings.TrimSpace(category)

	s.posts[i] = updated
	if err := s.persist(ctx); err != nil {
		s.posts[i] = prev
		return model.Post{}, false, err
	}

	s.logger.Info().Stringer("id", id).Msg("Post updated")
	return updated, true, nil
}

// Delete removes the post with id, keeping the order of the others.
// Unknown ids are reported with false and leave everything untouched.
func (s *PostStore) Delete(ctx context.Context, id model.PostID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == SourceUnknown {
		return false, ErrNotLoaded
	}

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug().Stringer("id", id).Msg("Delete of unknown post ignored")
		return false, nil
	}

	prev := s.posts
	s.posts = slices.Delete(slices.Clone(s.posts), i, i+1)
	if err := s.persist(ctx); err != nil {
		s.posts = prev
		return false, err
	}

	s.logger.Info().Stringer("id", id).Msg("Post deleted")
	return true, nil
}

// Posts returns a copy of the collection, newest first.
func (s *PostStore) Posts() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *PostStore) Get(id model.PostID) (model.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.posts[i], true
	}
	return model.Post{}, false
}

func (s *PostStore) LoadSource() LoadSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// persist overwrites the key with the whole collection. Callers hold mu.
// The write ignores the caller's cancellation.
func (s *PostStore) persist(ctx context.Context) error {
	posts := s.posts
	if posts == nil {
		posts = []model.Post{}
	}

	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("error encoding posts: %w", err)
	}
	if err := s.repo.Write(context.WithoutCancel(ctx), s.key, data); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("Error persisting posts")
		return fmt.Errorf("error persisting posts: %w", err)
	}
	return nil
}

// nextID derives the id from the clock in milliseconds, bumped past the
// largest id in use.
func (s *PostStore) nextID(now time.Time) model.PostID {
	next := model.PostID(now.UnixMilli())
	for _, p := range s.posts {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

func (s *PostStore) indexOf(id model.PostID) int {
	return slices.IndexFunc(s.posts, func(p model.Post) bool { return p.ID == id })
}
