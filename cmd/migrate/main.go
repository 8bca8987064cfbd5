package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/folio/internal/blog"
	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/model"
	"github.com/debemdeboas/folio/internal/render"
	"github.com/debemdeboas/folio/internal/repository"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	postStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// main copies the persisted posts from one configured backend to another.
func main() {
	from := flag.String("from", "config.yaml", "Configuration of the source backend")
	to := flag.String("to", "", "Configuration of the destination backend")
	seed := flag.Bool("seed", false, "Write the seed posts when the source has nothing persisted")
	dryRun := flag.Bool("dry-run", false, "Validate the source without writing")
	flag.Parse()

	if *to == "" && !*dryRun {
		fail(errors.New("--to is required unless --dry-run is set"))
	}

	ctx := context.Background()

	srcCfg, err := config.LoadConfig(*from)
	if err != nil {
		fail(err)
	}
	src, err := repository.New(ctx, srcCfg)
	if err != nil {
		fail(err)
	}
	defer src.Close()

	var dst repository.StateRepository
	if !*dryRun {
		dstCfg, err := config.LoadConfig(*to)
		if err != nil {
			fail(err)
		}
		if dst, err = repository.New(ctx, dstCfg); err != nil {
			fail(err)
		}
		defer dst.Close()
	}

	res, err := migrate(ctx, src, dst, srcCfg.Blog.Key, *seed)
	if err != nil {
		fail(err)
	}
	printReport(os.Stdout, src, dst, res)
}

type result struct {
	Key    string
	Posts  []model.Post
	Seeded bool
	Bytes  int

	// Modified is when the source last wrote key, for backends that track it.
	Modified time.Time
}

type modTimer interface {
	LastModified(ctx context.Context, key string) (time.Time, error)
}

type unwrapper interface {
	Unwrap() repository.StateRepository
}

// lastModified asks repo, or the repository it wraps, when key was written.
func lastModified(ctx context.Context, repo repository.StateRepository, key string) (time.Time, bool) {
	for repo != nil {
		if m, ok := repo.(modTimer); ok {
			t, err := m.LastModified(ctx, key)
			return t, err == nil
		}
		u, ok := repo.(unwrapper)
		if !ok {
			break
		}
		repo = u.Unwrap()
	}
	return time.Time{}, false
}

// migrate reads key from src, checks that it decodes as a post collection
// and writes it unchanged to dst. A nil dst only validates.
func migrate(ctx context.Context, src, dst repository.StateRepository, key string, seed bool) (result, error) {
	res := result{Key: key}

	data, err := src.Read(ctx, key)
	switch {
	case errors.Is(err, repository.ErrAbsent) && seed:
		res.Seeded = true
		posts := blog.SeedPosts()
		res.Posts = posts
		data, err = json.Marshal(posts)
		if err != nil {
			return res, err
		}
	case err != nil:
		return res, fmt.Errorf("error reading %q from %s: %w", key, src.Name(), err)
	default:
		posts, err := blog.DecodePosts(data)
		if err != nil {
			return res, fmt.Errorf("refusing to copy malformed value of %q: %w", key, err)
		}
		res.Posts = posts
		if t, ok := lastModified(ctx, src, key); ok {
			res.Modified = t
		}
	}
	res.Bytes = len(data)

	if dst == nil {
		return res, nil
	}
	if err := dst.Write(ctx, key, data); err != nil {
		return res, fmt.Errorf("error writing %q to %s: %w", key, dst.Name(), err)
	}
	return res, nil
}

func printReport(w io.Writer, src, dst repository.StateRepository, res result) {
	target := "(dry run)"
	if dst != nil {
		target = dst.Name()
	}

	fmt.Fprintln(w, titleStyle.Render("Folio migration"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("key:   "), res.Key)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("from:  "), src.Name())
	if !res.Modified.IsZero() {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("saved: "), res.Modified.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("to:    "), target)
	fmt.Fprintf(w, "%s %d posts, %d bytes\n", labelStyle.Render("copied:"), len(res.Posts), res.Bytes)
	if res.Seeded {
		fmt.Fprintln(w, labelStyle.Render("source was empty, seed posts written"))
	}
	for _, p := range res.Posts {
		fmt.Fprintf(w, "  %s %s %s\n",
			postStyle.Render(p.ID.String()),
			p.Title,
			labelStyle.Render("("+p.Category+", "+render.FormatDate(p.Date.Time)+")"),
		)
	}
	fmt.Fprintln(w, okStyle.Render("done"))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
	os.Exit(1)
}
