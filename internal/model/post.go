// Package model defines the blog post value type and the page data shared by templates.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrValidation = errors.New("invalid post")

type PostID int64

func (id PostID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParsePostID(s string) (PostID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: bad id %q", ErrValidation, s)
	}
	return PostID(n), nil
}

// Post is the only persisted entity. ID and Date are fixed at creation.
type Post struct {
	ID       PostID    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category string    `json:"category"`
	Date     Timestamp `json:"date"`
	Featured bool      `json:"featured"`
}

// NewPost trims the text fields and validates them. Featured is always false.
func NewPost(id PostID, title, content, category string, date time.Time) (Post, error) {
	p := Post{
		ID:       id,
		Title:    strings.TrimSpace(title),
		Content:  strings.TrimSpace(content),
		Category: strings.TrimSpace(category),
		Date:     NewTimestamp(date),
	}
	if err := p.Validate(); err != nil {
		return Post{}, err
	}
	return p, nil
}

// Validate reports the first rule p breaks.
func (p Post) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrValidation)
	}
	if err := ValidateFields(p.Title, p.Content, p.Category); err != nil {
		return err
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return nil
}

// ValidateFields checks the user-editable fields.
func ValidateFields(title, content, category string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(content) == "":
		return fmt.Errorf("%w: content is required", ErrValidation)
	case strings.TrimSpace(category) == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	return nil
}
