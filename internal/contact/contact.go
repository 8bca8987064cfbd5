// Package contact validates contact form submissions and performs the
// simulated send.
package contact

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	MsgRequired     = "This field is required"
	MsgInvalidEmail = "Please enter a valid email address"
	MsgSent         = "Message sent successfully! I'll get back to you soon."
	MsgFailed       = "Failed to send message. Please try again."
)

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

var ErrInvalid = errors.New("invalid contact form")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

// Normalize trims every field.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// Validate returns nil when every field is acceptable.
func (f Form) Validate() FieldErrors {
	f = f.Normalize()
	errs := FieldErrors{}

	for field, value := range map[string]string{
		FieldName:    f.Name,
		FieldEmail:   f.Email,
		FieldSubject: f.Subject,
		FieldMessage: f.Message,
	} {
		if value == "" {
			errs[field] = MsgRequired
		}
	}
	if _, missing := errs[FieldEmail]; !missing && !emailPattern.MatchString(f.Email) {
		errs[FieldEmail] = MsgInvalidEmail
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Sender performs the send. No message leaves the process: it only waits,
// the way the portfolio always has.
type Sender struct {
	delay  time.Duration
	logger zerolog.Logger
}

func NewSender(delay time.Duration, logger zerolog.Logger) *Sender {
	return &Sender{delay: delay, logger: logger}
}

// Submit validates f and waits for the configured delay. Invalid forms
// return their field errors along with ErrInvalid.
func (s *Sender) Submit(ctx context.Context, f Form) (FieldErrors, error) {
	if errs := f.Validate(); errs != nil {
		return errs, ErrInvalid
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		s.logger.Warn().Err(ctx.Err()).Msg("Contact submission cancelled")
		return nil, ctx.Err()
	}

	f = f.Normalize()
	s.logger.Info().Str("email", f.Email).Str("subject", f.Subject).Msg("Contact message received")
	return nil, nil
}
