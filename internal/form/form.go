package form

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/idilsaglam/lostfound/internal/api"
)

const MinPasswordLen = 4

const (
	MsgLoginRequired  = "Enter your email and password."
	MsgSignupRequired = "Enter email, password and name."
	MsgPasswordShort  = "Password must be at least 4 characters."
	MsgPasswordFields = "Enter your current and new password."
	MsgPasswordMatch  = "New passwords do not match."
)

// ValidationError blocks a submission before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// State is the per-form loading flag and visible error.
type State struct {
	Loading bool
	Err     string
}

// Begin clears the previous error and marks the form busy. It returns false
// if a request is already running; the caller must not send another.
func (s *State) Begin() bool {
	if s.Loading {
		return false
	}
	s.Loading = true
	s.Err = ""
	return true
}

// Fail records a local failure without a request (validation).
func (s *State) Fail(err error, fallback string) {
	s.Err = Message(err, fallback)
}

// Finish ends a request. A nil err leaves the error line empty.
func (s *State) Finish(err error, fallback string) {
	s.Loading = false
	if err != nil {
		s.Err = Message(err, fallback)
	}
}

// Message picks what the user sees: the validation text, the server's
// message, or fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	return fallback
}

type LoginForm struct {
	Email    string
	Password string
}

// blank reports whether v has nothing but whitespace.
func blank(v string) bool { return strings.TrimSpace(v) == "" }

// Validate checks presence only; values are sent and stored as typed.
func (f LoginForm) Validate() error {
	if blank(f.Email) || f.Password == "" {
		return invalid(MsgLoginRequired)
	}
	return nil
}

type SignupForm struct {
	Email    string
	Password string
	Name     string
}

func (f SignupForm) Validate() error {
	if blank(f.Email) || f.Password == "" || blank(f.Name) {
		return invalid(MsgSignupRequired)
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLen {
		return invalid(MsgPasswordShort)
	}
	return nil
}

type PasswordForm struct {
	Current string
	New     string
	Confirm string
}

func (f PasswordForm) Validate() error {
	if f.Current == "" || f.New == "" {
		return invalid(MsgPasswordFields)
	}
	if f.New != f.Confirm {
		return invalid(MsgPasswordMatch)
	}
	if utf8.RuneCountInString(f.New) < MinPasswordLen {
		return invalid(MsgPasswordShort)
	}
	return nil
}

// ItemForm is the quick add form on the home list. No local rules.
type ItemForm struct {
	Title string
	Place string
}

// ReportForm collects more than the create endpoint accepts; see page.Report.
type ReportForm struct {
	Title       string
	Description string
	Place       string
	Date        string
}

// Trim returns a copy with surrounding whitespace removed from every field.
func (f ReportForm) Trim() ReportForm {
	return ReportForm{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Place:       strings.TrimSpace(f.Place),
		Date:        strings.TrimSpace(f.Date),
	}
}
