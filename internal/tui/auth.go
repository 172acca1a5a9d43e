package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lostfound/internal/form"
	"github.com/idilsaglam/lostfound/internal/page"
)

type submitDoneMsg struct {
	out page.Outcome
	err error
}

const formHelp = "tab next field · enter submit · esc home · ctrl+c quit"

type loginScreen struct {
	scope
	ctrl   *page.Login
	fields fieldSet
	state  form.State
}

func newLoginScreen(sc scope, d Deps) *loginScreen {
	return &loginScreen{
		scope: sc,
		ctrl:  page.NewLogin(d.Client.Auth, d.Session, d.Log),
		fields: newFieldSet(
			newInput("Email", "you@example.com", false),
			newInput("Password", "password", true),
		),
	}
}

func (s *loginScreen) Init() tea.Cmd { return s.fields.focusAt(0) }
func (s *loginScreen) Typing() bool  { return true }
func (s *loginScreen) Help() string  { return formHelp }

func (s *loginScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case submitDoneMsg:
		s.state.Finish(msg.err, page.FallbackLogin)
		if msg.err == nil {
			return navigate(msg.out)
		}
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s.fields.next()
		case "shift+tab", "up":
			return s.fields.prev()
		case "enter":
			return s.submit()
		}
		return s.fields.update(msg)
	}
	return nil
}

func (s *loginScreen) submit() tea.Cmd {
	f := form.LoginForm{Email: s.fields.value(0), Password: s.fields.value(1)}
	if s.state.Loading {
		return nil
	}
	if err := f.Validate(); err != nil {
		s.state.Fail(err, page.FallbackLogin)
		return nil
	}
	s.state.Begin()
	ctrl := s.ctrl
	return s.async(func(ctx context.Context) tea.Msg {
		out, err := ctrl.Submit(ctx, f)
		return submitDoneMsg{out: out, err: err}
	})
}

func (s *loginScreen) View() string {
	return formBody(s.fields.view(), s.state, "Log in")
}

type signupScreen struct {
	scope
	ctrl   *page.Signup
	fields fieldSet
	state  form.State
}

func newSignupScreen(sc scope, d Deps) *signupScreen {
	return &signupScreen{
		scope: sc,
		ctrl:  page.NewSignup(d.Client.Auth, d.Log),
		fields: newFieldSet(
			newInput("Email", "you@example.com", false),
			newInput("Name", "your name", false),
			newInput("Password", "at least 4 characters", true),
		),
	}
}

func (s *signupScreen) Init() tea.Cmd { return s.fields.focusAt(0) }
func (s *signupScreen) Typing() bool  { return true }
func (s *signupScreen) Help() string  { return formHelp }

func (s *signupScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case submitDoneMsg:
		s.state.Finish(msg.err, page.FallbackSignup)
		if msg.err == nil {
			return navigate(msg.out)
		}
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s.fields.next()
		case "shift+tab", "up":
			return s.fields.prev()
		case "enter":
			return s.submit()
		}
		return s.fields.update(msg)
	}
	return nil
}

func (s *signupScreen) submit() tea.Cmd {
	f := form.SignupForm{Email: s.fields.value(0), Name: s.fields.value(1), Password: s.fields.value(2)}
	if s.state.Loading {
		return nil
	}
	if err := f.Validate(); err != nil {
		s.state.Fail(err, page.FallbackSignup)
		return nil
	}
	s.state.Begin()
	ctrl := s.ctrl
	return s.async(func(ctx context.Context) tea.Msg {
		out, err := ctrl.Submit(ctx, f)
		return submitDoneMsg{out: out, err: err}
	})
}

func (s *signupScreen) View() string {
	return formBody(s.fields.view(), s.state, "Sign up")
}
