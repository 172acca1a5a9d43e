package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/lostfound/internal/api"
	"github.com/idilsaglam/lostfound/internal/page"
	"github.com/idilsaglam/lostfound/internal/session"
)

// Deps is what every screen may use. The session store is created once by
// the caller and shared by all screens.
type Deps struct {
	Client  *api.Client
	Session *session.Store
	Log     *zap.Logger
}

type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	Help() string
	// Typing reports whether keys belong to a focused input.
	Typing() bool
}

// scope ties async work to the screen instance that started it.
type scope struct {
	ctx context.Context
	gen int
}

// resultMsg carries an async result back, tagged with the screen
// generation so results for a closed screen can be dropped.
type resultMsg struct {
	gen     int
	payload tea.Msg
}

func (s scope) async(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx, gen := s.ctx, s.gen
	return func() tea.Msg {
		return resultMsg{gen: gen, payload: fn(ctx)}
	}
}

type navigateMsg struct {
	route  page.Route
	notice string
}

func navigate(o page.Outcome) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: o.Navigate, notice: o.Notice} }
}

var navKeys = map[string]page.Route{
	"h": page.RouteHome,
	"l": page.RouteLogin,
	"s": page.RouteSignup,
	"r": page.RouteReport,
	"/": page.RouteSearch,
}

var navOrder = []page.Route{page.RouteHome, page.RouteLogin, page.RouteSignup, page.RouteReport, page.RouteSearch}

type app struct {
	deps   Deps
	parent context.Context
	cancel context.CancelFunc
	gen    int
	route  page.Route
	screen screen
	notice string
	width  int
	height int

	initCmd tea.Cmd
}

func newApp(ctx context.Context, d Deps, start page.Route) *app {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	a := &app{deps: d, parent: ctx, width: 80, height: 24}
	a.initCmd = a.mount(start)
	return a
}

// Run starts the interactive client on the given route.
func Run(ctx context.Context, d Deps, start page.Route) error {
	a := newApp(ctx, d, start)
	defer a.shutdown()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// mount tears down the current screen (cancelling its requests) and builds
// a fresh one for r.
func (a *app) mount(r page.Route) tea.Cmd {
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(a.parent)
	a.cancel = cancel
	a.gen++
	a.route = r
	sc := scope{ctx: ctx, gen: a.gen}

	switch r {
	case page.RouteHome:
		a.screen = newHomeScreen(sc, a.deps)
	case page.RouteLogin:
		a.screen = newLoginScreen(sc, a.deps)
	case page.RouteSignup:
		a.screen = newSignupScreen(sc, a.deps)
	case page.RouteReport:
		a.screen = newReportScreen(sc, a.deps)
	case page.RouteSearch:
		a.screen = newSearchScreen(sc, a.deps)
	default:
		a.route = page.RouteNotFound
		a.screen = notFoundScreen{}
	}
	a.deps.Log.Debug("screen mounted", zap.String("route", string(a.route)), zap.Int("gen", a.gen))

	return tea.Batch(a.screen.Update(a.contentSize()), a.screen.Init())
}

func (a *app) shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *app) contentSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: max(a.width-4, 20), Height: max(a.height-9, 5)}
}

func (a *app) Init() tea.Cmd { return a.initCmd }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.screen.Update(a.contentSize())

	case resultMsg:
		if msg.gen != a.gen {
			a.deps.Log.Debug("dropped result for closed screen", zap.Int("gen", msg.gen), zap.Int("current", a.gen))
			return a, nil
		}
		return a, a.screen.Update(msg.payload)

	case navigateMsg:
		a.notice = msg.notice
		return a, a.mount(msg.route)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.shutdown()
			return a, tea.Quit
		case "esc":
			if a.route != page.RouteHome {
				a.notice = ""
				return a, a.mount(page.RouteHome)
			}
		}
		if !a.screen.Typing() {
			if r, ok := navKeys[msg.String()]; ok {
				a.notice = ""
				return a, a.mount(r)
			}
			switch msg.String() {
			case "q":
				a.shutdown()
				return a, tea.Quit
			case "o":
				return a, a.logout()
			}
		}
	}
	return a, a.screen.Update(msg)
}

func (a *app) logout() tea.Cmd {
	if !a.deps.Session.LoggedIn() {
		a.notice = "Not logged in."
		return nil
	}
	ctrl := page.NewLogout(a.deps.Client.Auth, a.deps.Session, a.deps.Log)
	ctx := a.parent
	return func() tea.Msg {
		if err := ctrl.Submit(ctx); err != nil {
			return navigateMsg{route: page.RouteHome, notice: "Logout failed: " + err.Error()}
		}
		return navigateMsg{route: page.RouteHome, notice: "Logged out."}
	}
}

func (a *app) View() string {
	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n\n")
	b.WriteString(accentStyle.Render(a.route.Title()))
	b.WriteString("\n")
	if a.notice != "" {
		b.WriteString(successStyle.Render("✔ "+a.notice) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(a.screen.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(a.screen.Help()))
	return panelString(b.String())
}

func (a *app) header() string {
	parts := make([]string, 0, len(navOrder))
	for _, r := range navOrder {
		label := strings.TrimPrefix(string(r), "/")
		if r == a.route {
			label = activeNav.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	who := mutedStyle.Render("guest")
	if u := a.deps.Session.User(); u != nil {
		who = successStyle.Render(u.Email)
	}
	return fmt.Sprintf("%s   %s   %s", titleStyle.Render("Lost&Found"), strings.Join(parts, " · "), who)
}

const navHelp = "h home · l login · s signup · r report · / search · o logout · q quit"

type notFoundScreen struct{}

func (notFoundScreen) Init() tea.Cmd              { return nil }
func (notFoundScreen) Update(msg tea.Msg) tea.Cmd { return nil }
func (notFoundScreen) Typing() bool               { return false }
func (notFoundScreen) Help() string               { return "esc home · " + navHelp }
func (notFoundScreen) View() string {
	return "This page does not exist. Press esc to go home."
}
