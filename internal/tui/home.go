package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lostfound/internal/form"
	"github.com/idilsaglam/lostfound/internal/listsync"
	"github.com/idilsaglam/lostfound/internal/page"
)

type itemsLoadedMsg struct{ err error }
type itemCreatedMsg struct{ err error }

// homeScreen is the list with an inline quick-add form.
type homeScreen struct {
	scope
	ctrl    *page.Home
	list    list.Model
	loading bool
	loadErr string

	adding bool
	fields fieldSet
	state  form.State
}

func newHomeScreen(sc scope, d Deps) *homeScreen {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = helpStyle

	return &homeScreen{
		scope: sc,
		ctrl:  page.NewHome(page.NewItems(d.Client.LostItems, d.Log), d.Client.LostItems),
		list:  l,
		fields: newFieldSet(
			newInput("Item", "What did you lose?", false),
			newInput("Place", "Where?", false),
		),
	}
}

func (s *homeScreen) Init() tea.Cmd {
	s.loading = true
	ctrl := s.ctrl
	return s.async(func(ctx context.Context) tea.Msg {
		return itemsLoadedMsg{err: ctrl.Mount(ctx)}
	})
}

func (s *homeScreen) Typing() bool { return s.adding }

func (s *homeScreen) Help() string {
	if s.adding {
		return "tab next field · enter register · esc cancel"
	}
	return "a add · R refresh · ↑/↓ move · " + navHelp
}

func (s *homeScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height
		if s.adding {
			h -= 6
		}
		s.list.SetSize(msg.Width, max(h, 3))
		return nil

	case itemsLoadedMsg:
		s.loading = false
		s.loadErr = form.Message(msg.err, page.FallbackLoad)
		return s.sync()

	case itemCreatedMsg:
		s.state.Finish(msg.err, page.FallbackCreate)
		if msg.err == nil || errors.Is(msg.err, listsync.ErrRefreshAfterWrite) {
			// the item exists server-side either way
			s.state.Err = ""
			s.fields.reset()
			s.fields.blur()
			s.adding = false
		}
		if errors.Is(msg.err, listsync.ErrRefreshAfterWrite) {
			s.loadErr = page.FallbackLoad
		} else if msg.err == nil {
			s.loadErr = ""
		}
		return s.sync()

	case tea.KeyMsg:
		if s.adding {
			switch msg.String() {
			case "esc":
				s.adding = false
				s.state.Err = ""
				s.fields.blur()
				return nil
			case "tab", "down":
				return s.fields.next()
			case "shift+tab", "up":
				return s.fields.prev()
			case "enter":
				return s.submit()
			}
			return s.fields.update(msg)
		}
		switch msg.String() {
		case "a":
			s.adding = true
			return s.fields.focusAt(0)
		case "R":
			return s.refresh()
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

func (s *homeScreen) submit() tea.Cmd {
	if !s.state.Begin() {
		return nil
	}
	f := form.ItemForm{
		Title: strings.TrimSpace(s.fields.value(0)),
		Place: strings.TrimSpace(s.fields.value(1)),
	}
	ctrl := s.ctrl
	return s.async(func(ctx context.Context) tea.Msg {
		return itemCreatedMsg{err: ctrl.Create(ctx, f)}
	})
}

func (s *homeScreen) refresh() tea.Cmd {
	if s.loading {
		return nil
	}
	s.loading = true
	items := s.ctrl.Items()
	return s.async(func(ctx context.Context) tea.Msg {
		return itemsLoadedMsg{err: items.Refresh(ctx)}
	})
}

// sync copies the collection snapshot into the list widget.
func (s *homeScreen) sync() tea.Cmd {
	return s.list.SetItems(toListItems(s.ctrl.Items().Snapshot().Items))
}

func (s *homeScreen) View() string {
	var b strings.Builder
	switch {
	case s.loading && len(s.list.Items()) == 0:
		b.WriteString(mutedStyle.Render("Loading…"))
	case s.loadErr != "":
		b.WriteString(errorStyle.Render(s.loadErr) + "\n")
		b.WriteString(s.list.View())
	case len(s.list.Items()) == 0:
		b.WriteString(mutedStyle.Render("No items yet. Press a to add one."))
	default:
		b.WriteString(s.list.View())
	}
	if s.adding {
		b.WriteString("\n")
		b.WriteString(panelString(formBody(s.fields.view(), s.state, "Register")))
	}
	return b.String()
}

// formBody renders inputs, the submit label and the error line.
func formBody(fields string, st form.State, submit string) string {
	label := "[ " + submit + " ]"
	if st.Loading {
		label = mutedStyle.Render("[ working… ]")
	}
	out := fields + "\n\n" + label
	if st.Err != "" {
		out += "\n" + errorStyle.Render(st.Err)
	}
	return out
}
