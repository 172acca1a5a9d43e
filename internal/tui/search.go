package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lostfound/internal/form"
	"github.com/idilsaglam/lostfound/internal/page"
)

type searchScreen struct {
	scope
	ctrl    *page.Search
	query   *field
	loading bool
	loadErr string
	height  int
}

func newSearchScreen(sc scope, d Deps) *searchScreen {
	return &searchScreen{
		scope: sc,
		ctrl:  page.NewSearch(page.NewItems(d.Client.LostItems, d.Log)),
		query: newInput("Keyword", "e.g. wallet, umbrella, airpods", false),
	}
}

func (s *searchScreen) Init() tea.Cmd {
	s.loading = true
	ctrl := s.ctrl
	return tea.Batch(s.query.focus(), s.async(func(ctx context.Context) tea.Msg {
		return itemsLoadedMsg{err: ctrl.Mount(ctx)}
	}))
}

func (s *searchScreen) Typing() bool { return true }
func (s *searchScreen) Help() string { return "type to filter by title, place or source · esc home" }

func (s *searchScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.height = msg.Height
		return nil
	case itemsLoadedMsg:
		s.loading = false
		s.loadErr = form.Message(msg.err, page.FallbackLoad)
		return nil
	case tea.KeyMsg:
		return s.query.update(msg)
	}
	return nil
}

func (s *searchScreen) View() string {
	var b strings.Builder
	b.WriteString(s.query.view() + "\n\n")
	switch {
	case s.loading:
		b.WriteString(mutedStyle.Render("Loading…"))
		return b.String()
	case s.loadErr != "":
		b.WriteString(errorStyle.Render(s.loadErr))
		return b.String()
	}

	results := s.ctrl.Results(s.query.value())
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d result(s)", len(results))))
	limit := max(s.height-4, 3)
	for i, it := range results {
		if i == limit {
			b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("… %d more", len(results)-limit)))
			break
		}
		b.WriteString("\n" + itemLine(it, false))
	}
	return b.String()
}
