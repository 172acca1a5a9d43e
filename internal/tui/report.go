package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lostfound/internal/form"
	"github.com/idilsaglam/lostfound/internal/page"
)

const (
	reportTitle = iota
	reportDescription
	reportPlace
	reportDate
)

type reportScreen struct {
	scope
	ctrl   *page.Report
	fields fieldSet
	state  form.State
}

func newReportScreen(sc scope, d Deps) *reportScreen {
	return &reportScreen{
		scope: sc,
		ctrl:  page.NewReport(d.Client.LostItems, d.Log),
		fields: newFieldSet(
			newInput("Title", "e.g. black wallet", false),
			newArea("Description", "details (kept on this device)"),
			newInput("Place", "where it was lost (optional)", false),
			newInput("Date", "YYYY-MM-DD (kept on this device)", false),
		),
	}
}

func (s *reportScreen) Init() tea.Cmd { return s.fields.focusAt(reportTitle) }
func (s *reportScreen) Typing() bool  { return true }
func (s *reportScreen) Help() string {
	return "tab next field · enter submit (newline in description) · ctrl+s submit · esc home"
}

func (s *reportScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case submitDoneMsg:
		s.state.Finish(msg.err, page.FallbackCreate)
		if msg.err == nil {
			return navigate(msg.out)
		}
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			return s.fields.next()
		case "shift+tab":
			return s.fields.prev()
		case "ctrl+s":
			return s.submit()
		case "enter":
			if s.fields.focus != reportDescription {
				return s.submit()
			}
		}
		return s.fields.update(msg)
	}
	return nil
}

func (s *reportScreen) submit() tea.Cmd {
	if !s.state.Begin() {
		return nil
	}
	f := form.ReportForm{
		Title:       s.fields.value(reportTitle),
		Description: s.fields.value(reportDescription),
		Place:       s.fields.value(reportPlace),
		Date:        s.fields.value(reportDate),
	}
	ctrl := s.ctrl
	return s.async(func(ctx context.Context) tea.Msg {
		out, err := ctrl.Submit(ctx, f)
		return submitDoneMsg{out: out, err: err}
	})
}

func (s *reportScreen) View() string {
	return formBody(s.fields.view(), s.state, "Register")
}
