package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/lostfound/internal/model"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	activeNav     = lipgloss.NewStyle().Bold(true).Underline(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	symOpen     = "•"
	symFound    = "◉"
	symResolved = "✔"
)

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

// listItem adapts model.LostItem to bubbles/list.Item
type listItem struct {
	model.LostItem
}

func (i listItem) FilterValue() string { return i.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	fmt.Fprint(w, itemLine(it.LostItem, index == m.Index()))
}

func itemLine(it model.LostItem, selected bool) string {
	sym := pendingStyle.Render(symOpen)
	switch {
	case it.Status.AwaitingPickup():
		sym = accentStyle.Render(symFound)
	case it.Status.Resolved():
		sym = successStyle.Render(symResolved)
	}
	line := fmt.Sprintf("%s %s", sym, titleStyle.Render(it.Title))
	if it.Place != "" {
		line += " - " + it.Place
	}
	var meta []string
	if it.Status != "" {
		meta = append(meta, string(it.Status))
	}
	if it.Date != "" {
		meta = append(meta, it.Date)
	}
	if it.Source != "" {
		meta = append(meta, "source: "+it.Source)
	}
	if len(meta) > 0 {
		line += " " + mutedStyle.Render("("+strings.Join(meta, ", ")+")")
	}
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}
	return prefix + line
}

func toListItems(items []model.LostItem) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{it})
	}
	return out
}
