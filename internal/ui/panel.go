package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/lostfound/internal/model"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	t := Current()
	// visible width, not byte length; Korean titles are double width
	maxw := 0
	for _, ln := range lines {
		if w := lipgloss.Width(stripANSI(ln)); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		if vis := lipgloss.Width(stripANSI(s)); vis < maxw {
			s = s + strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(Stdout, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(Stdout, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(Stdout, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// ItemLines renders one line per item, numbered from 1, in server order.
func ItemLines(items []model.LostItem) []string {
	t := Current()
	if len(items) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		sym, color := t.SymOpen, t.Pending
		switch {
		case it.Status.AwaitingPickup():
			sym, color = t.SymFound, t.Accent
		case it.Status.Resolved():
			sym, color = t.SymResolved, t.Success
		}
		title := it.Title
		if r := []rune(title); len(r) > 60 {
			title = string(r[:57]) + "..."
		}
		line := fmt.Sprintf("%s %s %s", C(dim, fmt.Sprintf("%2d.", i+1)), C(color, sym), C(t.Title, title))
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
			line += " " + C(t.Muted, "("+strings.Join(meta, ", ")+")")
		}
		out = append(out, line)
	}
	return out
}

// Header is the title line with open/resolved counts.
func Header(title string, items []model.LostItem) string {
	t := Current()
	open, resolved := Stats(items)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, title),
		C(t.Pending, t.SymOpen), open,
		C(t.Success, t.SymResolved), resolved,
		C(t.Accent, "Total"), len(items),
	)
}

func Stats(items []model.LostItem) (open, resolved int) {
	for _, it := range items {
		if it.Status.Resolved() {
			resolved++
		} else {
			open++
		}
	}
	return
}
