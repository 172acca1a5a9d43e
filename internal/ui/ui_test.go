package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/lostfound/internal/model"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = out, errOut
	SetTheme("classic")
	SetColorForcing(false, true)
	t.Cleanup(func() {
		Stdout, Stderr = oldOut, oldErr
		SetColorForcing(false, false)
	})
	return out, errOut
}

func TestItemLines(t *testing.T) {
	capture(t)
	lines := ItemLines([]model.LostItem{
		{ID: "1", Title: "Wallet", Place: "Library", Status: model.StatusOpen},
		{ID: "2", Title: "Keys", Status: model.StatusReturned, Date: "2025-09-15", Source: "lost112"},
	})
	assert.Equal(t, " 1. • Wallet - Library (open)", lines[0])
	assert.Equal(t, " 2. ✔ Keys (RETURNED, 2025-09-15, source: lost112)", lines[1])
	assert.Equal(t, []string{"no items"}, ItemLines(nil))
}

func TestFoundItemsAwaitPickup(t *testing.T) {
	capture(t)
	lines := ItemLines([]model.LostItem{{ID: "1", Title: "Scarf", Status: model.StatusFound}})
	assert.Equal(t, " 1. ◉ Scarf (FOUND)", lines[0])

	SetTheme("mono")
	lines = ItemLines([]model.LostItem{{ID: "1", Title: "Scarf", Status: model.StatusFound}})
	assert.Equal(t, " 1. [f] Scarf (FOUND)", lines[0])
	SetTheme("classic")
}

func TestPanelPadsToWidestLine(t *testing.T) {
	out, _ := capture(t)
	Panel([]string{"ab", "abcd"})
	rows := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, "┌──────┐", rows[0])
	assert.Equal(t, "│ ab   │", rows[1])
	assert.Equal(t, "│ abcd │", rows[2])
	assert.Equal(t, "└──────┘", rows[3])
}

func TestOKAndFail(t *testing.T) {
	out, errOut := capture(t)
	OK("saved")
	Fail("nope")
	assert.Equal(t, "✔ saved\n", out.String())
	assert.Equal(t, "✖ nope\n", errOut.String())
}

func TestStats(t *testing.T) {
	open, resolved := Stats([]model.LostItem{{Status: "open"}, {Status: "FOUND"}, {}})
	assert.Equal(t, 2, open)
	assert.Equal(t, 1, resolved)
}
