package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the lifecycle of a reported item. The server owns the set of
// values; unknown ones are kept verbatim.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
	StatusReported Status = "REPORTED"
	StatusFound    Status = "FOUND"
	StatusReturned Status = "RETURNED"
)

// Resolved reports whether the item no longer needs attention.
func (s Status) Resolved() bool {
	switch strings.ToUpper(string(s)) {
	case "RESOLVED", "FOUND", "RETURNED":
		return true
	}
	return false
}

// AwaitingPickup reports whether the item was found but not yet handed back.
func (s Status) AwaitingPickup() bool {
	return strings.EqualFold(string(s), string(StatusFound))
}

// ItemID is the server-assigned identifier. The backend emits numbers,
// older mocks emit strings; both decode to the same textual form.
type ItemID string

func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// LostItem is a listing as returned by GET /api/lost-items.
// The client never edits one locally; it only re-fetches.
type LostItem struct {
	ID          ItemID `json:"id"`
	Title       string `json:"title"`
	Place       string `json:"place"`
	Status      Status `json:"status,omitempty"`
	Date        string `json:"date,omitempty"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON also accepts the backend's lostDate spelling.
func (it *LostItem) UnmarshalJSON(b []byte) error {
	type plain LostItem
	var aux struct {
		plain
		LostDate string `json:"lostDate"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*it = LostItem(aux.plain)
	if it.Date == "" {
		it.Date = aux.LostDate
	}
	return nil
}
