package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLostItemDecodesNumericAndStringIDs(t *testing.T) {
	var items []LostItem
	body := `[{"id":7,"title":"Wallet","place":"Library","status":"REPORTED"},
	          {"id":"a-1","title":"Umbrella","place":"Gym","date":"2025-09-15","source":"lost112"}]`
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 2)

	assert.Equal(t, ItemID("7"), items[0].ID)
	assert.Equal(t, StatusReported, items[0].Status)
	assert.Equal(t, ItemID("a-1"), items[1].ID)
	assert.Equal(t, "2025-09-15", items[1].Date)
	assert.Equal(t, "lost112", items[1].Source)
}

func TestLostItemAcceptsLostDate(t *testing.T) {
	var it LostItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"Keys","lostDate":"2025-10-01"}`), &it))
	assert.Equal(t, "2025-10-01", it.Date)
}

func TestStatusResolved(t *testing.T) {
	assert.False(t, StatusOpen.Resolved())
	assert.False(t, StatusReported.Resolved())
	assert.True(t, StatusResolved.Resolved())
	assert.True(t, StatusReturned.Resolved())
	assert.True(t, Status("found").Resolved())
	assert.True(t, Status("found").AwaitingPickup())
	assert.False(t, StatusReturned.AwaitingPickup())
}

func TestSessionUserEqual(t *testing.T) {
	a := &SessionUser{Email: "a@b.com"}
	assert.True(t, a.Equal(&SessionUser{Email: "a@b.com"}))
	assert.False(t, a.Equal(nil))
	var n *SessionUser
	assert.True(t, n.Equal(nil))
}
