package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/idilsaglam/lostfound/internal/model"
)

type LostItemAPI struct {
	c *Client
}

// List fetches the whole collection. No filter, sort or paging is sent;
// order is whatever the server returns.
func (l *LostItemAPI) List(ctx context.Context) ([]model.LostItem, error) {
	raw, err := l.c.do(ctx, http.MethodGet, "/api/lost-items", nil)
	if err != nil {
		return nil, err
	}
	data := unwrap(raw)
	if len(data) == 0 || string(data) == "null" {
		return []model.LostItem{}, nil
	}
	var items []model.LostItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode lost items: %w", err)
	}
	return items, nil
}

// Create asks the server to record a new item. The response is ignored by
// callers, which re-fetch the list instead.
func (l *LostItemAPI) Create(ctx context.Context, req model.CreateLostItemRequest) (json.RawMessage, error) {
	return l.c.do(ctx, http.MethodPost, "/api/lost-items", req)
}
