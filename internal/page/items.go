package page

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/lostfound/internal/form"
	"github.com/idilsaglam/lostfound/internal/listsync"
	"github.com/idilsaglam/lostfound/internal/model"
)

const (
	FallbackLoad   = "Could not load items."
	FallbackCreate = "Could not register the item."
)

// ItemClient is the part of the API the item pages need.
type ItemClient interface {
	List(ctx context.Context) ([]model.LostItem, error)
	Create(ctx context.Context, req model.CreateLostItemRequest) (json.RawMessage, error)
}

// Items is the collection every item page reads from.
type Items = listsync.Collection[model.LostItem]

// NewItems builds a fresh collection bound to the list endpoint. One per
// mounted page; a new mount starts from Idle again.
func NewItems(c ItemClient, log *zap.Logger) *Items {
	return listsync.New[model.LostItem](c.List, listsync.WithLogger(nilSafe(log)))
}

// Home is the list page with its quick add form.
type Home struct {
	items  *Items
	client ItemClient
}

func NewHome(items *Items, c ItemClient) *Home {
	return &Home{items: items, client: c}
}

func (p *Home) Items() *Items { return p.items }

// Mount triggers the initial load.
func (p *Home) Mount(ctx context.Context) error {
	return p.items.Activate(ctx)
}

// Create registers {title, place} and re-fetches the list on success.
func (p *Home) Create(ctx context.Context, f form.ItemForm) error {
	return create(ctx, p.items, p.client, model.CreateLostItemRequest{Title: f.Title, Place: f.Place})
}

// Report is the longer reporting form. The create endpoint only takes title
// and place; the rest stays on this device. Report holds no list of its
// own: the list is fetched once by the home page it navigates to.
type Report struct {
	client ItemClient
	log    *zap.Logger
}

func NewReport(c ItemClient, log *zap.Logger) *Report {
	return &Report{client: c, log: nilSafe(log)}
}

func (p *Report) Submit(ctx context.Context, f form.ReportForm) (Outcome, error) {
	f = f.Trim()
	if f.Description != "" || f.Date != "" {
		p.log.Info("report fields not sent",
			zap.Bool("description", f.Description != ""),
			zap.Bool("date", f.Date != ""))
	}
	if _, err := p.client.Create(ctx, model.CreateLostItemRequest{Title: f.Title, Place: f.Place}); err != nil {
		return Outcome{}, fmt.Errorf("create item: %w", err)
	}
	return Outcome{Navigate: RouteHome, Notice: "Item registered."}, nil
}

func create(ctx context.Context, items *Items, c ItemClient, req model.CreateLostItemRequest) error {
	return items.AfterWrite(ctx, func(ctx context.Context) error {
		if _, err := c.Create(ctx, req); err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		return nil
	})
}

// Search filters the current list by keyword.
type Search struct {
	items *Items
}

func NewSearch(items *Items) *Search {
	return &Search{items: items}
}

func (p *Search) Mount(ctx context.Context) error {
	return p.items.Activate(ctx)
}

func (p *Search) Results(q string) []model.LostItem {
	return Filter(p.items.Snapshot().Items, q)
}

// Filter keeps items whose title, place or source contains q, ignoring
// case. An empty query keeps everything.
func Filter(items []model.LostItem, q string) []model.LostItem {
	kw := strings.ToLower(strings.TrimSpace(q))
	if kw == "" {
		return items
	}
	out := make([]model.LostItem, 0, len(items))
	for _, it := range items {
		for _, v := range []string{it.Title, it.Place, it.Source} {
			if strings.Contains(strings.ToLower(v), kw) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
