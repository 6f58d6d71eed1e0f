package catalog

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/jask/vehicledesk/internal/api"
)

// Source is the read side of the collection resource.
type Source interface {
	List(ctx context.Context, filter api.FavoriteFilter) ([]api.Vehicle, error)
	Get(ctx context.Context, id int64) (api.Vehicle, error)
}

// EmptyState explains why a render model has no records.
type EmptyState struct {
	Reason     string
	Term       string
	Suggestion string
}

// RenderModel is the ordered list to display. Empty is set exactly when
// Records is empty.
type RenderModel struct {
	Records []api.Vehicle
	Empty   *EmptyState
}

// BuildModel applies the client-side search to an already server-filtered
// collection.
func BuildModel(records []api.Vehicle, term string) RenderModel {
	found := Search(records, term)
	if len(found) > 0 {
		return RenderModel{Records: found}
	}
	if term == "" {
		return RenderModel{Records: found, Empty: &EmptyState{Reason: "No vehicles added yet."}}
	}
	return RenderModel{Records: found, Empty: &EmptyState{
		Reason:     fmt.Sprintf("No results for %q.", term),
		Term:       term,
		Suggestion: Suggest(records, term),
	}}
}

// Controller owns the cached collection and the last render model that was
// built successfully. Both are replaced wholesale on each successful refresh
// and left alone on failure.
type Controller struct {
	src Source

	mu       sync.Mutex
	cached   []api.Vehicle
	lastGood RenderModel
	loaded   bool
}

func NewController(src Source) *Controller {
	return &Controller{src: src}
}

// Refresh fetches the collection narrowed by filter and searches it for term.
// It returns the model together with the records it was built from, so a
// caller never pairs them with a collection fetched by another refresh.
func (c *Controller) Refresh(ctx context.Context, filter Filter, term string) (RenderModel, []api.Vehicle, error) {
	records, err := c.src.List(ctx, filter.favorite())
	if err != nil {
		log.Printf("[catalog] refresh filter=%s failed: %v", filter, err)
		return RenderModel{}, nil, fmt.Errorf("refresh vehicles: %w", err)
	}
	model := BuildModel(records, term)

	c.mu.Lock()
	c.cached = records
	c.lastGood = model
	c.loaded = true
	c.mu.Unlock()
	return model, slices.Clone(records), nil
}

// Cached returns a copy of the last fetched collection, before search.
func (c *Controller) Cached() []api.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.cached)
}

// LastGood returns the last successfully built model and whether any refresh
// has succeeded yet.
func (c *Controller) LastGood() (RenderModel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastGood, c.loaded
}

// Detail fetches one record. When the fetch fails the cached copy is returned
// alongside the error so callers can still show something.
func (c *Controller) Detail(ctx context.Context, id int64) (api.Vehicle, error) {
	v, err := c.src.Get(ctx, id)
	if err == nil {
		return v, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cv := range c.cached {
		if cv.ID == id {
			return cv, fmt.Errorf("load vehicle %d: %w", id, err)
		}
	}
	return api.Vehicle{}, fmt.Errorf("load vehicle %d: %w", id, err)
}
