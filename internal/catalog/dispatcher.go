package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jask/vehicledesk/internal/api"
)

// Backend is everything the dispatcher needs from the resource.
type Backend interface {
	Source
	Create(ctx context.Context, v api.NewVehicle) (api.Vehicle, error)
	Delete(ctx context.Context, id int64) (api.DeleteResult, error)
	ToggleFavorite(ctx context.Context, id int64) (api.Vehicle, error)
}

// Query is the view a post-action refresh rebuilds.
type Query struct {
	Filter Filter
	Search string
}

// ConfirmFunc gates destructive actions. Returning false aborts the action
// without contacting the backend.
type ConfirmFunc func(id int64) bool

// Confirmed approves unconditionally; use it once the user has already
// answered a prompt.
func Confirmed(int64) bool { return true }

// Outcome is what an action produced. Err is the action's own failure;
// RefreshErr is the failure of the refetch that followed it.
type Outcome struct {
	Notice     string
	Err        error
	Record     *api.Vehicle
	Model      *RenderModel
	Collection []api.Vehicle
	RefreshErr error
	ClearForm  bool
	Aborted    bool
}

// Failed reports whether the action or its refresh failed.
func (o Outcome) Failed() bool { return o.Err != nil || o.RefreshErr != nil }

// Dispatcher turns user intents into backend calls followed by a refresh.
type Dispatcher struct {
	backend Backend
	list    *Controller
}

func NewDispatcher(backend Backend, list *Controller) *Dispatcher {
	return &Dispatcher{backend: backend, list: list}
}

// Add validates the form and creates the record.
func (d *Dispatcher) Add(ctx context.Context, form Form, q Query) Outcome {
	body, err := ValidateForm(form)
	if err != nil {
		return Outcome{Notice: err.Error(), Err: err}
	}
	created, err := d.backend.Create(ctx, body)
	var out Outcome
	if err != nil {
		log.Printf("[catalog] add %q failed: %v", body.Name, err)
		out = Outcome{
			Notice: "Could not add vehicle: " + api.Message(err, "the server rejected the vehicle"),
			Err:    fmt.Errorf("add vehicle: %w", err),
		}
	} else {
		out = Outcome{Notice: "Vehicle added.", Record: &created, ClearForm: true}
	}
	return d.refresh(ctx, out, q)
}

// Delete removes a record once confirm approves it.
func (d *Dispatcher) Delete(ctx context.Context, id int64, confirm ConfirmFunc, q Query) Outcome {
	if confirm == nil || !confirm(id) {
		return Outcome{Aborted: true}
	}
	res, err := d.backend.Delete(ctx, id)
	var out Outcome
	if err != nil {
		log.Printf("[catalog] delete %d failed: %v", id, err)
		out = Outcome{
			Notice: "Delete failed: " + api.Message(err, "the server refused the delete"),
			Err:    fmt.Errorf("delete vehicle %d: %w", id, err),
		}
	} else {
		msg := res.Message
		if msg == "" {
			msg = "Vehicle deleted."
		}
		out = Outcome{Notice: msg}
	}
	return d.refresh(ctx, out, q)
}

// ToggleFavorite flips the record's favorite flag on the server. The notice
// reflects the value the server returned, not the one we expected.
func (d *Dispatcher) ToggleFavorite(ctx context.Context, id int64, q Query) Outcome {
	v, err := d.backend.ToggleFavorite(ctx, id)
	var out Outcome
	if err != nil {
		log.Printf("[catalog] toggle favorite %d failed: %v", id, err)
		out = Outcome{
			Notice: "Favorite toggle failed: " + api.Message(err, "the server refused the change"),
			Err:    fmt.Errorf("toggle favorite %d: %w", id, err),
		}
	} else {
		out = Outcome{Record: &v, Notice: "Removed from favorites."}
		if v.Favorite {
			out.Notice = "Added to favorites."
		}
	}
	return d.refresh(ctx, out, q)
}

// refresh always refetches after a call reached for the backend, whatever its
// result, so the list shows the source of truth.
func (d *Dispatcher) refresh(ctx context.Context, out Outcome, q Query) Outcome {
	model, records, err := d.list.Refresh(ctx, q.Filter, q.Search)
	if err != nil {
		out.RefreshErr = err
		if out.Err == nil {
			out.Notice += " Refreshing the list failed: " + api.Message(err, "")
		}
		return out
	}
	out.Model = &model
	out.Collection = records
	return out
}

// IsValidation reports whether err came from the local input gate.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
