package regressor

import (
	"fmt"

	"github.com/Bipul-Dubey/health-index/shared/constants"
)

// Entry is one selectable model.
type Entry struct {
	ID    string
	Name  string
	Kind  constants.ModelKind
	Model Regressor
}

// Registry maps model ids to models. It is filled at startup and only read
// afterwards, so lookups need no locking.
type Registry struct {
	entries   []Entry
	byID      map[string]int
	defaultID string
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

func (r *Registry) Register(e Entry) error {
	if e.ID == "" || e.Model == nil {
		return fmt.Errorf("%w: entry needs an id and a model", ErrInvalidModel)
	}
	if _, ok := r.byID[e.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateModel, e.ID)
	}
	if e.Name == "" {
		e.Name = e.ID
	}
	r.byID[e.ID] = len(r.entries)
	r.entries = append(r.entries, e)
	if r.defaultID == "" {
		r.defaultID = e.ID
	}
	return nil
}

// SetDefault picks the model used when a request names none.
func (r *Registry) SetDefault(id string) error {
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	r.defaultID = id
	return nil
}

func (r *Registry) Get(id string) (Entry, error) {
	if id == "" {
		return r.Default()
	}
	i, ok := r.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	return r.entries[i], nil
}

func (r *Registry) Default() (Entry, error) {
	if r.defaultID == "" {
		return Entry{}, ErrNoModels
	}
	return r.entries[r.byID[r.defaultID]], nil
}

func (r *Registry) DefaultID() string { return r.defaultID }

// List returns entries in registration order.
func (r *Registry) List() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int { return len(r.entries) }
