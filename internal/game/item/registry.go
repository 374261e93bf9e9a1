package item

import "fmt"

// Registry holds all loaded item definitions indexed by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds d to the registry.
//
// Precondition: d must not be nil and must have passed Validate.
// Postcondition: Def(d.ID) returns (d, true); returns error if d.ID already registered.
func (r *Registry) Register(d *Def) error {
	if _, exists := r.defs[d.ID]; exists {
		return fmt.Errorf("item: Registry.Register: item ID %q already registered", d.ID)
	}
	r.defs[d.ID] = d
	return nil
}

// Def returns the Def for the given id and whether it was found.
func (r *Registry) Def(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns all registered Defs in unspecified order.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

const (
	walkActive = 1
	walkDone   = 2
)

// ValidateContents checks every registered container definition.
//
// Postcondition: Returns nil iff every contained item ID resolves and no
// containment chain revisits a definition; returns an error naming the
// offending item otherwise. Instantiate is guaranteed to terminate for every
// registered id once this passes.
func (r *Registry) ValidateContents() error {
	state := make(map[string]int, len(r.defs))
	var walk func(id string) error
	walk = func(id string) error {
		switch state[id] {
		case walkDone:
			return nil
		case walkActive:
			return fmt.Errorf("item: container %q contains itself through its contents", id)
		}
		state[id] = walkActive
		d := r.defs[id]
		for _, cid := range d.ContainedItemIDs {
			if _, ok := r.defs[cid]; !ok {
				return fmt.Errorf("item: container %q contains unknown item %q", id, cid)
			}
			if err := walk(cid); err != nil {
				return err
			}
		}
		state[id] = walkDone
		return nil
	}
	for id := range r.defs {
		if err := walk(id); err != nil {
			return err
		}
	}
	return nil
}

// Instantiate creates a live Item from the definition with the given id.
// Container contents are instantiated recursively, so every Item owns its own
// copy of its contents.
//
// Postcondition: Returns a fresh Item (never a shared instance), or an error
// if id or any contained item id is not registered.
func (r *Registry) Instantiate(id string) (*Item, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("item: unknown item id %q", id)
	}
	it := &Item{Def: d}
	for _, cid := range d.ContainedItemIDs {
		inner, err := r.Instantiate(cid)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", id, err)
		}
		it.Contained = append(it.Contained, inner)
	}
	return it, nil
}
