package inventory

import (
	"fmt"
	"sort"
)

// Archetype is an immutable blueprint. Building it repeatedly yields
// independent trees with the same structure.
type Archetype struct {
	pluginID string
	name     string
	bp       blueprint
}

func (a *Archetype) PluginID() string { return a.pluginID }
func (a *Archetype) Name() string     { return a.name }

// Key is "plugin:name".
func (a *Archetype) Key() string { return archetypeKey(a.pluginID, a.name) }

func (a *Archetype) String() string { return a.Key() }

// Equal compares archetypes by plugin and name.
func (a *Archetype) Equal(o *Archetype) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.pluginID == o.pluginID && a.name == o.name
}

// Build instantiates a fresh tree owned by the archetype's plugin.
func (a *Archetype) Build() Inventory {
	return a.bp.construct(a, a.pluginID)
}

// BuildAs builds a and asserts the result to T. A mismatch is a configuration
// bug and panics.
func BuildAs[T Inventory](a *Archetype) T {
	inv := a.Build()
	t, ok := inv.(T)
	if !ok {
		panic(&BuildError{Builder: "archetype", Reason: fmt.Sprintf("%s builds %T, not %T", a, inv, t)})
	}
	return t
}

func archetypeKey(pluginID, name string) string {
	return pluginID + ":" + name
}

// Registry holds archetypes by key. It is built once at start-up and handed to
// the code that needs it.
type Registry struct {
	archetypes map[string]*Archetype
}

func NewRegistry() *Registry {
	return &Registry{archetypes: make(map[string]*Archetype)}
}

func (r *Registry) Register(a *Archetype) error {
	if a == nil {
		return fmt.Errorf("archetype: nil archetype")
	}
	if _, exists := r.archetypes[a.Key()]; exists {
		return fmt.Errorf("archetype: %s already registered", a.Key())
	}
	r.archetypes[a.Key()] = a
	return nil
}

// MustRegister panics on a duplicate key.
func (r *Registry) MustRegister(a *Archetype) *Archetype {
	if err := r.Register(a); err != nil {
		panic(err)
	}
	return a
}

func (r *Registry) Get(pluginID, name string) (*Archetype, bool) {
	a, ok := r.archetypes[archetypeKey(pluginID, name)]
	return a, ok
}

// Lookup resolves a "plugin:name" key.
func (r *Registry) Lookup(key string) (*Archetype, bool) {
	a, ok := r.archetypes[key]
	return a, ok
}

func (r *Registry) MustGet(pluginID, name string) *Archetype {
	a, ok := r.Get(pluginID, name)
	if !ok {
		panic(fmt.Sprintf("archetype: %s not registered", archetypeKey(pluginID, name)))
	}
	return a
}

// All returns every archetype sorted by key.
func (r *Registry) All() []*Archetype {
	result := make([]*Archetype, 0, len(r.archetypes))
	for _, a := range r.archetypes {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key() < result[j].Key() })
	return result
}

func (r *Registry) Len() int { return len(r.archetypes) }
