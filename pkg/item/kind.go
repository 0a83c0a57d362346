package item

import (
	"fmt"
	"strings"

	"github.com/go-mclib/data/pkg/data/items"
)

const (
	DefaultMaxStackSize = 64
	Namespace           = "minecraft"

	// NoID marks a kind without a protocol id. Register resolves it from the
	// vanilla table when the name is known there.
	NoID int32 = -1
)

// Kind describes an item type and the defaults every stack of it starts from.
type Kind struct {
	ID           int32 // protocol item id, NoID for kinds not known to the vanilla registry
	Name         string
	MaxStackSize int
	Equipment    EquipmentType
}

func (k *Kind) String() string {
	if k == nil {
		return "<none>"
	}
	return k.Name
}

// Registry resolves kind names to shared *Kind values. Kinds compare by pointer,
// so every lookup of the same name returns the same value.
type Registry struct {
	kinds map[string]*Kind
	byID  map[int32]*Kind

	equipment map[int32]EquipmentType // from vanilla item tags, built on first use
}

func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]*Kind),
		byID:  make(map[int32]*Kind),
	}
}

// Register adds a kind. A NoID kind takes its id from the vanilla table when
// the name is known there; 0 is a real id (minecraft:air). Zero MaxStackSize
// and Equipment come from the vanilla item components, or for custom kinds
// from the name.
func (r *Registry) Register(k Kind) (*Kind, error) {
	k.Name = NormalizeName(k.Name)
	if k.Name == "" {
		return nil, fmt.Errorf("item: kind name is required")
	}
	if _, exists := r.kinds[k.Name]; exists {
		return nil, fmt.Errorf("item: kind %q already registered", k.Name)
	}
	if k.ID == NoID {
		k.ID = items.ItemID(k.Name)
	}
	if k.ID >= 0 {
		if other, exists := r.byID[k.ID]; exists {
			return nil, fmt.Errorf("item: id %d already registered as %s", k.ID, other.Name)
		}
		r.vanillaDefaults(&k)
	} else {
		k.ID = NoID
		customDefaults(&k)
	}
	kind := &k
	r.kinds[kind.Name] = kind
	if kind.ID >= 0 {
		r.byID[kind.ID] = kind
	}
	return kind, nil
}

// MustRegister is Register for start-up code; it panics on a duplicate name.
func (r *Registry) MustRegister(k Kind) *Kind {
	kind, err := r.Register(k)
	if err != nil {
		panic(err)
	}
	return kind
}

// Lookup returns the kind for name ("stone" and "minecraft:stone" are the same),
// falling back to the vanilla item table.
func (r *Registry) Lookup(name string) (*Kind, bool) {
	name = NormalizeName(name)
	if k, ok := r.kinds[name]; ok {
		return k, true
	}
	id := items.ItemID(name)
	if id < 0 {
		return nil, false
	}
	return r.vanilla(id, name), true
}

// MustLookup panics when name is unknown.
func (r *Registry) MustLookup(name string) *Kind {
	k, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("item: unknown kind %q", name))
	}
	return k
}

// ByID resolves a protocol item id.
func (r *Registry) ByID(id int32) (*Kind, bool) {
	if k, ok := r.byID[id]; ok {
		return k, true
	}
	if id < 0 {
		return nil, false
	}
	name := items.ItemName(id)
	if name == "" {
		return nil, false
	}
	return r.vanilla(id, NormalizeName(name)), true
}

// Tag returns the kinds belonging to a vanilla item tag such as "minecraft:swords".
func (r *Registry) Tag(tag string) []*Kind {
	tag = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tag)), "#")
	if !strings.Contains(tag, ":") {
		tag = Namespace + ":" + tag
	}
	var result []*Kind
	for _, id := range items.ItemTag(tag) {
		if k, ok := r.ByID(id); ok {
			result = append(result, k)
		}
	}
	return result
}

func (r *Registry) vanilla(id int32, name string) *Kind {
	k := &Kind{ID: id, Name: name}
	r.vanillaDefaults(k)
	r.kinds[name] = k
	r.byID[id] = k
	return k
}

// NormalizeName lower-cases name and adds the minecraft namespace when missing.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if !strings.Contains(name, ":") {
		name = Namespace + ":" + name
	}
	return name
}

// Custom kinds have no vanilla components; armor is the only default derived
// from their name.
var customArmorSuffixes = []struct {
	suffix string
	t      EquipmentType
}{
	{"_helmet", EquipmentHead},
	{"_chestplate", EquipmentChest},
	{"_leggings", EquipmentLegs},
	{"_boots", EquipmentFeet},
}

func customDefaults(k *Kind) {
	if k.Equipment == EquipmentNone {
		for _, a := range customArmorSuffixes {
			if strings.HasSuffix(k.Name, a.suffix) {
				k.Equipment = a.t
				break
			}
		}
	}
	if k.MaxStackSize <= 0 {
		k.MaxStackSize = DefaultMaxStackSize
		if k.Equipment.Armor() {
			k.MaxStackSize = 1
		}
	}
}
