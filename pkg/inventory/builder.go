package inventory

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/go-mclib/inventory/pkg/carrier"
	"github.com/go-mclib/inventory/pkg/item"
)

// DefaultPriority is used for children declared without Priority. Lower values
// are visited first by Offer and Poll.
const DefaultPriority = 1000

// BuildError reports a builder misconfiguration. Build and BuildArchetype panic
// with it; Validate returns it.
type BuildError struct {
	Builder string
	Reason  string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("inventory: %s builder: %s", e.Builder, e.Reason)
}

// Builds is implemented by every builder.
type Builds[T Inventory] interface {
	// Build validates the builder and returns a fully wired tree. An optional
	// plugin id overrides the builder's own.
	Build(plugin ...string) T
	// BuildArchetype snapshots the builder. Unchanged builders return the same
	// archetype for the same key.
	BuildArchetype(pluginID, name string) *Archetype
	Validate() error
}

// blueprint is the snapshot an archetype builds from.
type blueprint interface {
	clone() blueprint
	validate() error
	construct(a *Archetype, plugin string) Inventory
}

// ChildOption configures a child declared on a composite builder.
type ChildOption func(*childConfig)

type childConfig struct {
	priority int
}

// Priority sets the child's priority. Ties keep structural order.
func Priority(p int) ChildOption {
	return func(c *childConfig) { c.priority = p }
}

func applyChildOptions(opts []ChildOption) childConfig {
	cfg := childConfig{priority: DefaultPriority}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// common is the builder state shared by every builder kind.
type common struct {
	kind     string
	name     string
	plugin   string
	props    map[PropertyKey]any
	supplier func(Inventory) Inventory
	carrier  carrier.Carrier
	err      error
	cached   *Archetype
}

func newCommon(kind string) common {
	return common{kind: kind, props: make(map[PropertyKey]any)}
}

// fail records the first misconfiguration; it surfaces at build time.
func (c *common) fail(format string, args ...any) {
	if c.err == nil {
		c.err = &BuildError{Builder: c.kind, Reason: fmt.Sprintf(format, args...)}
	}
	c.cached = nil
}

func (c *common) touch() { c.cached = nil }

func (c *common) setName(name string) {
	c.name = name
	c.touch()
}

func (c *common) setProperty(key PropertyKey, value any) {
	if key == "" {
		c.fail("property key is empty")
		return
	}
	c.props[key] = value
	c.touch()
}

func (c *common) setPlugin(id string) {
	c.plugin = id
	c.touch()
}

func (c *common) setSupplier(fn func(Inventory) Inventory) {
	if fn == nil {
		c.fail("type supplier not set")
		return
	}
	c.supplier = fn
	c.touch()
}

func (c *common) setCarrier(cr carrier.Carrier) {
	c.carrier = cr
	c.touch()
}

func (c *common) pluginFor(override []string) string {
	if len(override) > 0 && override[0] != "" {
		return override[0]
	}
	return c.plugin
}

func (c common) clone() common {
	c.props = maps.Clone(c.props)
	c.cached = nil
	return c
}

func (c *common) mustValidate(validate func() error) {
	if err := validate(); err != nil {
		panic(err)
	}
}

// apply copies the builder's metadata onto a freshly built node.
func (c *common) apply(n *node, a *Archetype, plugin string) {
	n.name = c.name
	n.plugin = c.plugin
	if plugin != "" {
		n.plugin = plugin
	}
	n.archetype = a
	n.props = maps.Clone(c.props)
	if n.props == nil {
		n.props = make(map[PropertyKey]any)
	}
	if c.carrier != nil {
		n.carrier.Set(c.carrier)
	}
}

// wrap hands the built shell to the type supplier. The supplier's value must
// embed the shell; it becomes the node's identity.
func (c *common) wrap(shell Inventory) Inventory {
	if c.supplier == nil {
		return shell
	}
	w := c.supplier(shell)
	if w == nil || w.base() != shell.base() {
		panic(&BuildError{Builder: c.kind, Reason: fmt.Sprintf("type supplier must return a value embedding %T", shell)})
	}
	shell.base().self = w
	return w
}

func (c *common) archetype(bp blueprint, pluginID, name string) *Archetype {
	if name == "" {
		panic(&BuildError{Builder: c.kind, Reason: "archetype name is required"})
	}
	if c.cached != nil && c.cached.pluginID == pluginID && c.cached.name == name {
		return c.cached
	}
	if err := bp.validate(); err != nil {
		panic(err)
	}
	a := &Archetype{pluginID: pluginID, name: name, bp: bp.clone()}
	c.cached = a
	return a
}

// stablePriority returns the indexes of priorities sorted by priority, ties in
// index order.
func stablePriority(priorities []int) []int {
	order := make([]int, len(priorities))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(priorities[a], priorities[b])
	})
	return order
}

// SlotBuilder builds single slots.
type SlotBuilder struct {
	common
	maxStackSize int
	filter       item.Filter
}

var _ Builds[*Slot] = (*SlotBuilder)(nil)

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{common: newCommon("slot"), maxStackSize: DefaultMaxStackSize}
}

func (b *SlotBuilder) MaxStackSize(n int) *SlotBuilder {
	if n <= 0 {
		b.fail("max stack size %d must be positive", n)
		return b
	}
	b.maxStackSize = n
	b.touch()
	return b
}

// Filter restricts what the slot accepts. Filters are immutable and shared by
// every slot built from this builder.
func (b *SlotBuilder) Filter(f item.Filter) *SlotBuilder {
	b.filter = f
	b.touch()
	return b
}

func (b *SlotBuilder) Name(name string) *SlotBuilder {
	b.setName(name)
	return b
}

func (b *SlotBuilder) Property(key PropertyKey, value any) *SlotBuilder {
	b.setProperty(key, value)
	return b
}

func (b *SlotBuilder) Plugin(id string) *SlotBuilder {
	b.setPlugin(id)
	return b
}

// Copy returns an independent builder.
func (b *SlotBuilder) Copy() *SlotBuilder {
	c := *b
	c.common = b.common.clone()
	return &c
}

func (b *SlotBuilder) Validate() error { return b.err }

func (b *SlotBuilder) Build(plugin ...string) *Slot {
	b.mustValidate(b.validate)
	return b.build(nil, b.pluginFor(plugin))
}

func (b *SlotBuilder) BuildArchetype(pluginID, name string) *Archetype {
	return b.archetype(b, pluginID, name)
}

func (b *SlotBuilder) build(a *Archetype, plugin string) *Slot {
	s := newSlot(b.maxStackSize, b.filter)
	b.apply(&s.node, a, plugin)
	return s
}

func (b *SlotBuilder) clone() blueprint { return b.Copy() }
func (b *SlotBuilder) validate() error  { return b.err }

func (b *SlotBuilder) construct(a *Archetype, plugin string) Inventory {
	b.mustValidate(b.validate)
	return b.build(a, plugin)
}
