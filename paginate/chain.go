package paginate

import (
	"fmt"
)

// RegionID addresses flow region inside its Chain.
type RegionID int

// NoRegion marks absent link.
const NoRegion RegionID = -1

type RegionKind int

const (
	// RegionSource is the only region attached to content directly.
	RegionSource RegionKind = iota
	// RegionOverflow receives whatever did not fit into its predecessor.
	RegionOverflow
)

func (k RegionKind) String() string {
	switch k {
	case RegionSource:
		return "source"
	case RegionOverflow:
		return "overflow"
	}
	return fmt.Sprintf("RegionKind(%d)", int(k))
}

// FlowRegion is a rectangle on a page that receives a contiguous span of
// content.
type FlowRegion struct {
	ID       RegionID
	Kind     RegionKind
	Page     int // 1-based page number
	Row      int // grid row on page
	Bounds   Rect
	Target   RegionID // next region in flow, NoRegion for terminal one
	Incoming RegionID // previous region in flow, NoRegion for source one
}

func (r FlowRegion) IsTerminal() bool { return r.Target == NoRegion }

// Chain is an arena of flow regions of a single pagination session. Regions
// are never removed, links only point forward so the chain has no cycles.
type Chain struct {
	regions []FlowRegion
}

func NewChain() *Chain {
	return &Chain{}
}

func (c *Chain) Len() int { return len(c.regions) }

// Add appends unlinked region and returns its id.
func (c *Chain) Add(kind RegionKind, page, row int, bounds Rect) RegionID {
	id := RegionID(len(c.regions))
	c.regions = append(c.regions, FlowRegion{
		ID:       id,
		Kind:     kind,
		Page:     page,
		Row:      row,
		Bounds:   bounds,
		Target:   NoRegion,
		Incoming: NoRegion,
	})
	return id
}

func (c *Chain) valid(id RegionID) bool {
	return id >= 0 && int(id) < len(c.regions)
}

// Link makes region "to" the overflow target of region "from".
func (c *Chain) Link(from, to RegionID) error {
	switch {
	case !c.valid(from) || !c.valid(to):
		return fmt.Errorf("%w: unknown region in link %d -> %d", ErrBrokenChain, from, to)
	case to <= from:
		return fmt.Errorf("%w: link %d -> %d does not point forward", ErrBrokenChain, from, to)
	case c.regions[from].Target != NoRegion:
		return fmt.Errorf("%w: region %d already flows into %d", ErrBrokenChain, from, c.regions[from].Target)
	case c.regions[to].Incoming != NoRegion:
		return fmt.Errorf("%w: region %d already receives from %d", ErrBrokenChain, to, c.regions[to].Incoming)
	case c.regions[to].Kind != RegionOverflow:
		return fmt.Errorf("%w: region %d is not an overflow region", ErrBrokenChain, to)
	}
	c.regions[from].Target = to
	c.regions[to].Incoming = from
	return nil
}

func (c *Chain) Region(id RegionID) (FlowRegion, bool) {
	if !c.valid(id) {
		return FlowRegion{}, false
	}
	return c.regions[id], true
}

// Next returns region receiving overflow of id.
func (c *Chain) Next(id RegionID) RegionID {
	if !c.valid(id) {
		return NoRegion
	}
	return c.regions[id].Target
}

// Head returns the source region.
func (c *Chain) Head() RegionID {
	if len(c.regions) == 0 {
		return NoRegion
	}
	return 0
}

// Order returns region ids in flow order starting from source.
func (c *Chain) Order() []RegionID {
	order := make([]RegionID, 0, len(c.regions))
	for id := c.Head(); id != NoRegion; id = c.regions[id].Target {
		order = append(order, id)
	}
	return order
}

// Terminal returns the last region of the flow.
func (c *Chain) Terminal() RegionID {
	last := NoRegion
	for id := c.Head(); id != NoRegion; id = c.regions[id].Target {
		last = id
	}
	return last
}

// Regions returns copy of all regions in creation order.
func (c *Chain) Regions() []FlowRegion {
	return append([]FlowRegion(nil), c.regions...)
}

// Validate checks that regions form exactly one linear chain: one source
// region at the head, every region reachable from it and exactly one terminal.
func (c *Chain) Validate() error {
	if len(c.regions) == 0 {
		return nil
	}
	sources, terminals := 0, 0
	for _, r := range c.regions {
		if r.Kind == RegionSource {
			sources++
		}
		if r.IsTerminal() {
			terminals++
		}
		if (r.Incoming == NoRegion) != (r.Kind == RegionSource) {
			return fmt.Errorf("%w: region %d (%s) has incoming link %d", ErrBrokenChain, r.ID, r.Kind, r.Incoming)
		}
	}
	if sources != 1 || c.regions[0].Kind != RegionSource {
		return fmt.Errorf("%w: %d source regions", ErrBrokenChain, sources)
	}
	if terminals != 1 {
		return fmt.Errorf("%w: %d terminal regions", ErrBrokenChain, terminals)
	}
	if n := len(c.Order()); n != len(c.regions) {
		return fmt.Errorf("%w: only %d of %d regions reachable from source", ErrBrokenChain, n, len(c.regions))
	}
	return nil
}
