package paginate

import (
	"fmt"

	"tprint/common"
)

// Builder creates pages and their flow regions, appending regions to the
// session chain.
type Builder struct {
	chain      *Chain
	marginLeft float64
	marginTop  float64

	// margins are computed once per distinct page description
	cachedFor Geometry
	cached    Margins
	hasCached bool
}

// NewBuilder creates page builder. Margin fractions are per side, relative to
// page size.
func NewBuilder(chain *Chain, marginLeft, marginTop float64) *Builder {
	return &Builder{chain: chain, marginLeft: marginLeft, marginTop: marginTop}
}

func (b *Builder) margins(g Geometry) Margins {
	if !b.hasCached || b.cachedFor != g {
		b.cachedFor, b.cached, b.hasCached = g, ComputeMargins(g, b.marginLeft, b.marginTop), true
	}
	return b.cached
}

// BuildPage creates page number and its regions. The first page gets source
// region, every following page continues flow from prev. When mode includes
// text the page gets two more overflow regions below the first one. Returns
// the page and its trailing region.
func (b *Builder) BuildPage(prev RegionID, number int, g Geometry, mode common.DisplayContent) (*Page, RegionID, error) {
	if err := g.Validate(); err != nil {
		return nil, NoRegion, fmt.Errorf("page %d: %w", number, err)
	}

	m := b.margins(g)
	rows := rowBounds(m.Content(g))
	page := &Page{
		Number:   number,
		Geometry: g,
		Margins:  m,
		Tracker:  NewTracker(),
	}

	var first RegionID
	if prev == NoRegion {
		if b.chain.Len() != 0 {
			return nil, NoRegion, fmt.Errorf("%w: page %d has no predecessor in non empty chain", ErrBrokenChain, number)
		}
		first = b.chain.Add(RegionSource, number, 0, rows[0])
	} else {
		first = b.chain.Add(RegionOverflow, number, 0, rows[0])
		if err := b.chain.Link(prev, first); err != nil {
			return nil, NoRegion, fmt.Errorf("page %d: %w", number, err)
		}
	}
	page.Regions = append(page.Regions, first)

	last := first
	if mode.HasText() {
		for row := 1; row < len(rows); row++ {
			id := b.chain.Add(RegionOverflow, number, row, rows[row])
			if err := b.chain.Link(last, id); err != nil {
				return nil, NoRegion, fmt.Errorf("page %d: %w", number, err)
			}
			page.Regions = append(page.Regions, id)
			last = id
		}
	}
	return page, last, nil
}
