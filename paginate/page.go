package paginate

// Page is one printable page of a session. It is created and mutated on the
// render thread only, Tracker is the exception and may be signaled from
// anywhere.
type Page struct {
	Number   int // 1-based
	Geometry Geometry
	Margins  Margins
	// Regions hosted by this page in flow order.
	Regions []RegionID
	Tracker *Tracker
	Visual  Renderable
}

// Trailing returns the last region on the page.
func (p *Page) Trailing() RegionID {
	if len(p.Regions) == 0 {
		return NoRegion
	}
	return p.Regions[len(p.Regions)-1]
}
