package paginate

import (
	"fmt"
	"sync/atomic"

	"tprint/common"
	"tprint/content"
)

// State of pagination session.
type State int32

const (
	StateIdle State = iota
	StateBuilding
	StateComplete
	StateFailed
	StateSuperseded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	case StateSuperseded:
		return "superseded"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Session is a single pagination run: the page sequence and the flow chain
// built for one content with one display mode. Pages are only served after
// session is complete and nothing changes them afterwards except resource
// updates posted to the render thread.
type Session struct {
	gen      uint32
	source   *content.Source
	geometry GeometrySource
	mode     common.DisplayContent
	chain    *Chain
	pages    []*Page
	state    atomic.Int32
}

func newSession(gen uint32, src *content.Source, geometry GeometrySource, mode common.DisplayContent) *Session {
	return &Session{
		gen:      gen,
		source:   src,
		geometry: geometry,
		mode:     mode,
		chain:    NewChain(),
	}
}

func (s *Session) Generation() uint32 { return s.gen }

func (s *Session) Mode() common.DisplayContent { return s.mode }

func (s *Session) Chain() *Chain { return s.chain }

func (s *Session) State() State { return State(s.state.Load()) }

func (s *Session) setState(st State) { s.state.Store(int32(st)) }

func (s *Session) Len() int { return len(s.pages) }

// Page returns page by 1-based number.
func (s *Session) Page(number int) (*Page, error) {
	if number < 1 || number > len(s.pages) {
		return nil, fmt.Errorf("%w: page %d, document has %d", ErrPageOutOfRange, number, len(s.pages))
	}
	return s.pages[number-1], nil
}

// Pages returns all pages in order.
func (s *Session) Pages() []*Page {
	return append([]*Page(nil), s.pages...)
}
