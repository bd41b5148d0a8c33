package paginate

import "errors"

var (
	// ErrInvalidConfiguration is returned when document preconditions are not
	// met. Wrapped error lists every failed check.
	ErrInvalidConfiguration = errors.New("invalid print document configuration")

	// ErrNotPaginated is returned when pages are requested before successful
	// pagination.
	ErrNotPaginated = errors.New("document is not paginated")

	ErrPageOutOfRange = errors.New("page number out of range")

	// ErrSuperseded is returned when newer pagination request replaced the
	// one in progress.
	ErrSuperseded = errors.New("pagination superseded by newer request")

	// ErrRunaway is returned when content keeps overflowing past page limit.
	ErrRunaway = errors.New("pagination exceeded page limit")

	// ErrLayoutStale is returned when overflow is queried for region that was
	// not laid out yet.
	ErrLayoutStale = errors.New("layout is not up to date")

	ErrBrokenChain = errors.New("broken flow chain")
)
