package state

import (
	"strings"
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:    time.Now(),
		DemoText: demoText(),
	}
}

// demoText is printed when no source is given, it is long enough to span
// several pages with default geometry.
func demoText() string {
	paragraphs := []string{
		"Pagination splits one continuous flow of text into pages. Each page is a stack of regions, text which does not fit into a region flows into the next one, and the last region of a page hands the rest over to the first region of the following page.",
		"Pictures are loaded in the background. A page is served right away even when some of its pictures are still on the way, and it is pushed again once they arrive, but only if the reader is still looking at it.",
		"Changing the page, or starting a new print request, turns every pending late update for the old page into a no-op. Nothing is cancelled explicitly, the update just finds that it is no longer wanted.",
		"The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs. How vexingly quick daft zebras jump. Sphinx of black quartz, judge my vow.",
	}
	var sb strings.Builder
	for i := range 6 {
		for j, p := range paragraphs {
			if i+j > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(p)
		}
	}
	return sb.String()
}
