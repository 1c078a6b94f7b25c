package section

import "time"

const (
	// DefaultSectionID is the active id before any geometry has been seen.
	DefaultSectionID = "home"

	// DefaultHeaderOffset is the height of the fixed header in pixels.
	DefaultHeaderOffset = 100.0

	// MinVisibleHeight filters out sections that only peek into the viewport.
	MinVisibleHeight = 50.0

	// LargeSectionRatio marks a section as large when it is taller than this
	// share of the viewport.
	LargeSectionRatio = 0.8

	// LargeSectionBoost multiplies the score of a large section while the
	// header line sits inside it.
	LargeSectionBoost = 1.5

	// MountRetryDelay is the grace period before retrying a mount that found
	// no sections.
	MountRetryDelay = 100 * time.Millisecond
)

// Rect is a viewport-relative bounding box.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Height float64 `json:"height"`
}

// Section is a named block of the page and its current geometry.
type Section struct {
	ID  string `json:"id"`
	Box Rect   `json:"box"`
}

type Viewport struct {
	Height float64 `json:"height"`
}

// Measure returns the visible height of s below the header line and the
// score used to rank it.
func Measure(s Section, viewportHeight, headerOffset float64) (visible, score float64) {
	visible = min(s.Box.Bottom, viewportHeight) - max(s.Box.Top, headerOffset)
	if visible < 0 {
		visible = 0
	}

	score = visible
	isLarge := s.Box.Height > viewportHeight*LargeSectionRatio
	if isLarge && s.Box.Top <= headerOffset && s.Box.Bottom > headerOffset {
		score = visible * LargeSectionBoost
	}
	return visible, score
}

// Pick returns the id of the best scoring section. Sections showing no more
// than MinVisibleHeight are ignored. When nothing qualifies, or when two
// sections share the top score, current is returned unchanged.
func Pick(sections []Section, viewportHeight, headerOffset float64, current string) string {
	best := current
	bestScore := 0.0
	tied := false
	found := false

	for _, s := range sections {
		visible, score := Measure(s, viewportHeight, headerOffset)
		if visible <= MinVisibleHeight {
			continue
		}

		switch {
		case !found || score > bestScore:
			best, bestScore, tied, found = s.ID, score, false, true
		case score == bestScore:
			tied = true
		}
	}

	if !found || tied {
		return current
	}
	return best
}
