package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const vh = 1000.0

func sec(id string, top, bottom float64) Section {
	return Section{ID: id, Box: Rect{Top: top, Bottom: bottom, Height: bottom - top}}
}

func TestMeasure(t *testing.T) {
	tests := []struct {
		name        string
		section     Section
		wantVisible float64
		wantScore   float64
	}{
		{
			name:        "fully visible short section",
			section:     sec("about", 200, 600),
			wantVisible: 400,
			wantScore:   400,
		},
		{
			name:        "clipped by header",
			section:     sec("about", 0, 300),
			wantVisible: 200,
			wantScore:   200,
		},
		{
			name:        "below the fold",
			section:     sec("about", 1200, 1600),
			wantVisible: 0,
			wantScore:   0,
		},
		{
			name:        "scrolled past",
			section:     sec("about", -800, 50),
			wantVisible: 0,
			wantScore:   0,
		},
		{
			name:        "large section under header line is boosted",
			section:     sec("portfolio", -400, 500),
			wantVisible: 400,
			wantScore:   600,
		},
		{
			name:        "large section not yet under header line",
			section:     sec("portfolio", 300, 1200),
			wantVisible: 700,
			wantScore:   700,
		},
		{
			name:        "large section with top exactly on header line",
			section:     sec("contact", 100, 1000),
			wantVisible: 900,
			wantScore:   1350,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, score := Measure(tt.section, vh, DefaultHeaderOffset)
			assert.InDelta(t, tt.wantVisible, visible, 1e-9)
			assert.InDelta(t, tt.wantScore, score, 1e-9)
		})
	}
}

func TestPickTieKeepsCurrent(t *testing.T) {
	sections := []Section{
		sec("about", 200, 500),
		sec("services", 500, 800),
	}

	assert.Equal(t, "experience", Pick(sections, vh, DefaultHeaderOffset, "experience"))
	assert.Equal(t, "about", Pick(sections, vh, DefaultHeaderOffset, "about"))
}

func TestPickThreshold(t *testing.T) {
	at49 := []Section{sec("about", 951, 1400)}
	at51 := []Section{sec("about", 949, 1400)}

	assert.Equal(t, DefaultSectionID, Pick(at49, vh, DefaultHeaderOffset, DefaultSectionID))
	assert.Equal(t, "about", Pick(at51, vh, DefaultHeaderOffset, DefaultSectionID))
}

func TestPickExactlyFiftyIsIgnored(t *testing.T) {
	sections := []Section{sec("about", 950, 1400)}
	assert.Equal(t, "home", Pick(sections, vh, DefaultHeaderOffset, "home"))
}

func TestPickNoCandidatesKeepsCurrent(t *testing.T) {
	assert.Equal(t, "services", Pick(nil, vh, DefaultHeaderOffset, "services"))
	assert.Equal(t, "services", Pick([]Section{sec("a", 2000, 2500)}, vh, DefaultHeaderOffset, "services"))
}

func TestPickLargeSectionBoost(t *testing.T) {
	// tall section is 90% of the viewport and straddles the header line
	tall := sec("portfolio-showcase", -400, 500)
	tallVisible, tallScore := Measure(tall, vh, DefaultHeaderOffset)
	assert.InDelta(t, 900.0, tall.Box.Height, 1e-9)

	t.Run("beats short section at 80 percent of its visible height", func(t *testing.T) {
		short := sec("services", 500, 500+0.8*tallVisible)
		_, shortScore := Measure(short, vh, DefaultHeaderOffset)

		assert.Greater(t, tallScore, shortScore)
		assert.Equal(t, "portfolio-showcase", Pick([]Section{short, tall}, vh, DefaultHeaderOffset, "home"))
	})

	t.Run("boost tips a comparison raw height would lose", func(t *testing.T) {
		short := sec("contact", 500, 1000)
		shortVisible, _ := Measure(short, vh, DefaultHeaderOffset)

		assert.Greater(t, shortVisible, tallVisible)
		assert.Equal(t, "portfolio-showcase", Pick([]Section{tall, short}, vh, DefaultHeaderOffset, "home"))
	})
}

func TestPickCustomHeaderOffset(t *testing.T) {
	sections := []Section{
		sec("home", -100, 140),
		sec("about", 140, 400),
	}

	assert.Equal(t, "about", Pick(sections, vh, DefaultHeaderOffset, "home"))
	assert.Equal(t, "about", Pick(sections, vh, 0, "home"))
}
