package section

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(scroll float64) []Section {
	// home 0-800, about 800-1400, portfolio 1400-2600, offset by scroll
	return []Section{
		sec("home", 0-scroll, 800-scroll),
		sec("about", 800-scroll, 1400-scroll),
		sec("portfolio-showcase", 1400-scroll, 2600-scroll),
	}
}

func TestTrackerDefaultsToHome(t *testing.T) {
	tr := NewTracker(NewSnapshotEnvironment(nil, Viewport{Height: vh}))
	assert.Equal(t, DefaultSectionID, tr.Active())
}

func TestTrackerMountRecomputesEagerly(t *testing.T) {
	env := NewSnapshotEnvironment(page(700), Viewport{Height: vh})
	tr := NewTracker(env)

	unmount := tr.Mount()
	defer unmount()

	assert.Equal(t, "about", tr.Active())
}

func TestTrackerFollowsScroll(t *testing.T) {
	env := NewSnapshotEnvironment(page(0), Viewport{Height: vh})

	var mu sync.Mutex
	var changes []string
	tr := NewTracker(env, WithOnChange(func(id string) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, id)
	}))

	unmount := tr.Mount()
	defer unmount()
	assert.Equal(t, "home", tr.Active())

	env.Set(page(700), Viewport{Height: vh})
	env.Scroll()
	assert.Equal(t, "about", tr.Active())

	env.Set(page(1500), Viewport{Height: vh})
	env.Scroll()
	assert.Equal(t, "portfolio-showcase", tr.Active())

	// same geometry again must not emit another change
	env.Scroll()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"about", "portfolio-showcase"}, changes)
}

func TestTrackerVisibilityOnlyReactsToIntersecting(t *testing.T) {
	env := NewSnapshotEnvironment(page(0), Viewport{Height: vh})
	tr := NewTracker(env)
	unmount := tr.Mount()
	defer unmount()

	env.Set(page(700), Viewport{Height: vh})
	env.SetVisibility("home", false)
	assert.Equal(t, "home", tr.Active())

	env.SetVisibility("about", true)
	assert.Equal(t, "about", tr.Active())
}

func TestTrackerUnmountReleasesRegistrations(t *testing.T) {
	env := NewSnapshotEnvironment(page(0), Viewport{Height: vh})
	tr := NewTracker(env)

	unmount := tr.Mount()
	observers, scrollers := env.Registrations()
	assert.Equal(t, 3, observers)
	assert.Equal(t, 1, scrollers)

	unmount()
	unmount()
	observers, scrollers = env.Registrations()
	assert.Zero(t, observers)
	assert.Zero(t, scrollers)

	env.Set(page(700), Viewport{Height: vh})
	env.Scroll()
	assert.Equal(t, "home", tr.Active())
}

func TestTrackerRemountDoesNotLeak(t *testing.T) {
	env := NewSnapshotEnvironment(page(0), Viewport{Height: vh})
	tr := NewTracker(env)

	tr.Mount()
	unmount := tr.Mount()
	defer unmount()

	observers, scrollers := env.Registrations()
	assert.Equal(t, 3, observers)
	assert.Equal(t, 1, scrollers)
}

func TestTrackerGraceRetryAttachesLateSections(t *testing.T) {
	env := NewSnapshotEnvironment(nil, Viewport{Height: vh})
	changed := make(chan string, 4)
	tr := NewTracker(env,
		WithRetryDelay(50*time.Millisecond),
		WithOnChange(func(id string) { changed <- id }),
	)

	unmount := tr.Mount()
	defer unmount()
	assert.Equal(t, DefaultSectionID, tr.Active())

	env.Set(page(700), Viewport{Height: vh})

	select {
	case id := <-changed:
		assert.Equal(t, "about", id)
	case <-time.After(time.Second):
		t.Fatal("grace retry never recomputed")
	}

	observers, scrollers := env.Registrations()
	require.Equal(t, 3, observers)
	require.Equal(t, 1, scrollers)

	env.Set(page(1500), Viewport{Height: vh})
	env.Scroll()
	assert.Equal(t, "portfolio-showcase", tr.Active())
}

func TestTrackerUnmountCancelsGraceRetry(t *testing.T) {
	env := NewSnapshotEnvironment(nil, Viewport{Height: vh})
	tr := NewTracker(env, WithRetryDelay(10*time.Millisecond))

	unmount := tr.Mount()
	unmount()

	env.Set(page(700), Viewport{Height: vh})
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, DefaultSectionID, tr.Active())
	observers, scrollers := env.Registrations()
	assert.Zero(t, observers)
	assert.Zero(t, scrollers)
}

func TestTrackerRemountDuringGraceRetry(t *testing.T) {
	for i := 0; i < 50; i++ {
		env := NewSnapshotEnvironment(nil, Viewport{Height: vh})
		tr := NewTracker(env, WithRetryDelay(time.Millisecond))

		tr.Mount()
		env.Set(page(700), Viewport{Height: vh})
		time.Sleep(time.Millisecond)
		unmount := tr.Mount()

		// let any retry from the first mount run to completion
		time.Sleep(10 * time.Millisecond)

		observers, scrollers := env.Registrations()
		require.Equal(t, 3, observers, "iteration %d", i)
		require.Equal(t, 1, scrollers, "iteration %d", i)

		unmount()
		observers, scrollers = env.Registrations()
		require.Zero(t, observers)
		require.Zero(t, scrollers)
	}
}

func TestTrackerStaleUnmountKeepsNewerMount(t *testing.T) {
	env := NewSnapshotEnvironment(page(0), Viewport{Height: vh})
	tr := NewTracker(env)

	first := tr.Mount()
	second := tr.Mount()
	defer second()

	first()

	observers, scrollers := env.Registrations()
	assert.Equal(t, 3, observers)
	assert.Equal(t, 1, scrollers)
}
