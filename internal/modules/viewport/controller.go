// Package viewport owns the chart's render dimensions and the pointer-drag
// state machine that resizes them. The controller is the only writer of
// the viewport; the chart renderer only reads it.
package viewport

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/botboard/internal/events"
)

// Size is the chart render area in pixels. While AutoWidth is set, Width
// holds the fallback pixel width the renderer should use; the first
// width-affecting drag turns AutoWidth off.
type Size struct {
	Height    float64 `json:"height"`
	Width     float64 `json:"width"`
	AutoWidth bool    `json:"auto_width"`
}

// Handle names a resize affordance. Bottom resizes height, right resizes
// width, corner resizes both.
type Handle string

const (
	HandleBottom Handle = "bottom"
	HandleRight  Handle = "right"
	HandleCorner Handle = "corner"
)

// ParseHandle maps a wire string to a Handle
func ParseHandle(s string) (Handle, error) {
	switch Handle(s) {
	case HandleBottom, HandleRight, HandleCorner:
		return Handle(s), nil
	default:
		return "", fmt.Errorf("unknown resize handle: %q", s)
	}
}

func (h Handle) affectsHeight() bool { return h == HandleBottom || h == HandleCorner }
func (h Handle) affectsWidth() bool  { return h == HandleRight || h == HandleCorner }

// Bounds are the clamp limits for drag resizing
type Bounds struct {
	MinHeight float64
	MaxHeight float64
	MinWidth  float64
}

// gestureTimeout force-commits a drag that never saw its pointer-up
// (alt-tab, window loss). Reset on every pointer-move.
const gestureTimeout = 15 * time.Second

// gesture is the transient state of one active drag. It owns the watchdog
// timer as an explicit resource: acquired on pointer-down, released on
// every exit path (pointer-up, blur, watchdog fire, controller close).
type gesture struct {
	handle   Handle
	anchorX  float64
	anchorY  float64
	start    Size
	watchdog *time.Timer
}

// Controller is the resize state machine: Idle when gesture is nil,
// Dragging otherwise. Safe for concurrent use; a render pass reading
// Size() mid-drag simply sees the current (already clamped) dimensions.
type Controller struct {
	mu       sync.Mutex
	bounds   Bounds
	size     Size
	gesture  *gesture
	closed   bool
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewController creates a controller with the given bounds and initial
// committed size
func NewController(bounds Bounds, initial Size, eventBus *events.Bus, log zerolog.Logger) *Controller {
	return &Controller{
		bounds:   bounds,
		size:     initial,
		eventBus: eventBus,
		log:      log.With().Str("service", "viewport").Logger(),
	}
}

// Size returns the current dimensions, mid-drag values included
func (c *Controller) Size() Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Dragging reports whether a gesture is active
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesture != nil
}

// PointerDown enters the Dragging state, recording the anchor position
// and the size at gesture start. A second pointer-down while a gesture is
// active is rejected; a stuck gesture is recovered by the watchdog or
// Blur, not by new downs.
func (c *Controller) PointerDown(handle Handle, x, y float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("viewport controller is closed")
	}
	if c.gesture != nil {
		return fmt.Errorf("gesture already active on handle %s", c.gesture.handle)
	}

	g := &gesture{
		handle:  handle,
		anchorX: x,
		anchorY: y,
		start:   c.size,
	}
	g.watchdog = time.AfterFunc(gestureTimeout, func() {
		c.forceCommit(g, "watchdog")
	})
	c.gesture = g

	c.log.Debug().Str("handle", string(handle)).Float64("x", x).Float64("y", y).Msg("Gesture started")
	return nil
}

// PointerMove updates the live size from the pointer delta. Only the axis
// owned by the active handle changes; the other axis is left untouched.
// Returns an error when no gesture is active.
func (c *Controller) PointerMove(x, y float64) (Size, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := c.gesture
	if g == nil {
		return c.size, fmt.Errorf("no active gesture")
	}

	if g.handle.affectsHeight() {
		c.size.Height = clamp(g.start.Height+(y-g.anchorY), c.bounds.MinHeight, c.bounds.MaxHeight)
	}
	if g.handle.affectsWidth() {
		w := g.start.Width + (x - g.anchorX)
		if w < c.bounds.MinWidth {
			w = c.bounds.MinWidth
		}
		c.size.Width = w
		c.size.AutoWidth = false
	}

	g.watchdog.Reset(gestureTimeout)

	size := c.size
	c.publish(size, false)
	return size, nil
}

// PointerUp leaves the Dragging state, committing the current (already
// clamped) dimensions. There is no cancel gesture: releasing the pointer
// always commits. A pointer-up with no active gesture is a no-op.
func (c *Controller) PointerUp() Size {
	c.mu.Lock()
	size, committed := c.commitLocked()
	c.mu.Unlock()

	if committed {
		c.publish(size, true)
		c.log.Debug().Float64("height", size.Height).Float64("width", size.Width).Msg("Gesture committed")
	}
	return size
}

// Blur force-commits any active gesture. Hook this to window-blur so a
// drag whose pointer-up was lost does not stay stuck until the watchdog.
func (c *Controller) Blur() {
	c.mu.Lock()
	size, committed := c.commitLocked()
	c.mu.Unlock()

	if committed {
		c.publish(size, true)
		c.log.Debug().Msg("Gesture committed on blur")
	}
}

// Close releases any active gesture and rejects further downs. Call on
// teardown so gesture state never leaks into a future session.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	size, committed := c.commitLocked()
	c.mu.Unlock()

	if committed {
		c.publish(size, true)
	}
}

// forceCommit is the watchdog path: commit only if the given gesture is
// still the active one (a newer gesture keeps its own watchdog).
func (c *Controller) forceCommit(g *gesture, reason string) {
	c.mu.Lock()
	if c.gesture != g {
		c.mu.Unlock()
		return
	}
	size, committed := c.commitLocked()
	c.mu.Unlock()

	if committed {
		c.publish(size, true)
		c.log.Warn().Str("reason", reason).Msg("Gesture force-committed")
	}
}

// commitLocked finalizes the active gesture. Caller holds the lock.
func (c *Controller) commitLocked() (Size, bool) {
	g := c.gesture
	if g == nil {
		return c.size, false
	}
	g.watchdog.Stop()
	c.gesture = nil
	return c.size, true
}

func (c *Controller) publish(size Size, committed bool) {
	if c.eventBus == nil {
		return
	}
	c.eventBus.Publish(&events.ViewportChangedData{
		Height:    size.Height,
		Width:     size.Width,
		AutoWidth: size.AutoWidth,
		Committed: committed,
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
