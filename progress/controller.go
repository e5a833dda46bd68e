// Package progress turns elapsed time into an eased transition fraction.
package progress

import (
	"sort"
	"strings"
	"time"

	"github.com/fogleman/ease"
)

// DefaultDuration is used when a transition does not configure one.
const DefaultDuration = 300 * time.Millisecond

// DefaultEasing names the curve used when none is configured.
const DefaultEasing = "in-out-cubic"

// Easing maps linear progress in [0,1] onto eased progress.
type Easing func(t float64) float64

var easings = map[string]Easing{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
}

// EasingByName looks up a curve. An empty name gives the default.
func EasingByName(name string) (Easing, bool) {
	if name == "" {
		name = DefaultEasing
	}
	e, ok := easings[strings.ToLower(name)]
	return e, ok
}

// EasingNames lists the known curves.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Controller advances one transition through time.
type Controller struct {
	duration time.Duration
	easing   Easing

	elapsed time.Duration
	moving  bool
}

// NewController creates a stopped controller. A nil easing is linear.
func NewController(duration time.Duration, easing Easing) *Controller {
	if easing == nil {
		easing = ease.Linear
	}
	return &Controller{duration: duration, easing: easing}
}

// Duration returns the configured duration.
func (c *Controller) Duration() time.Duration { return c.duration }

// Moving reports whether a transition is in progress.
func (c *Controller) Moving() bool { return c.moving }

// Start restarts the transition from the beginning.
func (c *Controller) Start() {
	c.elapsed = 0
	c.moving = true
}

// Stop halts the transition where it is.
func (c *Controller) Stop() {
	c.moving = false
}

// Advance moves time forward by dt and returns the eased fraction, clamped to
// [0,1], and whether the transition is still moving. The call that reaches
// the end returns t == 1 and moving == false.
func (c *Controller) Advance(dt time.Duration) (t float64, moving bool) {
	if !c.moving {
		return c.fraction(), false
	}
	c.elapsed += dt
	if c.elapsed >= c.duration {
		c.elapsed = c.duration
		c.moving = false
		return 1, false
	}
	return c.fraction(), true
}

func (c *Controller) fraction() float64 {
	if c.duration <= 0 {
		return 1
	}
	t := c.easing(float64(c.elapsed) / float64(c.duration))
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
