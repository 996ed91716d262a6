package tui

import "github.com/pawsprefs/paws/internal/model"

// ResolveGesture turns a horizontal drag distance into a decision. Drags
// shorter than threshold cells resolve to DecisionNone and the card springs
// back.
func ResolveGesture(dx, threshold int) model.Decision {
	if threshold < 1 {
		threshold = 1
	}
	switch {
	case dx >= threshold:
		return model.DecisionLike
	case dx <= -threshold:
		return model.DecisionSkip
	default:
		return model.DecisionNone
	}
}

// dragState tracks an in-progress mouse drag on the card
type dragState struct {
	active bool
	startX int
	dx     int
}

func (d *dragState) press(x int) {
	d.active = true
	d.startX = x
	d.dx = 0
}

func (d *dragState) move(x int) {
	if d.active {
		d.dx = x - d.startX
	}
}

// release ends the drag and returns its distance.
func (d *dragState) release(x int) int {
	d.move(x)
	dx := d.dx
	*d = dragState{}
	return dx
}
