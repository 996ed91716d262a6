package model

import (
	"fmt"
	"strings"
)

// Decision is the outcome of a resolved swipe gesture
type Decision int

const (
	DecisionNone Decision = iota // gesture did not resolve
	DecisionSkip                 // left swipe
	DecisionLike                 // right swipe
)

func (d Decision) String() string {
	switch d {
	case DecisionSkip:
		return "skip"
	case DecisionLike:
		return "like"
	default:
		return "none"
	}
}

// Valid reports whether d is Like or Skip.
func (d Decision) Valid() bool {
	return d == DecisionSkip || d == DecisionLike
}

// ParseDecision accepts like/skip and the swipe directions right/left.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "like", "right":
		return DecisionLike, nil
	case "skip", "left", "nope":
		return DecisionSkip, nil
	}
	return DecisionNone, fmt.Errorf("unknown decision %q", s)
}

// Phase is the coarse state of a session
type Phase int

const (
	PhaseLoading  Phase = iota // no deck dealt yet for the current generation
	PhaseActive                // a current card exists
	PhaseFinished              // every card has been decided
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "loading"
	}
}

// MarshalText renders the phase as its lowercase name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
