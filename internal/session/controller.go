// Package session implements the swipe-deck session controller.
//
// A Controller owns one deck at a time together with the cursor, the liked
// list and the phase. It is single-owner and lock-free: shells serialize
// access themselves. Generation is the only asynchronous step and is split
// into Begin and Complete so a shell can run it off its event loop; every
// Begin hands out a Ticket and results carrying an older ticket are dropped.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pawsprefs/paws/internal/model"
)

// DefaultCatCount is the deck size used when none is configured
const DefaultCatCount = 10

// Generator deals a batch of profiles.
type Generator interface {
	Generate(ctx context.Context, count int) ([]model.CatProfile, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, count int) ([]model.CatProfile, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, count int) ([]model.CatProfile, error) {
	return f(ctx, count)
}

// Ticket tags one outstanding generation
type Ticket struct {
	Generation uint64
	Count      int
}

// Summary is the result of a finished session
type Summary struct {
	LikedCount int                `json:"likedCount"`
	Liked      []model.CatProfile `json:"liked"`
}

// Controller is the session state machine.
type Controller struct {
	gen    Generator
	count  int
	logger *slog.Logger

	phase      model.Phase
	deck       []model.CatProfile
	cursor     int
	liked      []model.CatProfile
	generation uint64
	err        error
}

// New creates a controller in the Loading phase. A negative count is
// treated as zero.
func New(gen Generator, count int, logger *slog.Logger) *Controller {
	if count < 0 {
		count = 0
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		gen:    gen,
		count:  count,
		logger: logger,
		phase:  model.PhaseLoading,
	}
}

// Start deals a fresh deck synchronously. It serves both the first load and
// every restart.
func (c *Controller) Start(ctx context.Context) error {
	t := c.Begin()
	if t.Count == 0 {
		return c.Complete(t, nil, nil)
	}
	deck, err := c.gen.Generate(ctx, t.Count)
	return c.Complete(t, deck, err)
}

// Begin resets the session to Loading and returns the ticket for the
// generation the caller must now run.
func (c *Controller) Begin() Ticket {
	c.generation++
	c.phase = model.PhaseLoading
	c.deck = nil
	c.cursor = 0
	c.liked = nil
	c.err = nil

	c.logger.Debug("session begin", "generation", c.generation, "count", c.count)
	return Ticket{Generation: c.generation, Count: c.count}
}

// Generate runs the generator for t. It touches no controller state and is
// safe to call from another goroutine while the owner keeps handling events.
func (c *Controller) Generate(ctx context.Context, t Ticket) ([]model.CatProfile, error) {
	if t.Count == 0 {
		return nil, nil
	}
	return c.gen.Generate(ctx, t.Count)
}

// Complete installs the result of the generation identified by t.
func (c *Controller) Complete(t Ticket, deck []model.CatProfile, err error) error {
	if t.Generation != c.generation {
		c.logger.Debug("stale generation dropped", "ticket", t.Generation, "current", c.generation)
		return ErrStaleGeneration
	}
	if c.phase != model.PhaseLoading {
		return ErrStaleGeneration
	}

	if err == nil && len(deck) != t.Count {
		err = fmt.Errorf("%w: got %d, want %d", ErrShortDeck, len(deck), t.Count)
	}
	if err != nil {
		c.err = err
		c.logger.Warn("deck generation failed", "generation", t.Generation, "error", err)
		return err
	}

	c.deck = append([]model.CatProfile(nil), deck...)
	c.cursor = 0
	if len(c.deck) == 0 {
		c.phase = model.PhaseFinished
	} else {
		c.phase = model.PhaseActive
	}
	c.logger.Info("deck dealt", "generation", t.Generation, "cards", len(c.deck))
	return nil
}

// CurrentCard returns the card under the cursor while Active.
func (c *Controller) CurrentCard() (model.CatProfile, bool) {
	if c.phase != model.PhaseActive {
		return model.CatProfile{}, false
	}
	return c.deck[c.cursor], true
}

// Apply records a decision for the current card and advances the cursor.
// Outside Active it returns ErrNotActive and changes nothing.
func (c *Controller) Apply(d model.Decision) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidDecision, d)
	}
	if c.phase != model.PhaseActive {
		return ErrNotActive
	}

	card := c.deck[c.cursor]
	if d == model.DecisionLike {
		c.liked = append(c.liked, card)
	}
	c.cursor++
	if c.cursor == len(c.deck) {
		c.phase = model.PhaseFinished
	}

	c.logger.Debug("decision applied", "decision", d, "cursor", c.cursor, "liked", len(c.liked))
	return nil
}

// Summary returns the liked cats once the deck is finished.
func (c *Controller) Summary() (Summary, error) {
	if c.phase != model.PhaseFinished {
		return Summary{}, ErrNotReady
	}
	return Summary{
		LikedCount: len(c.liked),
		Liked:      c.likedCopy(),
	}, nil
}

// Phase returns the current phase.
func (c *Controller) Phase() model.Phase { return c.phase }

// Cursor returns the number of decisions applied in this session.
func (c *Controller) Cursor() int { return c.cursor }

// Err returns the last generation failure while Loading.
func (c *Controller) Err() error { return c.err }

// Count returns the configured deck size.
func (c *Controller) Count() int { return c.count }

func (c *Controller) likedCopy() []model.CatProfile {
	out := make([]model.CatProfile, len(c.liked))
	copy(out, c.liked)
	return out
}
