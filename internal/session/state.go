package session

import "github.com/pawsprefs/paws/internal/model"

// State is a read-only view of a controller for rendering.
type State struct {
	Phase      model.Phase        `json:"phase"`
	Cursor     int                `json:"cursor"`
	DeckSize   int                `json:"deckSize"`
	Current    *model.CatProfile  `json:"current,omitempty"`
	LikedCount int                `json:"likedCount"`
	Liked      []model.CatProfile `json:"liked"`
	Generation uint64             `json:"generation"`
	Error      string             `json:"error,omitempty"`
}

// Snapshot copies the controller state.
func (c *Controller) Snapshot() State {
	s := State{
		Phase:      c.phase,
		Cursor:     c.cursor,
		DeckSize:   len(c.deck),
		LikedCount: len(c.liked),
		Liked:      c.likedCopy(),
		Generation: c.generation,
	}
	if card, ok := c.CurrentCard(); ok {
		s.Current = &card
	}
	if c.err != nil {
		s.Error = c.err.Error()
	}
	return s
}

// Remaining returns the number of undecided cards.
func (s State) Remaining() int {
	return s.DeckSize - s.Cursor
}
