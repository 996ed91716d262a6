package session

import "errors"

var (
	// ErrNotActive rejects decisions and card reads outside the Active phase.
	ErrNotActive = errors.New("session: no active card")

	// ErrNotReady is returned by Summary before the deck is finished.
	ErrNotReady = errors.New("session: summary not ready")

	// ErrInvalidDecision rejects anything other than Like or Skip.
	ErrInvalidDecision = errors.New("session: invalid decision")

	// ErrStaleGeneration marks a generation result superseded by a later start.
	ErrStaleGeneration = errors.New("session: stale generation discarded")

	// ErrShortDeck marks a generator result of the wrong length.
	ErrShortDeck = errors.New("session: generator returned wrong deck size")
)
