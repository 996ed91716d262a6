// Package profile deals batches of random cat profiles.
//
// Attributes are drawn uniformly, with replacement, from the fixed
// vocabularies in vocab.go. Image references come from an ImageSource.
package profile

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/pawsprefs/paws/internal/model"
)

// ErrInvalidCount is returned when a batch of fewer than one profile is requested.
var ErrInvalidCount = errors.New("profile: count must be positive")

// Generator deals profile batches. It is safe for concurrent use.
type Generator struct {
	src ImageSource

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from crypto/rand.
func NewGenerator(src ImageSource) (*Generator, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	seed1 := binary.LittleEndian.Uint64(b[:8])
	seed2 := binary.LittleEndian.Uint64(b[8:])
	return NewGeneratorWithRand(src, rand.New(rand.NewPCG(seed1, seed2))), nil
}

// NewGeneratorWithRand creates a generator driven by rng. Tests use this for
// reproducible batches.
func NewGeneratorWithRand(src ImageSource, rng *rand.Rand) *Generator {
	return &Generator{src: src, rng: rng}
}

// Generate returns exactly count freshly sampled profiles.
func (g *Generator) Generate(ctx context.Context, count int) ([]model.CatProfile, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	refs, err := g.src.ImageRefs(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("generate batch: %w", err)
	}
	if len(refs) != count {
		return nil, fmt.Errorf("generate batch: image source returned %d refs, want %d", len(refs), count)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cats := make([]model.CatProfile, count)
	for i, ref := range refs {
		if ref == "" {
			return nil, fmt.Errorf("generate batch: empty image reference at %d", i)
		}
		cats[i] = model.CatProfile{
			Image:  ref,
			Name:   Names[g.rng.IntN(len(Names))],
			Color:  Colors[g.rng.IntN(len(Colors))],
			Gender: Genders[g.rng.IntN(len(Genders))],
		}
	}
	return cats, nil
}
