package profile

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/pawsprefs/paws/internal/model"
)

type fakeSource struct {
	refs []string
	err  error
}

func (f fakeSource) ImageRefs(ctx context.Context, n int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.refs != nil {
		return f.refs, nil
	}
	return URLSource{BaseURL: "http://cats.test"}.ImageRefs(ctx, n)
}

func TestGenerateBatchShape(t *testing.T) {
	gen, err := NewGenerator(URLSource{})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	for _, count := range []int{1, 3, 10, 64} {
		cats, err := gen.Generate(context.Background(), count)
		if err != nil {
			t.Fatalf("Generate(%d): %v", count, err)
		}
		if len(cats) != count {
			t.Fatalf("Generate(%d) returned %d profiles", count, len(cats))
		}
		for i, c := range cats {
			if c.Image == "" {
				t.Errorf("cat %d has empty image", i)
			}
			if !slices.Contains(Names, c.Name) {
				t.Errorf("cat %d name %q not in vocabulary", i, c.Name)
			}
			if !slices.Contains(Colors, c.Color) {
				t.Errorf("cat %d color %q not in vocabulary", i, c.Color)
			}
			if c.Gender != model.GenderMale && c.Gender != model.GenderFemale {
				t.Errorf("cat %d gender %q", i, c.Gender)
			}
		}
	}
}

func TestGenerateRejectsNonPositiveCount(t *testing.T) {
	gen := NewGeneratorWithRand(fakeSource{}, rand.New(rand.NewPCG(1, 2)))

	for _, count := range []int{0, -1} {
		cats, err := gen.Generate(context.Background(), count)
		if !errors.Is(err, ErrInvalidCount) {
			t.Errorf("Generate(%d) err = %v, want ErrInvalidCount", count, err)
		}
		if cats != nil {
			t.Errorf("Generate(%d) returned %d profiles", count, len(cats))
		}
	}
}

func TestGenerateDoesNotReuseBatches(t *testing.T) {
	gen := NewGeneratorWithRand(fakeSource{}, rand.New(rand.NewPCG(1, 2)))

	first, err := gen.Generate(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.Generate(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for _, c := range first {
		seen[c.Image] = true
	}
	for _, c := range second {
		if seen[c.Image] {
			t.Errorf("image %q reused across batches", c.Image)
		}
	}

	// Mutating one batch must not leak into the other.
	first[0].Name = "Changed"
	if second[0].Name == "Changed" {
		t.Error("batches share backing storage")
	}
}

func TestGenerateSourceFailure(t *testing.T) {
	boom := errors.New("host unreachable")
	gen := NewGeneratorWithRand(fakeSource{err: boom}, rand.New(rand.NewPCG(1, 2)))

	_, err := gen.Generate(context.Background(), 3)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped source error", err)
	}
}

func TestGenerateShortOrBlankRefs(t *testing.T) {
	tests := []struct {
		name string
		refs []string
	}{
		{"short batch", []string{"a", "b"}},
		{"blank ref", []string{"a", "", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGeneratorWithRand(fakeSource{refs: tt.refs}, rand.New(rand.NewPCG(1, 2)))
			if _, err := gen.Generate(context.Background(), 3); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGenerateCoversVocabulary(t *testing.T) {
	gen := NewGeneratorWithRand(fakeSource{}, rand.New(rand.NewPCG(7, 11)))

	cats, err := gen.Generate(context.Background(), 2000)
	if err != nil {
		t.Fatal(err)
	}

	names := map[string]bool{}
	genders := map[model.Gender]bool{}
	for _, c := range cats {
		names[c.Name] = true
		genders[c.Gender] = true
	}
	if len(names) != len(Names) {
		t.Errorf("saw %d of %d names", len(names), len(Names))
	}
	if len(genders) != 2 {
		t.Errorf("saw %d genders", len(genders))
	}
}
