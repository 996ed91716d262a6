package model

import "testing"

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in      string
		want    Decision
		wantErr bool
	}{
		{"like", DecisionLike, false},
		{"LIKE", DecisionLike, false},
		{" right ", DecisionLike, false},
		{"skip", DecisionSkip, false},
		{"left", DecisionSkip, false},
		{"nope", DecisionSkip, false},
		{"", DecisionNone, true},
		{"maybe", DecisionNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecision(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecision(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDecision(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPhaseMarshalText(t *testing.T) {
	for p, want := range map[Phase]string{
		PhaseLoading:  "loading",
		PhaseActive:   "active",
		PhaseFinished: "finished",
	} {
		b, err := p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		if string(b) != want {
			t.Errorf("MarshalText(%d) = %q, want %q", p, b, want)
		}
	}
}

func TestDecisionValid(t *testing.T) {
	if DecisionNone.Valid() {
		t.Error("DecisionNone should not be valid")
	}
	if !DecisionLike.Valid() || !DecisionSkip.Valid() {
		t.Error("like and skip should be valid")
	}
}
