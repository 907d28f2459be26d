package ruleerrors

import (
	"testing"

	"github.com/pkg/errors"
)

func TestErrorfMatchesSentinel(t *testing.T) {
	err := Errorf(ErrKernelTargetMiss, "hash %s exceeds target", "deadbeef")

	if !errors.Is(err, ErrKernelTargetMiss) {
		t.Fatal("expected the formatted error to match its sentinel")
	}
	if errors.Is(err, ErrMalformedCoinstake) {
		t.Fatal("expected the formatted error not to match an unrelated sentinel")
	}
}

func TestErrorfKeepsDetail(t *testing.T) {
	err := Errorf(ErrStalePrevout, "spent at height %d", 42)
	expected := "ErrStalePrevout: spent at height 42"
	if err.Error() != expected {
		t.Fatalf("expected message %q, instead found: %q", expected, err.Error())
	}
}

func TestPenaltyOf(t *testing.T) {
	tests := []struct {
		err      error
		expected MisbehaviorPenalty
	}{
		{Errorf(ErrMalformedCoinstake, "x"), PenaltySevere},
		{Errorf(ErrPrevoutNotFound, "x"), PenaltyModerate},
		{Errorf(ErrKernelTargetMiss, "x"), PenaltyLight},
		{Errorf(ErrBadDifficultyBits, "x"), PenaltyNone},
		{errors.New("plain error"), PenaltyNone},
		// Wrapping must not strip the penalty.
		{errors.Wrap(Errorf(ErrStalePrevout, "x"), "while connecting block"), PenaltySevere},
	}

	for i, test := range tests {
		if penalty := PenaltyOf(test.err); penalty != test.expected {
			t.Fatalf("%d: expected penalty %d, instead found: %d", i, test.expected, penalty)
		}
	}
}
