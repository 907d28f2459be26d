package difficulty

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/emberchain/emberd/domain/consensus/ruleerrors"
)

func TestCompactToTarget(t *testing.T) {
	tests := []struct {
		compact    uint32
		expected   *uint256.Int
		isNegative bool
		isOverflow bool
	}{
		{0x00000000, uint256.NewInt(0), false, false},
		{0x00123456, uint256.NewInt(0), false, false},
		{0x01003456, uint256.NewInt(0), false, false},
		{0x01123456, uint256.NewInt(0x12), false, false},
		{0x02123456, uint256.NewInt(0x1234), false, false},
		{0x03123456, uint256.NewInt(0x123456), false, false},
		{0x04123456, uint256.NewInt(0x12345600), false, false},
		{0x05009234, uint256.NewInt(0x92340000), false, false},
		{0x20123456, new(uint256.Int).Lsh(uint256.NewInt(0x123456), 8*29), false, false},
		// Sign bit set with a non-zero mantissa.
		{0x01fedcba, uint256.NewInt(0x7e), true, false},
		{0x04923456, uint256.NewInt(0x12345600), true, false},
		// Sign bit set with a zero mantissa is not negative.
		{0x00800000, uint256.NewInt(0), false, false},
		// The mantissa no longer fits into 256 bits.
		{0xff123456, nil, false, true},
		{0x23123456, nil, false, true},
		{0x22123456, nil, false, true},
		// Just below the overflow thresholds.
		{0x22000001, new(uint256.Int).Lsh(uint256.NewInt(1), 8*31), false, false},
		{0x21000100, new(uint256.Int).Lsh(uint256.NewInt(0x100), 8*30), false, false},
	}

	for i, test := range tests {
		target, isNegative, isOverflow := CompactToTarget(test.compact)
		if isNegative != test.isNegative {
			t.Fatalf("%d: %08x: expected isNegative %t, instead found: %t",
				i, test.compact, test.isNegative, isNegative)
		}
		if isOverflow != test.isOverflow {
			t.Fatalf("%d: %08x: expected isOverflow %t, instead found: %t",
				i, test.compact, test.isOverflow, isOverflow)
		}
		if test.expected != nil && !target.Eq(test.expected) {
			t.Fatalf("%d: %08x: expected target %s, instead found: %s",
				i, test.compact, test.expected.Hex(), target.Hex())
		}
	}
}

func TestTargetToCompactRoundTrip(t *testing.T) {
	// Normalized compacts (minimal exponent, clear sign bit) survive a
	// decode-encode round trip unchanged.
	compacts := []uint32{
		0x01120000,
		0x02123400,
		0x03123456,
		0x04123456,
		0x1b00ffff,
		0x1d00ffff,
		0x20123456,
	}

	for i, compact := range compacts {
		target, isNegative, isOverflow := CompactToTarget(compact)
		if isNegative || isOverflow {
			t.Fatalf("%d: %08x unexpectedly negative or overflowing", i, compact)
		}
		result := TargetToCompact(target)
		if result != compact {
			t.Fatalf("%d: expected compact %08x, instead found: %08x", i, compact, result)
		}
	}
}

func TestTargetToCompactSignBitAvoidance(t *testing.T) {
	// A target whose top mantissa byte is >= 0x80 must take an extra
	// exponent step so the encoding is not mistaken for a negative number.
	target := uint256.NewInt(0x80)
	compact := TargetToCompact(target)
	if compact != 0x02008000 {
		t.Fatalf("expected compact 0x02008000, instead found: %08x", compact)
	}

	roundTrip, isNegative, _ := CompactToTarget(compact)
	if isNegative {
		t.Fatalf("%08x unexpectedly decodes as negative", compact)
	}
	if !roundTrip.Eq(target) {
		t.Fatalf("expected target %s, instead found: %s", target.Hex(), roundTrip.Hex())
	}
}

func TestCalcWeightedTarget(t *testing.T) {
	target, err := CalcWeightedTarget(0x03123456, 1)
	if err != nil {
		t.Fatalf("CalcWeightedTarget: %+v", err)
	}
	if !target.Eq(uint256.NewInt(0x123456)) {
		t.Fatalf("expected target 0x123456, instead found: %s", target.Hex())
	}

	target, err = CalcWeightedTarget(0x03123456, 1000)
	if err != nil {
		t.Fatalf("CalcWeightedTarget: %+v", err)
	}
	if !target.Eq(uint256.NewInt(0x123456 * 1000)) {
		t.Fatalf("expected target 0x123456*1000, instead found: %s", target.Hex())
	}
}

func TestCalcWeightedTargetWraparound(t *testing.T) {
	// 0x20010000 expands to 2^248. Multiplying by 256 crosses 2^256 and
	// must silently wrap to zero; chain history depends on truncation.
	target, err := CalcWeightedTarget(0x20010000, 256)
	if err != nil {
		t.Fatalf("CalcWeightedTarget: %+v", err)
	}
	if !target.IsZero() {
		t.Fatalf("expected a wrapped-to-zero target, instead found: %s", target.Hex())
	}
}

func TestCalcWeightedTargetBadBits(t *testing.T) {
	tests := []struct {
		name string
		bits uint32
	}{
		{"negative", 0x01fedcba},
		{"overflow", 0xff123456},
		{"zero", 0x00000000},
		{"zero mantissa", 0x04000000},
	}

	for _, test := range tests {
		_, err := CalcWeightedTarget(test.bits, 1)
		if !errors.Is(err, ruleerrors.ErrBadDifficultyBits) {
			t.Fatalf("%s (%08x): expected ErrBadDifficultyBits, instead found: %v",
				test.name, test.bits, err)
		}
	}
}

func TestGetDifficultyRatio(t *testing.T) {
	tests := []struct {
		bits     uint32
		expected float64
	}{
		{0x1d00ffff, 1.0},
		{0x1c00ffff, 256.0},
		{0x1e00ffff, 1.0 / 256.0},
		{0x1d0000ff, 257.0},
	}

	for i, test := range tests {
		result := GetDifficultyRatio(test.bits)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Fatalf("%d: %08x: expected ratio %f, instead found: %f",
				i, test.bits, test.expected, result)
		}
	}
}
