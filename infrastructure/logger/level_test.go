package logger

import "testing"

func TestLevelFromString(t *testing.T) {
	// Every supported name parses, and parsing is the inverse of String
	// for the line tags.
	for _, name := range SupportedLevels() {
		level, ok := LevelFromString(name)
		if !ok {
			t.Fatalf("%q did not parse as a level", name)
		}
		roundTrip, ok := LevelFromString(level.String())
		if !ok || roundTrip != level {
			t.Fatalf("%q: tag %q did not parse back to the same level", name, level.String())
		}
	}

	if level, ok := LevelFromString("WARN"); !ok || level != LevelWarn {
		t.Fatalf("expected WARN to parse as LevelWarn, instead found: (%s, %t)", level, ok)
	}

	if _, ok := LevelFromString("noisy"); ok {
		t.Fatal("expected an unknown name not to parse")
	}
}

func TestLevelString(t *testing.T) {
	if LevelTrace.String() != "TRC" {
		t.Fatalf("expected TRC, instead found: %s", LevelTrace.String())
	}
	if Level(100).String() != "OFF" {
		t.Fatalf("expected an out-of-range level to stringify as OFF, instead found: %s",
			Level(100).String())
	}
}
