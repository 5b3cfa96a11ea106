package depth

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		messages      int
		hasReflection bool
		reflectionLen int
		want          Level
	}{
		{"fluency", 11, true, 51, Fluency},
		{"judgment", 7, true, 51, Judgment},
		{"structure", 4, true, 10, Structure},
		{"surface", 1, false, 0, Surface},

		// Boundaries on both sides.
		{"exactly 10 messages is not fluency", 10, true, 51, Judgment},
		{"exactly 6 messages is not judgment", 6, true, 51, Structure},
		{"exactly 3 messages is not structure", 3, true, 100, Surface},
		{"exactly 50 reflection chars is not enough", 11, true, 50, Structure},
		{"51 reflection chars crosses the line", 7, true, 51, Judgment},

		// Long chat with a thin reflection stays at structure.
		{"deep chat shallow reflection", 11, true, 25, Structure},
		// Reflection flag without text carries nothing.
		{"no reflection text", 11, false, 0, Structure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.messages, tt.hasReflection, tt.reflectionLen)
			if got != tt.want {
				t.Errorf("Classify(%d, %v, %d) = %q, want %q",
					tt.messages, tt.hasReflection, tt.reflectionLen, got, tt.want)
			}
		})
	}
}

func TestLevelOrdering(t *testing.T) {
	levels := AllLevels()
	for i := 1; i < len(levels); i++ {
		if !levels[i].Above(levels[i-1]) {
			t.Errorf("%q should rank above %q", levels[i], levels[i-1])
		}
	}

	if Level("garbage").Above(Surface) {
		t.Error("unknown level should never outrank surface")
	}
}
