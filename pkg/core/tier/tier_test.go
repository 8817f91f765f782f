package tier

import "testing"

func TestClassifyKnownRanges(t *testing.T) {
	tests := []struct {
		name string
		sic  int
		want int
	}{
		{"agriculture lower bound", 100, 0},
		{"mining", 999, 0},
		{"food manufacturing", 2000, 1},
		{"chemicals", 2850, 1},
		{"electronics", 3672, 2},
		{"instruments", 3841, 2},
		{"wholesale durable goods", 5065, 3},
		{"building materials retail", 5200, 4},
		{"grocery retail", 5411, 4},
		{"misc retail", 5945, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.sic); got != tt.want {
				t.Errorf("Classify(%d) = %d, want %d", tt.sic, got, tt.want)
			}
		})
	}
}

// Codes 3000-3599 sit inside both [2800,3600)->1 and [3000,3600)->3.
// The earlier declaration must win.
func TestClassifyOverlapPrecedence(t *testing.T) {
	for _, sic := range []int{3000, 3100, 3599} {
		if got := Classify(sic); got != 1 {
			t.Errorf("Classify(%d) = %d, want 1 (earlier range must win)", sic, got)
		}
	}
}

func TestClassifyFallback(t *testing.T) {
	for _, sic := range []int{0, 1, 99, 1000, 1999, 4500, 5800, 5899, 6000, 9999, -1, -350} {
		if got := Classify(sic); got != DefaultTier {
			t.Errorf("Classify(%d) = %d, want fallback %d", sic, got, DefaultTier)
		}
	}
}

// Classify must be total: every input returns a tier in [0,4].
func TestClassifyTotal(t *testing.T) {
	for sic := -10000; sic <= 10000; sic++ {
		got := Classify(sic)
		if got < 0 || got > 4 {
			t.Fatalf("Classify(%d) = %d, outside [0,4]", sic, got)
		}
	}
}
