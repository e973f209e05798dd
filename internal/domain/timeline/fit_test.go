package timeline

import (
	"testing"
	"time"
)

func TestFit_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		native    time.Duration
		required  time.Duration
		wantLoops int
	}{
		{"equal passes through", 10 * time.Second, 10 * time.Second, 1},
		{"longer trims", 20 * time.Second, 10 * time.Second, 1},
		{"slightly shorter loops once more", 9900 * time.Millisecond, 10 * time.Second, 2},
		{"much shorter forces several loops", 3 * time.Second, 10 * time.Second, 4},
		{"exact divisor still over-loops before trim", 5 * time.Second, 10 * time.Second, 3},
		{"zero native is a single pass", 0, 10 * time.Second, 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			plan := Fit(tt.native, tt.required)
			if plan.Loops != tt.wantLoops {
				t.Fatalf("loops = %d, want %d", plan.Loops, tt.wantLoops)
			}
			if plan.ClipTo != tt.required {
				t.Fatalf("clipTo = %s, want exactly %s", plan.ClipTo, tt.required)
			}
			// The looped length must cover the slot so the trim is exact.
			if tt.native > 0 && time.Duration(plan.Loops)*tt.native < tt.required {
				t.Fatalf("%d loops of %s do not cover %s", plan.Loops, tt.native, tt.required)
			}
		})
	}
}

func TestSlotDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target time.Duration
		n      int
		want   time.Duration
	}{
		{"even split", 30 * time.Second, 5, 6 * time.Second},
		{"floored at six seconds", 10 * time.Second, 5, 6 * time.Second},
		{"long target", 60 * time.Second, 4, 15 * time.Second},
		{"zero segments", 30 * time.Second, 0, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SlotDuration(tt.target, tt.n); got != tt.want {
				t.Fatalf("SlotDuration(%s, %d) = %s, want %s", tt.target, tt.n, got, tt.want)
			}
		})
	}
}
