package completion

import (
	"math"
	"testing"
	"time"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		mode    Mode
		latency time.Duration
		want    float64
	}{
		{
			name: "empty scores zero",
			text: "",
			mode: ModeInline,
			want: 0.0,
		},
		{
			name: "trivially short scores zero",
			text: "x = 1",
			mode: ModeInline,
			want: 0.0,
		},
		{
			name: "whitespace padding does not rescue a short result",
			text: "   ab   ",
			mode: ModeInline,
			want: 0.0,
		},
		{
			name: "base confidence",
			text: "return a+b",
			mode: ModeInline,
			want: 0.8,
		},
		{
			name: "longer completion earns a bump",
			text: "return first_value + second_value",
			mode: ModeMenu,
			want: 0.9,
		},
		{
			name:    "slow inline completion is penalised",
			text:    "return first_value + second_value",
			mode:    ModeInline,
			latency: 3 * time.Second,
			want:    0.8,
		},
		{
			name:    "slow menu completion is not penalised",
			text:    "return first_value + second_value",
			mode:    ModeMenu,
			latency: 3 * time.Second,
			want:    0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.text, tt.mode, tt.latency); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%q, %s, %v) = %v, want %v", tt.text, tt.mode, tt.latency, got, tt.want)
			}
		})
	}
}

func TestScoreNeverExceedsCap(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	if got := Score(string(long), ModeMenu, 0); got > 0.95 {
		t.Errorf("Score() = %v, want <= 0.95", got)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("inline") != ModeInline {
		t.Error(`ParseMode("inline") != ModeInline`)
	}
	if ParseMode("menu") != ModeMenu {
		t.Error(`ParseMode("menu") != ModeMenu`)
	}
	if ParseMode("") != ModeMenu {
		t.Error("absent mode should default to menu")
	}
	if ParseMode("nonsense") != ModeMenu {
		t.Error("unknown mode should default to menu")
	}
}
