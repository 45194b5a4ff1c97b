package layout

import (
	"strings"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{10000, "$10,000"},
		{1234567, "$1,234,567"},
		{-2500, "-$2,500"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Practice", HeaderStats{XP: 120, Balance: 10450, Streak: 3}, 100)
	for _, want := range []string{"StockMaster", "Practice", "120 XP", "$10,450", "3 day streak"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}

	bare := RenderHeader("Welcome", HeaderStats{}, 100)
	if strings.Contains(bare, "XP") {
		t.Error("zero stats should be hidden")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 24) || !IsTooSmall(80, 23) || IsTooSmall(80, 24) {
		t.Error("minimum size is 80x24")
	}
}
