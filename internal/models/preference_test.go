package models

import "testing"

func TestNormalizeTabIndex(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"daily", 0, TabDaily},
		{"weekly", 1, TabWeekly},
		{"list", 2, TabList},
		{"negative falls back to daily", -1, TabDaily},
		{"past the last tab falls back to daily", 3, TabDaily},
		{"garbage value falls back to daily", 42, TabDaily},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTabIndex(tt.in); got != tt.want {
				t.Errorf("NormalizeTabIndex(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
