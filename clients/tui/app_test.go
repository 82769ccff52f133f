package tui

import (
	"strings"
	"testing"
	"time"
)

func TestGreeting(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{8, "Good morning"},
		{13, "Good afternoon"},
		{20, "Good evening"},
	}
	for _, tc := range cases {
		now := time.Date(2026, 8, 23, tc.hour, 0, 0, 0, time.UTC)
		if got := greeting(now); !strings.HasPrefix(got, tc.want) {
			t.Errorf("greeting at %d:00 = %q, want prefix %q", tc.hour, got, tc.want)
		}
	}
}
