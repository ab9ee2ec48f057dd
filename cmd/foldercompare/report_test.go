package main

import "testing"

func TestPercentageFormatting(t *testing.T) {
	cases := []struct {
		current, total int
		want            string
	}{
		{0, 0, "100.0%"},
		{5, 10, "50.0%"},
		{1, 3, "33.3%"},
		{10, 10, "100.0%"},
	}
	for _, c := range cases {
		if got := percentage(c.current, c.total); got != c.want {
			t.Errorf("percentage(%d, %d) = %q, want %q", c.current, c.total, got, c.want)
		}
	}
}
