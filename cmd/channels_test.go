package cmd

import (
	"testing"
	"unicode/utf8"
)

func TestTruncStr(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"a much longer name", 10, "a much ..."},
		{"Новостной канал", 10, "Новостн..."},
	}
	for _, c := range cases {
		got := truncStr(c.in, c.max)
		if got != c.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncStr(%q, %d) produced invalid UTF-8", c.in, c.max)
		}
	}
}
