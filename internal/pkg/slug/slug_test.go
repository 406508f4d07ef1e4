package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Widget", "widget"},
		{"spaces", "Large Widget", "large-widget"},
		{"punctuation run", "Widget -- (Deluxe)!", "widget-deluxe"},
		{"leading trailing", "  Widget  ", "widget"},
		{"digits", "Widget 2000", "widget-2000"},
		{"unicode stripped", "Café Crème", "caf-cr-me"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Make(tc.in))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{"Large Widget", "a--b", "Widget 2000!", "Déjà Vu", "--x--"}
	for _, in := range inputs {
		once := Make(in)
		assert.Equal(t, once, Make(once), "slug of %q not stable", in)
	}
}

func TestMakeAlphabet(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{"Large Widget", "  A/B Test  ", "100% Cotton Shirt", "x"}
	for _, in := range inputs {
		got := Make(in)
		assert.Regexp(t, valid, got, "slug of %q", in)
	}
}
