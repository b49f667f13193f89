package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Pro Duct!":               "pro-duct",
		"Écran Géant":             "ecran-geant",
		"  iPhone 12 -- Pro Max ": "iphone-12-pro-max",
		"Galaxy_S21/Ultra":        "galaxy-s21-ultra",
		"Ça coûte 999€":           "ca-coute-999",
		"!!!":                     "",
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "Make(%q)", in)
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	once := Make("Nokia 3310 (Réédition)")
	assert.Equal(t, once, Make(once))
}
