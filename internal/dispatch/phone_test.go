package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"formatted with country code", "+1 (678) 897-8571", "6788978571"},
		{"bare eleven digits", "16788978571", "6788978571"},
		{"ten digits untouched", "6788978571", "6788978571"},
		{"seven digits no padding", "8978571", "8978571"},
		{"dots and dashes", "678.897-8571", "6788978571"},
		{"overlong keeps last ten", "9916788978571", "6788978571"},
		{"eleven digits not starting with one", "26788978571", "6788978571"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.in))
		})
	}
}
