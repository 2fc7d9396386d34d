package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain name untouched", "report final.pdf", "report final.pdf"},
		{"markup stripped", `<script>alert(1)</script>notes.txt`, "notes.txt"},
		{"tags inside name removed", "a<b>b</b>.png", "ab.png"},
		{"surrounding whitespace trimmed", "  photo.png  ", "photo.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in))
		})
	}
}
