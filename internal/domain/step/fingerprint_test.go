package step

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_KnownVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"config", "debug: true\n", "f867fe538171ee003592210869c10c6cec11e4e479b1c90c78738c1678e5786d"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Fingerprint(tt.content))
		})
	}
}

func TestFingerprint_Stable(t *testing.T) {
	t.Parallel()

	content := "line one\nit's \"quoted\"\n\xffbinary\x00"
	first := Fingerprint(content)
	second := Fingerprint(content)

	assert.Equal(t, first, second)
	assert.Len(t, first, FingerprintLength)
	assert.Equal(t, strings.ToLower(first), first)
}

func TestFingerprint_Distinct(t *testing.T) {
	t.Parallel()

	inputs := []string{"", " ", "\n", "debug: true\n", "debug: true", "debug: false\n", "é", "e"}
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		fp := Fingerprint(in)
		if prev, ok := seen[fp]; ok {
			t.Fatalf("Fingerprint(%q) collides with Fingerprint(%q)", in, prev)
		}
		seen[fp] = in
	}
}
