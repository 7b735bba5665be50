package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	windows := Environment{Platform: Windows, Arch: "x86_64"}
	linux := Environment{Platform: Linux, Arch: "x86_64"}

	tests := []struct {
		name     string
		rules    []Rule
		env      Environment
		expected bool
	}{
		{
			name:     "empty rules always match",
			rules:    nil,
			env:      windows,
			expected: true,
		},
		{
			name:     "deny windows on windows",
			rules:    []Rule{{Action: "deny", OS: &OSRule{Name: Windows}}},
			env:      windows,
			expected: false,
		},
		{
			name:     "deny windows on linux defaults to include",
			rules:    []Rule{{Action: Disallow, OS: &OSRule{Name: Windows}}},
			env:      linux,
			expected: true,
		},
		{
			name: "allow all then disallow osx",
			rules: []Rule{
				{Action: Allow},
				{Action: Disallow, OS: &OSRule{Name: MacOSX}},
			},
			env:      Environment{Platform: MacOSX, Arch: "arm64"},
			expected: false,
		},
		{
			name: "last matching rule wins",
			rules: []Rule{
				{Action: Disallow},
				{Action: Allow, OS: &OSRule{Name: Linux}},
			},
			env:      linux,
			expected: true,
		},
		{
			name:     "arch predicate must also hold",
			rules:    []Rule{{Action: Disallow, OS: &OSRule{Name: Linux, Arch: "x86"}}},
			env:      linux,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.rules, tt.env))
		})
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, MacOSX, Parse("darwin"))
	assert.Equal(t, MacOSX, Parse("osx"))
	assert.Equal(t, Windows, Parse("Windows"))
	assert.Equal(t, Linux, Parse("linux"))
	assert.Equal(t, Unknown, Parse("plan9"))
}

func TestBits(t *testing.T) {
	assert.Equal(t, "64", Environment{Arch: "x86_64"}.Bits())
	assert.Equal(t, "64", Environment{Arch: "arm64"}.Bits())
	assert.Equal(t, "32", Environment{Arch: "x86"}.Bits())
}
