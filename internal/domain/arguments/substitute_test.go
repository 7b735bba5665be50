package arguments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	values := map[string]string{"version_name": "1.0", "auth_player_name": "Steve"}

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"known", "${version_name}", "1.0"},
		{"unknown passes through", "${missing}", "${missing}"},
		{"plain", "--version", "--version"},
		{"embedded", "v${version_name}-${auth_player_name}", "v1.0-Steve"},
		{"mixed", "${version_name}${missing}", "1.0${missing}"},
		{"unterminated", "${version_name", "${version_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.token, values))
		})
	}
}

func TestExpandTemplate(t *testing.T) {
	template := strings.Fields("--version ${version_name} --unknown ${missing}")
	got := Expand(template, map[string]string{"version_name": "1.0"})

	assert.Equal(t, "--version 1.0 --unknown ${missing}", strings.Join(got, " "))
}

func TestWindowArgs(t *testing.T) {
	assert.Equal(t, []string{"--width", "800", "--height", "600"}, WindowArgs(Window{Width: 800, Height: 600}))
	assert.Equal(t, []string{"--width", "10", "--height", "0"}, WindowArgs(Window{Width: 10}))
	assert.Nil(t, WindowArgs(Window{Width: 5, Height: 600}))
	assert.Nil(t, WindowArgs(Window{}))
}
