package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "alias return", input: "Return", want: KeyEnter},
		{name: "ctrl alias", input: "CTRL", want: KeyControl},
		{name: "super maps to command", input: "super", want: KeyCommand},
		{name: "letter lower-cased", input: "A", want: "a"},
		{name: "digit", input: "7", want: "7"},
		{name: "punctuation", input: "/", want: "/"},
		{name: "function key", input: "F12", want: "f12"},
		{name: "literal space", input: " ", want: KeySpace},
		{name: "f25 rejected", input: "f25", wantErr: true},
		{name: "unknown name", input: "hyperdrive", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsModifier(t *testing.T) {
	assert.True(t, IsModifier(KeyShift))
	assert.True(t, IsModifier(KeyCommand))
	assert.False(t, IsModifier("a"))
	assert.False(t, IsModifier(KeyEnter))
}

func TestFailAppendsUpstreamError(t *testing.T) {
	res := Fail("Failed to move mouse", assert.AnError)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Failed to move mouse")
	assert.Contains(t, res.Message, assert.AnError.Error())
	assert.Nil(t, res.Data)
}

func TestResultImage(t *testing.T) {
	res := Ok("captured", nil)
	_, ok := res.Image()
	assert.False(t, ok)

	res.Content = []ContentItem{{Type: ContentKindImage, Data: "abc", MimeType: "image/png"}}
	img, ok := res.Image()
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MimeType)
}
