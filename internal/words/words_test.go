package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONObject(t *testing.T) {
	d, err := Load(strings.NewReader(`{"ship": 1, "Test": true, "boat": 0, "n0pe": 1}`))
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	assert.True(t, d.Contains("SHIP"))
	assert.True(t, d.Contains("test"))
	// Membership is by key; the marker value is not inspected.
	assert.True(t, d.Contains("boat"))
	assert.False(t, d.Contains("n0pe"))
}

func TestLoadLineList(t *testing.T) {
	d, err := Load(strings.NewReader("# comment\nship\n\n  Word  \ncat\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.True(t, d.Contains("word"))
}

func TestLoadBadJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"ship": `))
	assert.Error(t, err)
}

func TestNilAndEmptyDictionaries(t *testing.T) {
	var d *Dictionary
	assert.False(t, d.Contains("ship"))
	assert.Zero(t, d.Len())
	assert.False(t, Empty().Contains("ship"))
	assert.False(t, (&Dictionary{}).Contains("ship"))
}

func TestLoadConfiguredFallsBackToEmpty(t *testing.T) {
	d := loadConfigured(filepath.Join(t.TempDir(), "missing.json"))
	require.NotNil(t, d)
	assert.Zero(t, d.Len())
}

func TestLoadConfiguredFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quiz":1}`), 0o644))
	d := loadConfigured(path)
	assert.True(t, d.Contains("QUIZ"))
}

func TestEmbeddedDefault(t *testing.T) {
	d := loadConfigured("")
	assert.Greater(t, d.Len(), 500)
	assert.True(t, d.Contains("ship"))
	assert.True(t, d.Contains("test"))
}

func TestScore(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"TEST", 16},
		{"test", 16},
		{"SHIP", (1 + 4 + 1 + 3) * 4},
		{"QUIZ", (10 + 1 + 1 + 10) * 4},
		{"JAZZY", (8 + 1 + 10 + 10 + 4) * 5},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.word))
		})
	}
}

func TestLetterValueUnknownRune(t *testing.T) {
	assert.Zero(t, LetterValue('?'))
	assert.Equal(t, 10, LetterValue('z'))
}
