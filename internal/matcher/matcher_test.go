package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paris", "paris"},
		{"  A. Paris!  ", "a paris"},
		{"New-York, USA", "newyork usa"},
		{"snake_case stays", "snake_case stays"},
		{"¿Qué?", "qu"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"A. Paris!", "  Hello,   World  ", "42 (answer)", "Ünïcödé…", "\tTabs\n"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestStripLabel(t *testing.T) {
	assert.Equal(t, "London", StripLabel("B. London"))
	assert.Equal(t, "London", StripLabel("b.London"))
	assert.Equal(t, "E. London", StripLabel("E. London"))
	assert.Equal(t, "B London", StripLabel("B London"))
	assert.Equal(t, "Paris", StripLabel("  Paris "))
}

func TestMatch_CaseAndPunctuationInsensitive(t *testing.T) {
	idx, ok := Match("A. Paris!", []string{"paris"})
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatch_LabelIgnored(t *testing.T) {
	idx, ok := Match("B. London", []string{"London", "Paris"})
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatch_UnstrippedFormAlsoCompared(t *testing.T) {
	idx, ok := Match("A. Lincoln", []string{"Washington", "A. Lincoln"})
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestMatch_NoMatch(t *testing.T) {
	idx, ok := Match("Rome", []string{"Paris", "London"})
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestMatch_NoOptions(t *testing.T) {
	_, ok := Match("Rome", nil)
	assert.False(t, ok)
}

func TestMatch_FirstWinsOnDuplicates(t *testing.T) {
	options := []string{"Berlin", "Paris.", "paris", "PARIS!"}

	idx, ok := Match("Paris", options)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []int{1, 2, 3}, Matches("Paris", options))
}

func TestMatch_NoPartialMatching(t *testing.T) {
	_, ok := Match("Paris, France", []string{"Paris"})
	assert.False(t, ok)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "A", Label(0))
	assert.Equal(t, "D", Label(3))
}
