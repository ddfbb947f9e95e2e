package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Version
	}{
		{"1.2.5", Version{Major: 1, Minor: 2, Patch: 5}},
		{"1.2", Version{Major: 1, Minor: 2}},
		{"1", Version{Major: 1}},
		{"1.19-SNAPSHOT", Version{Major: 1, Minor: 19, Pre: "SNAPSHOT"}},
		{"1.20.2-pre2", Version{Major: 1, Minor: 20, Patch: 2, Pre: "pre2"}},
		{"1.20.2pre", Version{Major: 1, Minor: 20, Patch: 2, Pre: "pre"}},
		{"", Version{}},
		{"garbage", Version{Pre: "garbage"}},
		{"  1.2.5 ", Version{Major: 1, Minor: 2, Patch: 5}},
		{"1..2", Version{Major: 1, Minor: 2}},
		{"10.0.0", Version{Major: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int // sign only
	}{
		{"major wins", "2.0.0", "1.9.9", 1},
		{"minor wins", "1.3.0", "1.2.9", 1},
		{"patch wins", "1.2.5", "1.2.4", 1},
		{"equal", "1.2.5", "1.2.5", 0},
		{"missing components equal zero", "1.2", "1.2.0", 0},
		{"release outranks pre-release", "1.2.0", "1.2-SNAPSHOT", 1},
		{"pre-release below release", "1.2-SNAPSHOT", "1.2.0", -1},
		{"opaque tags compare equal", "1.2-SNAPSHOT", "1.2-pre1", 0},
		{"malformed degrades to zero", "garbage", "0.0.0-x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(Parse(tt.a), Parse(tt.b))
			switch {
			case tt.want > 0:
				assert.Positive(t, got)
			case tt.want < 0:
				assert.Negative(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}

func TestGreaterThan(t *testing.T) {
	assert.True(t, Parse("1.2.5").GreaterThan(Parse("1.2.4")))
	assert.False(t, Parse("1.2.4").GreaterThan(Parse("1.2.5")))
	assert.False(t, Parse("1.2.5").GreaterThan(Parse("1.2.5")))
}

func TestSameMinorLine(t *testing.T) {
	assert.True(t, SameMinorLine(Parse("1.2"), Parse("1.2.5")))
	assert.True(t, SameMinorLine(Parse("1.19-SNAPSHOT"), Parse("1.19.4")))
	assert.False(t, SameMinorLine(Parse("1.2"), Parse("1.3")))
	assert.False(t, SameMinorLine(Parse("1.2"), Parse("2.2")))
}
