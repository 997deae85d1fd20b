package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStars(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{0, 0},
		{999, 0},
		{1000, 1},
		{9999, 1},
		{10000, 2},
		{19999, 2},
		{20000, 3},
		{1000000, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.score), "score %d", tt.score)
	}
}
