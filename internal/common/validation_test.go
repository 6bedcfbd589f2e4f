package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIndex(t *testing.T) {
	tests := []struct {
		i, n     int
		expected bool
	}{
		{0, 1, true},
		{3, 4, true},
		{4, 4, false},
		{-1, 4, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsValidIndex(tt.i, tt.n), "IsValidIndex(%d, %d)", tt.i, tt.n)
	}
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0, 0, 10))
	assert.True(t, InRange(10, 0, 10))
	assert.False(t, InRange(11, 0, 10))
	assert.False(t, InRange(-1, 0, 10))
}

func TestFitsUint32(t *testing.T) {
	assert.True(t, FitsUint32(0))
	assert.True(t, FitsUint32(1<<20))
	assert.False(t, FitsUint32(-1))
	if math.MaxInt > math.MaxUint32 {
		limit := int64(math.MaxUint32)
		assert.True(t, FitsUint32(int(limit)))
		assert.False(t, FitsUint32(int(limit+1)))
	}
}
