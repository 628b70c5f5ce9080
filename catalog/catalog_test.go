package catalog

import (
	"testing"

	"github.com/semafind/closepairs/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsUnit(t *testing.T) {
	require.Equal(t, 13, Len())
	require.NoError(t, Validate(All()))
}

func TestValidateRejects(t *testing.T) {
	err := Validate([]models.Vector{{X: 1, Y: 0}, {X: 1, Y: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vector 1")
}

func TestAllReturnsCopy(t *testing.T) {
	vectors := All()
	vectors[0] = models.Vector{X: 42, Y: 42}
	assert.Equal(t, 0.7071067811865476, All()[0].X)
}

func TestClampN(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-3, 0},
		{0, 0},
		{5, 5},
		{12, 12},
		{13, 12},
		{100, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampN(tt.n), "n=%d", tt.n)
		assert.Len(t, Prefix(tt.n), tt.want)
	}
}

func TestPrefixOrder(t *testing.T) {
	prefix := Prefix(2)
	require.Len(t, prefix, 2)
	assert.Equal(t, models.Vector{X: 0.7071067811865476, Y: -0.7071067811865475}, prefix[0])
	assert.Equal(t, models.Vector{X: 0.8660254037844387, Y: 0.49999999999999994}, prefix[1])
}
