package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, cosineDistance([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0, cosineDistance([]float32{1, 0}, []float32{5, 0}), 1e-9, "magnitude does not matter")
	assert.InDelta(t, 1, cosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 2, cosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-9)
}

func TestCosineDistance_DegenerateVectors(t *testing.T) {
	assert.Equal(t, 2.0, cosineDistance(nil, []float32{1, 0}))
	assert.Equal(t, 2.0, cosineDistance([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Equal(t, 2.0, cosineDistance([]float32{0, 0}, []float32{1, 0}))
}
