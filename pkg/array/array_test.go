package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapes(t *testing.T) {
	tests := []struct {
		name  string
		arr   *Array
		shape []int
		rank  int
		len   int
	}{
		{"scalar ints", NewInt32([]int32{1, 2, 3}, 1), []int{3}, 1, 3},
		{"vec3 floats", NewFloat32(make([]float32, 12), 3), []int{4, 3}, 2, 4},
		{"empty vec3", NewFloat32(nil, 3), []int{0, 3}, 2, 0},
		{"empty scalar", NewInt32(nil, 1), []int{0}, 1, 0},
		{"text", NewText([]string{"a", "b"}, 1), []int{2}, 1, 2},
		{"text pairs", NewText([]string{"a", "b", "c", "d"}, 2), []int{2, 2}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shape, tt.arr.Shape)
			assert.Equal(t, tt.rank, tt.arr.Rank())
			assert.Equal(t, tt.len, tt.arr.Len())
			assert.NoError(t, tt.arr.Validate())
		})
	}
}

func TestEmptyArraysAreNotNil(t *testing.T) {
	assert.NotNil(t, NewInt32(nil, 1).Int)
	assert.NotNil(t, NewFloat32(nil, 1).Float)
	assert.NotNil(t, NewText(nil, 1).Text)
}

func TestValidate(t *testing.T) {
	a := &Array{DType: Int32, Shape: []int{2, 2}, Int: []int32{1, 2, 3}}
	assert.Error(t, a.Validate())

	a = &Array{DType: Float32, Shape: []int{2, -1}, Float: []float32{}}
	assert.Error(t, a.Validate())

	a = &Array{DType: Int32, Shape: []int{2, 2, 2}, Int: make([]int32, 8)}
	assert.NoError(t, a.Validate())
	assert.Equal(t, 3, a.Rank())
	assert.Equal(t, 8, a.Size())
}
