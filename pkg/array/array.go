// Package array holds the typed, shaped arrays produced from attribute
// values. Exactly one of the data slices is populated, chosen by DType.
package array

import "fmt"

// DType names the element type of an Array.
type DType string

const (
	Int32   DType = "int32"
	Float32 DType = "float32"
	Text    DType = "text"
)

// Array is a row-major n-dimensional array. Shape is (n) for width 1 and
// (n, w) for width w > 1.
type Array struct {
	DType DType     `codec:"dtype" json:"dtype"`
	Shape []int     `codec:"shape" json:"shape"`
	Int   []int32   `codec:"int,omitempty" json:"int,omitempty"`
	Float []float32 `codec:"float,omitempty" json:"float,omitempty"`
	Text  []string  `codec:"text,omitempty" json:"text,omitempty"`
}

// shape returns the (n) or (n, width) shape for a flat buffer.
func shape(size, width int) []int {
	if width <= 1 {
		return []int{size}
	}
	return []int{size / width, width}
}

// NewInt32 wraps a flat int32 buffer of width-wide rows.
func NewInt32(data []int32, width int) *Array {
	if data == nil {
		data = []int32{}
	}
	return &Array{DType: Int32, Shape: shape(len(data), width), Int: data}
}

// NewFloat32 wraps a flat float32 buffer of width-wide rows.
func NewFloat32(data []float32, width int) *Array {
	if data == nil {
		data = []float32{}
	}
	return &Array{DType: Float32, Shape: shape(len(data), width), Float: data}
}

// NewText wraps a flat string sequence of width-wide rows.
func NewText(data []string, width int) *Array {
	if data == nil {
		data = []string{}
	}
	return &Array{DType: Text, Shape: shape(len(data), width), Text: data}
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.Shape)
}

// Len returns the size of the first dimension.
func (a *Array) Len() int {
	if len(a.Shape) == 0 {
		return 0
	}
	return a.Shape[0]
}

// Size returns the total number of components.
func (a *Array) Size() int {
	switch a.DType {
	case Int32:
		return len(a.Int)
	case Float32:
		return len(a.Float)
	case Text:
		return len(a.Text)
	}
	return 0
}

// Validate checks that the shape matches the data length.
func (a *Array) Validate() error {
	n := 1
	for _, d := range a.Shape {
		if d < 0 {
			return fmt.Errorf("array: negative dimension in shape %v", a.Shape)
		}
		n *= d
	}
	if n != a.Size() {
		return fmt.Errorf("array: shape %v holds %d values, have %d", a.Shape, n, a.Size())
	}
	return nil
}
