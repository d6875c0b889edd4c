package repr

import (
	"fmt"

	"zappem.net/pub/math/poses/motions"
	"zappem.net/pub/math/poses/rotation"
)

// CellKind says what an entry of a primitive matrix holds.
type CellKind int

const (
	One CellKind = iota
	// Cos is the cosine of the rotation angle.
	Cos
	// Sin is the sine of the rotation angle.
	Sin
	// Length is the translation amount.
	Length
)

// Cell is a non-zero entry of a primitive matrix. Neg negates it.
type Cell struct {
	Row, Col int
	Kind     CellKind
	Neg      bool
}

// Shape lays out the matrix of an elementary rotation or translation.
type Shape struct {
	name  string
	size  int
	cells func(k motions.Kind, axis int) []Cell
}

// Name returns the name of s, as accepted by ParseShape.
func (s Shape) Name() string { return s.name }

// Size returns the dimension of the square matrices of s.
func (s Shape) Size() int { return s.size }

// Cells returns the layout of the matrix of the step of kind k about
// or along axis.
func (s Shape) Cells(k motions.Kind, axis motions.Axis) []Cell {
	return s.cells(k, int(axis))
}

func (s Shape) String() string { return s.name }

// diag returns the unit diagonal cells of indices from to to-1.
func diag(from, to int) []Cell {
	var cs []Cell
	for i := from; i < to; i++ {
		cs = append(cs, Cell{Row: i, Col: i, Kind: One})
	}
	return cs
}

// rot returns the cells of the 3x3 rotation about axis i placed with
// its top left corner at (at, at).
func rot(i, at int) []Cell {
	var cs []Cell
	for _, e := range rotation.Layout(i) {
		k := One
		switch e.Fn {
		case rotation.Cosine:
			k = Cos
		case rotation.Sine:
			k = Sin
		}
		cs = append(cs, Cell{Row: at + e.Row, Col: at + e.Col, Kind: k, Neg: e.Neg})
	}
	return cs
}

// cross returns the cells of the skew symmetric matrix of the vector
// of the given length along axis i, placed at (row, col).
func cross(i, row, col int) []Cell {
	j, k := (i+1)%3, (i+2)%3
	return []Cell{
		{Row: row + j, Col: col + k, Kind: Length, Neg: true},
		{Row: row + k, Col: col + j, Kind: Length},
	}
}

var (
	// Homogeneous is the 4x4 homogeneous transform of points.
	Homogeneous = Shape{name: "homogeneous", size: 4, cells: func(k motions.Kind, i int) []Cell {
		if k == motions.Rotation {
			return append(rot(i, 0), Cell{Row: 3, Col: 3, Kind: One})
		}
		return append(diag(0, 4), Cell{Row: i, Col: 3, Kind: Length})
	}}

	// RotationOnly is the 3x3 rotation block. Translations leave it
	// unchanged.
	RotationOnly = Shape{name: "rotation", size: 3, cells: func(k motions.Kind, i int) []Cell {
		if k == motions.Rotation {
			return rot(i, 0)
		}
		return diag(0, 3)
	}}

	// SpatialMotion is the 6x6 transform of spatial motion vectors,
	// angular part first.
	SpatialMotion = Shape{name: "motion", size: 6, cells: func(k motions.Kind, i int) []Cell {
		if k == motions.Rotation {
			return append(rot(i, 0), rot(i, 3)...)
		}
		return append(diag(0, 6), cross(i, 3, 0)...)
	}}

	// SpatialForce is the 6x6 transform of spatial force vectors,
	// angular part first.
	SpatialForce = Shape{name: "force", size: 6, cells: func(k motions.Kind, i int) []Cell {
		if k == motions.Rotation {
			return append(rot(i, 0), rot(i, 3)...)
		}
		return append(diag(0, 6), cross(i, 0, 3)...)
	}}
)

// Shapes lists the available shapes.
var Shapes = []Shape{Homogeneous, RotationOnly, SpatialMotion, SpatialForce}

// ParseShape returns the shape called name.
func ParseShape(name string) (Shape, error) {
	for _, s := range Shapes {
		if s.name == name {
			return s, nil
		}
	}
	return Shape{}, fmt.Errorf("unknown matrix shape %q", name)
}
