package main

// BrickType identifies one of the seven canonical falling pieces.
type BrickType int

const (
	BrickI BrickType = iota
	BrickL
	BrickJ
	BrickO
	BrickS
	BrickZ
	BrickT
)

const brickTypeCount = 7

// Shape is a square bit-matrix of a piece's occupied cells.
type Shape [][]bool

// canonicalShapes holds each piece's spawn-orientation shape. These are
// immutable; rotations always work on fresh copies.
var canonicalShapes = [brickTypeCount]Shape{
	BrickI: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	BrickL: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
	BrickJ: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	BrickO: {
		{true, true},
		{true, true},
	},
	BrickS: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	BrickZ: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
	BrickT: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
}

func (t BrickType) Size() int {
	return len(canonicalShapes[t])
}

// Orientation is one of the four rotational states, cyclic clockwise.
type Orientation int

const (
	OrientSpawn Orientation = iota
	OrientRight
	OrientTwo
	OrientLeft
)

func (o Orientation) Next() Orientation {
	return (o + 1) % 4
}

// RotatedShape returns the canonical shape of t turned 90 degrees clockwise
// o times. The canonical table is never mutated.
func RotatedShape(t BrickType, o Orientation) Shape {
	shape := copyShape(canonicalShapes[t])
	for i := Orientation(0); i < o; i++ {
		shape = rotateCW(shape)
	}
	return shape
}

func copyShape(shape Shape) Shape {
	out := make(Shape, len(shape))
	for y, row := range shape {
		out[y] = make([]bool, len(row))
		copy(out[y], row)
	}
	return out
}

func rotateCW(shape Shape) Shape {
	n := len(shape)
	out := make(Shape, n)
	for y := 0; y < n; y++ {
		out[y] = make([]bool, n)
		for x := 0; x < n; x++ {
			out[y][x] = shape[n-1-x][y]
		}
	}
	return out
}

// Offset is a wall-kick candidate in grid coordinates (y grows downward).
type Offset struct {
	DX int
	DY int
}

// SRS wall-kick tables for clockwise rotation, indexed by the orientation
// being rotated FROM. Index 0 is always the unkicked attempt.
var kickTableJLSTZ = [4][5]Offset{
	// 0->R
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	// R->2
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	// 2->L
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	// L->0
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
}

var kickTableI = [4][5]Offset{
	// 0->R
	{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	// R->2
	{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	// 2->L
	{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	// L->0
	{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
}

// kicksFor selects the kick candidates for rotating t clockwise out of the
// given orientation. The O piece never rotates, so it has no table.
func kicksFor(t BrickType, from Orientation) [5]Offset {
	if t == BrickI {
		return kickTableI[from]
	}
	return kickTableJLSTZ[from]
}
