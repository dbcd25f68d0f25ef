package main

import "math"

// unspawnedY marks a brick that has never been placed on the board.
const unspawnedY = math.MinInt

// FallingBrick is the active piece as an immutable value. Every transition
// returns a new value; blocked transitions return the receiver unchanged.
type FallingBrick struct {
	Type        BrickType
	X           int
	Y           int
	Orientation Orientation
}

func NewFallingBrick(t BrickType) FallingBrick {
	return FallingBrick{Type: t, Y: unspawnedY}
}

func (b FallingBrick) Spawned() bool {
	return b.Y != unspawnedY
}

// Spawn centers the brick horizontally and places it fully above the
// visible board.
func (b FallingBrick) Spawn() FallingBrick {
	size := b.Type.Size()
	b.X = (boardWidth - size) / 2
	b.Y = -size
	b.Orientation = OrientSpawn
	return b
}

// Shape returns the brick's occupied cells at its current orientation. The
// O piece has a single visual orientation, so it always uses the canonical
// shape, as does a brick that has not spawned yet.
func (b FallingBrick) Shape() Shape {
	if !b.Spawned() || b.Type == BrickO {
		return canonicalShapes[b.Type]
	}
	return RotatedShape(b.Type, b.Orientation)
}

// CanFall reports whether the brick can move down one row without hitting
// the floor or a settled cell.
func (b FallingBrick) CanFall(g Grid) bool {
	if !b.Spawned() {
		return false
	}
	shape := b.Shape()
	for y, row := range shape {
		for _, occupied := range row {
			if occupied && b.Y+y+1 >= boardHeight {
				return false
			}
		}
	}
	return !collides(g, shape, b.X, b.Y+1)
}

// TickGravity advances the brick one row, or reports that it has landed
// without moving it.
func (b FallingBrick) TickGravity(g Grid) (FallingBrick, bool) {
	if !b.CanFall(g) {
		return b, true
	}
	b.Y++
	return b, false
}

// GameOver reports whether the brick has landed while part of it is still
// above the top row, which ends the game.
func (b FallingBrick) GameOver(g Grid) bool {
	if !b.Spawned() || b.CanFall(g) {
		return false
	}
	for y, row := range b.Shape() {
		for _, occupied := range row {
			if occupied && b.Y+y < 0 {
				return true
			}
		}
	}
	return false
}

// Rotate tries the clockwise rotation with each wall-kick offset for the
// current orientation in order, keeping the first placement that does not
// collide. If every kick fails the brick is unchanged. The O piece and an
// unspawned brick never rotate.
func (b FallingBrick) Rotate(g Grid) FallingBrick {
	if !b.Spawned() || b.Type == BrickO {
		return b
	}
	next := b.Orientation.Next()
	shape := RotatedShape(b.Type, next)
	for _, kick := range kicksFor(b.Type, b.Orientation) {
		if !collides(g, shape, b.X+kick.DX, b.Y+kick.DY) {
			b.Orientation = next
			b.X += kick.DX
			b.Y += kick.DY
			return b
		}
	}
	return b
}

func (b FallingBrick) MoveLeft(g Grid) FallingBrick {
	return b.shift(g, -1)
}

func (b FallingBrick) MoveRight(g Grid) FallingBrick {
	return b.shift(g, 1)
}

func (b FallingBrick) shift(g Grid, dx int) FallingBrick {
	if !b.Spawned() {
		return b
	}
	if collides(g, b.Shape(), b.X+dx, b.Y) {
		return b
	}
	b.X += dx
	return b
}

// FastFall drops the brick to its lowest legal position. It does not lock
// the brick in; the next gravity tick does that.
func (b FallingBrick) FastFall(g Grid) FallingBrick {
	for b.CanFall(g) {
		b.Y++
	}
	return b
}

// collides reports whether the shape placed with its top-left cell at
// (x0,y0) overlaps a settled cell or leaves the board. Cells above the top
// row collide only with the side walls, so bricks can live off-board while
// spawning.
func collides(g Grid, shape Shape, x0, y0 int) bool {
	for y, row := range shape {
		for x, occupied := range row {
			if !occupied {
				continue
			}
			gx := x0 + x
			gy := y0 + y
			if gy < 0 {
				if gx < 0 || gx >= boardWidth {
					return true
				}
				continue
			}
			if !g.IsEmpty(gx, gy) {
				return true
			}
		}
	}
	return false
}
