package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawn(t *testing.T) {
	tests := []struct {
		kind  BrickType
		wantX int
		wantY int
	}{
		{BrickI, 3, -4},
		{BrickO, 4, -2},
		{BrickT, 3, -3},
		{BrickL, 3, -3},
		{BrickJ, 3, -3},
		{BrickS, 3, -3},
		{BrickZ, 3, -3},
	}
	for _, tt := range tests {
		brick := NewFallingBrick(tt.kind)
		assert.False(t, brick.Spawned())

		brick = brick.Spawn()
		assert.True(t, brick.Spawned())
		assert.Equal(t, tt.wantX, brick.X, "brick %d", tt.kind)
		assert.Equal(t, tt.wantY, brick.Y, "brick %d", tt.kind)
		assert.Equal(t, OrientSpawn, brick.Orientation)
	}
}

func TestUnspawnedOperationsAreNoOps(t *testing.T) {
	grid := NewGrid()
	brick := NewFallingBrick(BrickT)

	assert.Equal(t, brick, brick.MoveLeft(grid))
	assert.Equal(t, brick, brick.MoveRight(grid))
	assert.Equal(t, brick, brick.Rotate(grid))
	assert.Equal(t, brick, brick.FastFall(grid))
	assert.False(t, brick.CanFall(grid))
}

func TestCollisionFalseAboveEmptyBoard(t *testing.T) {
	grid := NewGrid()
	for _, kind := range allBrickTypes {
		shape := canonicalShapes[kind]
		size := kind.Size()
		for x := 0; x <= boardWidth-size; x++ {
			assert.False(t, collides(grid, shape, x, -size), "brick %d at x=%d", kind, x)
		}
	}
}

func TestMoveAgainstWalls(t *testing.T) {
	grid := NewGrid()

	brick := FallingBrick{Type: BrickT, X: 3, Y: 5, Orientation: OrientSpawn}
	brick = brick.MoveLeft(grid).MoveLeft(grid).MoveLeft(grid)
	require.Equal(t, 0, brick.X)
	assert.Equal(t, 0, brick.MoveLeft(grid).X)

	brick.X = 7
	require.Equal(t, 7, brick.MoveRight(grid).X)
}

func TestMoveBlockedBySettledCell(t *testing.T) {
	grid := NewGrid()
	grid[6][2] = cellFor(BrickO)

	brick := FallingBrick{Type: BrickT, X: 3, Y: 5, Orientation: OrientSpawn}
	assert.Equal(t, 3, brick.MoveLeft(grid).X)
}

func TestTickGravity(t *testing.T) {
	grid := NewGrid()

	brick := FallingBrick{Type: BrickT, X: 3, Y: 10, Orientation: OrientSpawn}
	moved, landed := brick.TickGravity(grid)
	assert.False(t, landed)
	assert.Equal(t, 11, moved.Y)

	brick.Y = 18
	still, landed := brick.TickGravity(grid)
	assert.True(t, landed)
	assert.Equal(t, 18, still.Y)
}

func TestFastFallIsIdempotent(t *testing.T) {
	grid := NewGrid()
	brick := NewFallingBrick(BrickT).Spawn()

	dropped := brick.FastFall(grid)
	assert.Equal(t, 18, dropped.Y)
	assert.Equal(t, dropped, dropped.FastFall(grid))
}

func TestRotateAppliesWallKick(t *testing.T) {
	grid := NewGrid()
	// A sideways T hugging the left wall: the unkicked rotation pokes out
	// of the board, the (1,0) kick slides it back in.
	brick := FallingBrick{Type: BrickT, X: -1, Y: 5, Orientation: OrientRight}

	rotated := brick.Rotate(grid)
	assert.Equal(t, OrientTwo, rotated.Orientation)
	assert.Equal(t, 0, rotated.X)
	assert.Equal(t, 5, rotated.Y)
}

func TestRotateRejectedWhenEveryKickFails(t *testing.T) {
	brick := FallingBrick{Type: BrickT, X: 3, Y: 5, Orientation: OrientSpawn}
	grid := NewGrid()
	for y := range grid {
		fullRow(grid, y, BrickZ)
	}
	for y, row := range brick.Shape() {
		for x, occupied := range row {
			if occupied {
				grid[brick.Y+y][brick.X+x] = cellEmpty
			}
		}
	}

	assert.Equal(t, brick, brick.Rotate(grid))
}

func TestRotateNoOpForO(t *testing.T) {
	grid := NewGrid()
	brick := NewFallingBrick(BrickO).Spawn()
	assert.Equal(t, brick, brick.Rotate(grid))
}

func TestGameOver(t *testing.T) {
	t.Run("landing above the top row ends the game", func(t *testing.T) {
		grid := NewGrid()
		fullRow(grid, 0, BrickZ)
		brick := FallingBrick{Type: BrickT, X: 3, Y: -2, Orientation: OrientSpawn}

		require.False(t, brick.CanFall(grid))
		assert.True(t, brick.GameOver(grid))
	})

	t.Run("landing on the floor does not", func(t *testing.T) {
		grid := NewGrid()
		brick := FallingBrick{Type: BrickT, X: 3, Y: 18, Orientation: OrientSpawn}

		require.False(t, brick.CanFall(grid))
		assert.False(t, brick.GameOver(grid))
	})

	t.Run("a brick that can still fall is never game over", func(t *testing.T) {
		grid := NewGrid()
		brick := FallingBrick{Type: BrickT, X: 3, Y: -2, Orientation: OrientSpawn}
		assert.False(t, brick.GameOver(grid))
	})
}
