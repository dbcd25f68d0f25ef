package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedBricks cycles through the given types, standing in for the uniform
// random source.
func fixedBricks(types ...BrickType) RandomBrick {
	i := 0
	return func() BrickType {
		t := types[i%len(types)]
		i++
		return t
	}
}

func tickUntilLocked(t *testing.T, state GameState, next RandomBrick, maxTicks int) (GameState, int) {
	t.Helper()
	for i := 1; i <= maxTicks; i++ {
		state = Apply(state, ActionTickClock, next)
		if !state.Falling.Spawned() {
			return state, i
		}
		require.Equal(t, PhaseInProgress, state.Phase)
	}
	t.Fatalf("brick did not lock within %d ticks", maxTicks)
	return state, 0
}

func TestStartGame(t *testing.T) {
	next := fixedBricks(BrickI, BrickL, BrickJ, BrickO, BrickS)
	state := Apply(NewGameState(), ActionStartGame, next)

	assert.Equal(t, PhaseInProgress, state.Phase)
	assert.Zero(t, state.Score)
	assert.False(t, state.Falling.Spawned())
	assert.Equal(t, BrickI, state.Falling.Type)
	assert.Equal(t, []BrickType{BrickL, BrickJ, BrickO, BrickS}, state.Queue)
	assert.False(t, state.Clearing)
}

func TestStartGameDiscardsPriorSession(t *testing.T) {
	next := fixedBricks(BrickT)
	state := Apply(NewGameState(), ActionStartGame, next)
	state.Score = 700
	state.Phase = PhaseOver
	fullRow(state.Grid, 19, BrickZ)

	fresh := Apply(state, ActionStartGame, next)
	assert.Equal(t, PhaseInProgress, fresh.Phase)
	assert.Zero(t, fresh.Score)
	assert.Empty(t, fresh.Grid.CompletedRows())
}

func TestFirstTickSpawnsAndFalls(t *testing.T) {
	next := fixedBricks(BrickI, BrickL, BrickJ, BrickO, BrickS)
	state := Apply(NewGameState(), ActionStartGame, next)

	state = Apply(state, ActionTickClock, next)
	assert.True(t, state.Falling.Spawned())
	assert.Equal(t, 3, state.Falling.X)
	assert.Equal(t, -3, state.Falling.Y)
}

func TestLeftAtBoundaryIsNoOp(t *testing.T) {
	next := fixedBricks(BrickI, BrickL, BrickJ, BrickO, BrickS)
	state := Apply(NewGameState(), ActionStartGame, next)
	state = Apply(state, ActionTickClock, next)

	for i := 0; i < 3; i++ {
		state = Apply(state, ActionLeft, next)
	}
	require.Equal(t, 0, state.Falling.X)

	unchanged := Apply(state, ActionLeft, next)
	assert.Equal(t, state.Falling, unchanged.Falling)
}

func TestGameplayActionsOutsideInProgressAreNoOps(t *testing.T) {
	next := fixedBricks(BrickT)
	actions := []Action{ActionTickClock, ActionLeft, ActionRight, ActionUp, ActionDown}

	unstarted := NewGameState()
	for _, action := range actions {
		assert.Equal(t, unstarted, Apply(unstarted, action, next))
	}

	over := Apply(NewGameState(), ActionStartGame, next)
	over.Phase = PhaseOver
	for _, action := range actions {
		assert.Equal(t, over, Apply(over, action, next))
	}
}

func TestBrickFallsLocksAndDequeues(t *testing.T) {
	next := fixedBricks(BrickI, BrickL, BrickJ, BrickO, BrickS, BrickZ, BrickT)
	state := Apply(NewGameState(), ActionStartGame, next)
	require.Equal(t, []BrickType{BrickL, BrickJ, BrickO, BrickS}, state.Queue)

	state, ticks := tickUntilLocked(t, state, next, 30)
	// Spawn at y=-4 plus one step per tick down to y=18, then the lock.
	assert.Equal(t, 23, ticks)

	// The I lies flat on the floor.
	for x := 3; x < 7; x++ {
		assert.Equal(t, cellFor(BrickI), state.Grid[19][x])
	}
	assert.False(t, state.Clearing)
	assert.Zero(t, state.Score)

	// Queue front became the new falling brick, one fresh type appended.
	assert.Equal(t, BrickL, state.Falling.Type)
	assert.False(t, state.Falling.Spawned())
	assert.Equal(t, []BrickType{BrickJ, BrickO, BrickS, BrickZ}, state.Queue)
}

func TestHardDropDoesNotLock(t *testing.T) {
	next := fixedBricks(BrickI, BrickL, BrickJ, BrickO, BrickS)
	state := Apply(NewGameState(), ActionStartGame, next)
	state = Apply(state, ActionTickClock, next)

	state = Apply(state, ActionDown, next)
	assert.Equal(t, 18, state.Falling.Y)
	for x := 0; x < boardWidth; x++ {
		assert.Equal(t, cellEmpty, state.Grid[19][x])
	}

	// A second hard drop changes nothing.
	assert.Equal(t, state.Falling, Apply(state, ActionDown, next).Falling)

	// The next gravity tick performs the lock.
	state = Apply(state, ActionTickClock, next)
	assert.False(t, state.Falling.Spawned())
	for x := 3; x < 7; x++ {
		assert.Equal(t, cellFor(BrickI), state.Grid[19][x])
	}
}

func TestRowClearAnimationAndScoring(t *testing.T) {
	next := fixedBricks(BrickL, BrickJ, BrickO, BrickS, BrickZ)
	grid := NewGrid()
	for x := 0; x < boardWidth; x++ {
		if x < 3 || x > 6 {
			grid[19][x] = cellFor(BrickZ)
		}
	}
	state := GameState{
		Phase:   PhaseInProgress,
		Grid:    grid,
		Falling: FallingBrick{Type: BrickI, X: 3, Y: 17, Orientation: OrientSpawn},
		Queue:   []BrickType{BrickL, BrickJ, BrickO, BrickS},
	}

	// One step down, then the landing tick completes the bottom row.
	state = Apply(state, ActionTickClock, next)
	require.False(t, state.Clearing)
	state = Apply(state, ActionTickClock, next)

	require.True(t, state.Clearing)
	assert.Equal(t, 0, state.ClearFrame)
	assert.Equal(t, 100, state.Score)
	assert.Equal(t, []int{19}, state.Grid.CompletedRows())

	// The animation holds the grid for its full frame budget; the new
	// brick stays unspawned throughout.
	for frame := 1; frame < clearAnimationFrames; frame++ {
		state = Apply(state, ActionTickClock, next)
		require.True(t, state.Clearing, "frame %d", frame)
		assert.Equal(t, frame, state.ClearFrame)
		assert.False(t, state.Falling.Spawned())
		require.Len(t, state.Grid, boardHeight)
	}

	// The final frame compacts the grid in the same transition.
	state = Apply(state, ActionTickClock, next)
	assert.False(t, state.Clearing)
	assert.Empty(t, state.Grid.CompletedRows())
	require.Len(t, state.Grid, boardHeight)
	for x := 0; x < boardWidth; x++ {
		assert.Equal(t, cellEmpty, state.Grid[19][x])
	}
	assert.Equal(t, 100, state.Score)

	// Next tick resumes play by spawning the dequeued brick.
	state = Apply(state, ActionTickClock, next)
	assert.True(t, state.Falling.Spawned())
	assert.Equal(t, BrickL, state.Falling.Type)
}

func TestMultiRowClearScoresPerRow(t *testing.T) {
	next := fixedBricks(BrickL, BrickJ, BrickO, BrickS)
	grid := NewGrid()
	for _, y := range []int{18, 19} {
		for x := 0; x < boardWidth; x++ {
			if x != 4 && x != 5 {
				grid[y][x] = cellFor(BrickT)
			}
		}
	}
	state := GameState{
		Phase:   PhaseInProgress,
		Grid:    grid,
		Falling: FallingBrick{Type: BrickO, X: 4, Y: 18, Orientation: OrientSpawn},
		Queue:   []BrickType{BrickL, BrickJ, BrickO, BrickS},
	}

	state = Apply(state, ActionTickClock, next)
	require.True(t, state.Clearing)
	assert.Equal(t, 200, state.Score)
	assert.Equal(t, []int{18, 19}, state.Grid.CompletedRows())
}

func TestGameOverTransition(t *testing.T) {
	next := fixedBricks(BrickT, BrickL, BrickJ, BrickO, BrickS)
	grid := NewGrid()
	for y := range grid {
		fullRow(grid, y, BrickZ)
	}
	state := GameState{
		Phase:   PhaseInProgress,
		Grid:    grid,
		Falling: NewFallingBrick(BrickT),
		Queue:   []BrickType{BrickL, BrickJ, BrickO, BrickS},
	}

	// Spawn tick: the brick sits above the stack and can still slide one
	// row while fully off-board.
	state = Apply(state, ActionTickClock, next)
	require.Equal(t, PhaseInProgress, state.Phase)

	state = Apply(state, ActionTickClock, next)
	assert.Equal(t, PhaseOver, state.Phase)

	// Terminal until the next start.
	for _, action := range []Action{ActionTickClock, ActionLeft, ActionRight, ActionUp, ActionDown} {
		assert.Equal(t, state, Apply(state, action, next))
	}
	restarted := Apply(state, ActionStartGame, next)
	assert.Equal(t, PhaseInProgress, restarted.Phase)
}

func TestQueueInvariantOverManyLocks(t *testing.T) {
	next := fixedBricks(BrickO, BrickI, BrickS, BrickZ, BrickT, BrickL, BrickJ)
	state := Apply(NewGameState(), ActionStartGame, next)

	for i := 0; i < 200 && state.Phase == PhaseInProgress; i++ {
		state = Apply(state, ActionTickClock, next)
		require.Len(t, state.Queue, queueLength)
		require.Len(t, state.Grid, boardHeight)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	next := fixedBricks(BrickI, BrickL, BrickJ, BrickO, BrickS)
	state := Apply(NewGameState(), ActionStartGame, next)
	state = Apply(state, ActionTickClock, next)
	state = Apply(state, ActionDown, next)

	gridBefore := state.Grid.clone()
	queueBefore := append([]BrickType{}, state.Queue...)

	locked := Apply(state, ActionTickClock, next)
	require.False(t, locked.Falling.Spawned())

	assert.Equal(t, gridBefore, state.Grid)
	assert.Equal(t, queueBefore, state.Queue)
}
