package main

import "math/rand"

// GamePhase is the outer state machine of a session.
type GamePhase int

const (
	PhaseUnstarted GamePhase = iota
	PhaseInProgress
	PhaseOver
)

// Action is one input to the reducer, either a clock tick or a discrete
// player command.
type Action int

const (
	ActionTickClock Action = iota
	ActionStartGame
	ActionDown
	ActionLeft
	ActionRight
	ActionUp
)

// RandomBrick produces the next brick type, uniform over the seven types.
// It is the only nondeterminism the reducer consumes; tests inject fixed
// sequences.
type RandomBrick func() BrickType

func uniformBrick(rng *rand.Rand) RandomBrick {
	return func() BrickType {
		return BrickType(rng.Intn(brickTypeCount))
	}
}

const (
	queueLength          = 4
	clearAnimationFrames = 6
	pointsPerClearedRow  = 100
)

// GameState is the complete state of one game session. The reducer never
// mutates a state in place; each action produces a new value.
type GameState struct {
	Phase   GamePhase
	Grid    Grid
	Score   int
	Falling FallingBrick
	Queue   []BrickType

	// Row-clear animation. While Clearing is set the completed rows stay
	// in the grid for the presenter to flash; the grid compacts when
	// ClearFrame reaches its budget.
	Clearing   bool
	ClearFrame int
}

func NewGameState() GameState {
	return GameState{
		Phase:   PhaseUnstarted,
		Grid:    NewGrid(),
		Falling: FallingBrick{Y: unspawnedY},
	}
}

// Apply is the reducer: one action in, one new state out. It is total and
// synchronous; every invalid operation leaves the state unchanged.
func Apply(state GameState, action Action, next RandomBrick) GameState {
	switch action {
	case ActionStartGame:
		return startGame(next)
	case ActionLeft:
		if state.Phase != PhaseInProgress {
			return state
		}
		state.Falling = state.Falling.MoveLeft(state.Grid)
		return state
	case ActionRight:
		if state.Phase != PhaseInProgress {
			return state
		}
		state.Falling = state.Falling.MoveRight(state.Grid)
		return state
	case ActionUp:
		if state.Phase != PhaseInProgress {
			return state
		}
		state.Falling = state.Falling.Rotate(state.Grid)
		return state
	case ActionDown:
		// Hard drop only. The brick locks in on the next gravity tick.
		if state.Phase != PhaseInProgress {
			return state
		}
		state.Falling = state.Falling.FastFall(state.Grid)
		return state
	case ActionTickClock:
		if state.Phase != PhaseInProgress {
			return state
		}
		return tick(state, next)
	default:
		return state
	}
}

func startGame(next RandomBrick) GameState {
	falling := NewFallingBrick(next())
	queue := make([]BrickType, queueLength)
	for i := range queue {
		queue[i] = next()
	}
	return GameState{
		Phase:   PhaseInProgress,
		Grid:    NewGrid(),
		Falling: falling,
		Queue:   queue,
	}
}

func tick(state GameState, next RandomBrick) GameState {
	if state.Clearing {
		state.ClearFrame++
		if state.ClearFrame >= clearAnimationFrames {
			state.Clearing = false
			state.ClearFrame = 0
			state.Grid = state.Grid.RemoveCompletedRows()
		}
		return state
	}
	if !state.Falling.Spawned() {
		state.Falling = state.Falling.Spawn()
	}
	falling, landed := state.Falling.TickGravity(state.Grid)
	state.Falling = falling
	if !landed {
		return state
	}
	if falling.GameOver(state.Grid) {
		state.Phase = PhaseOver
		return state
	}
	state.Grid = state.Grid.WithBrick(falling)
	state.Falling = NewFallingBrick(state.Queue[0])
	queue := make([]BrickType, 0, queueLength)
	queue = append(queue, state.Queue[1:]...)
	state.Queue = append(queue, next())
	if completed := state.Grid.CompletedRows(); len(completed) > 0 {
		state.Score += pointsPerClearedRow * len(completed)
		state.Clearing = true
		state.ClearFrame = 0
	}
	return state
}
