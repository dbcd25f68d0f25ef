package main

const (
	boardWidth  = 10
	boardHeight = 20
)

// Cell is either empty or holds the type of the brick that settled there.
type Cell int

const cellEmpty Cell = 0

func cellFor(t BrickType) Cell {
	return Cell(t) + 1
}

func (c Cell) Brick() BrickType {
	return BrickType(c) - 1
}

// Grid is the matrix of settled cells, boardHeight rows of boardWidth cells,
// (0,0) at the top left.
type Grid [][]Cell

func NewGrid() Grid {
	grid := make(Grid, boardHeight)
	for y := range grid {
		grid[y] = make([]Cell, boardWidth)
	}
	return grid
}

// IsEmpty reports whether (x,y) holds no settled cell. Anything above the
// top row counts as empty so pieces can spawn off-board; anything off the
// sides or below the floor counts as occupied.
func (g Grid) IsEmpty(x, y int) bool {
	if y < 0 {
		return true
	}
	if x < 0 || x >= boardWidth || y >= boardHeight {
		return false
	}
	return g[y][x] == cellEmpty
}

func (g Grid) IsRowComplete(y int) bool {
	for x := 0; x < boardWidth; x++ {
		if g[y][x] == cellEmpty {
			return false
		}
	}
	return true
}

// CompletedRows lists the indices of fully occupied rows, top to bottom.
func (g Grid) CompletedRows() []int {
	var rows []int
	for y := 0; y < boardHeight; y++ {
		if g.IsRowComplete(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// RemoveCompletedRows returns a new grid with every complete row dropped,
// the surviving rows keeping their relative order, and fresh empty rows
// padding the top back to full height.
func (g Grid) RemoveCompletedRows() Grid {
	kept := make(Grid, 0, boardHeight)
	for y := 0; y < boardHeight; y++ {
		if !g.IsRowComplete(y) {
			kept = append(kept, g.copyRow(y))
		}
	}
	grid := make(Grid, 0, boardHeight)
	for i := len(kept); i < boardHeight; i++ {
		grid = append(grid, make([]Cell, boardWidth))
	}
	return append(grid, kept...)
}

// WithBrick returns a new grid with the brick's occupied cells stamped in at
// its current position. Callers only lock in a brick that does not collide,
// so settled cells are never overwritten.
func (g Grid) WithBrick(b FallingBrick) Grid {
	grid := g.clone()
	shape := b.Shape()
	for y, row := range shape {
		for x, occupied := range row {
			if !occupied {
				continue
			}
			gx := b.X + x
			gy := b.Y + y
			if gy >= 0 && gy < boardHeight && gx >= 0 && gx < boardWidth {
				grid[gy][gx] = cellFor(b.Type)
			}
		}
	}
	return grid
}

func (g Grid) clone() Grid {
	grid := make(Grid, boardHeight)
	for y := range g {
		grid[y] = g.copyRow(y)
	}
	return grid
}

func (g Grid) copyRow(y int) []Cell {
	row := make([]Cell, boardWidth)
	copy(row, g[y])
	return row
}
