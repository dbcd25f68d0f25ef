package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	PieceColors []lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "Classic",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: []lipgloss.Color{"51", "208", "21", "226", "46", "196", "93"},
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: []lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: []lipgloss.Color{"45", "39", "51", "44", "50", "75", "81"},
	},
	{
		Name:        "Forest CRT",
		BorderColor: lipgloss.Color("22"),
		TextColor:   lipgloss.Color("120"),
		AccentColor: lipgloss.Color("34"),
		PieceColors: []lipgloss.Color{"47", "64", "77", "48", "71", "35", "106"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: []lipgloss.Color{"236", "239", "242", "245", "248", "251", "254"},
	},
	{
		Name:        "Volcanic",
		BorderColor: lipgloss.Color("203"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("214"),
		PieceColors: []lipgloss.Color{"52", "88", "124", "160", "196", "202", "208"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("TETRIS", menuItems, m.menuIndex, "Enter to select, Q to quit", theme)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	preview := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle(theme).Render("Theme Preview"),
		renderPreviewPieceGrid(theme),
	)
	menu := renderMenu("Themes", items, m.themeIndex, "Enter to apply, Esc to back", theme)
	content := lipgloss.JoinVertical(lipgloss.Left, preview, "", menu)
	return center(m.width, m.height, content)
}

func renderPreviewPieceGrid(theme Theme) string {
	rowTop := renderPreviewPieceRow(theme, []BrickType{BrickI, BrickL, BrickJ, BrickO})
	rowBottom := renderPreviewPieceRow(theme, []BrickType{BrickS, BrickZ, BrickT})
	return lipgloss.JoinVertical(lipgloss.Left, rowTop, rowBottom)
}

func renderPreviewPieceRow(theme Theme, kinds []BrickType) string {
	items := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		piece := lipgloss.NewStyle().MarginRight(1).Render(renderMiniPiece(kind, theme, 1))
		items = append(items, piece)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

const scoresPageSize = 20

func viewScores(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Scores"))
	b.WriteString("\n\n")
	if len(m.scores) == 0 {
		b.WriteString("No scores yet.\n")
	} else {
		start := m.scoresOffset
		end := start + scoresPageSize
		if end > len(m.scores) {
			end = len(m.scores)
		}
		for i, score := range m.scores[start:end] {
			line := fmt.Sprintf("%2d. %-12s %7d  %s", start+i+1, score.Name, score.Score, score.When)
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(m.scores) > scoresPageSize {
			b.WriteString("\n")
			b.WriteString(helpStyle(theme).Render("Use Up/Down to scroll"))
			b.WriteString("\n")
		}
	}
	if m.syncWarning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle(theme).Render(m.syncWarning))
		b.WriteString("\n")
	}
	if m.syncLoading {
		b.WriteString("\n")
		b.WriteString(helpStyle(theme).Render(renderSyncLoader(m.syncDots)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle(theme).Render("Enter to back"))
	return center(m.width, m.height, b.String())
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(configItems))
	for i, item := range configItems {
		state := "OFF"
		switch i {
		case 0:
			if m.config.Sound {
				state = "ON"
			}
			items = append(items, fmt.Sprintf("%s: %s", item, state))
		case 1:
			if m.config.Music {
				state = "ON"
			}
			items = append(items, fmt.Sprintf("%s: %s", item, state))
		case 2:
			items = append(items, fmt.Sprintf("%s: %d%%", item, clampVolumePercent(m.config.Volume)))
		case 3:
			if m.config.Shadow {
				state = "ON"
			}
			items = append(items, fmt.Sprintf("%s: %s", item, state))
		case 4:
			if m.config.Animations {
				state = "ON"
			}
			items = append(items, fmt.Sprintf("%s: %s", item, state))
		case 5:
			items = append(items, fmt.Sprintf("%s: %dx", item, clampScale(m.config.Scale)))
		case 6:
			if m.config.Sync {
				state = "ON"
			}
			items = append(items, fmt.Sprintf("%s: %s", item, state))
		}
	}
	content := renderMenu("Config", items, m.configIndex, "Enter to toggle, Left/Right to adjust, Esc to back", theme)
	return center(m.width, m.height, content)
}

func viewNameEntry(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Game Over"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Score: %d\n\n", m.state.Score))
	b.WriteString("Enter your name: ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle(theme).Render("Enter to save, Esc to skip"))
	return center(m.width, m.height, b.String())
}

func viewGame(m Model) string {
	theme := themes[m.themeIndex]
	scale := clampScale(m.config.Scale)
	minWidth, minHeight := minGameSize(scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	board := renderBoard(m.state, theme, scale, m.config.Shadow, m.config.Animations)
	info := renderInfo(m.state, theme, scale)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	return center(m.width, m.height, content)
}

// renderBoard draws the settled grid with the falling brick, its landing
// shadow, and the row-clear flash overlaid. It is a pure function of the
// game state; the flash sweep is driven by the core's animation frame.
func renderBoard(state GameState, theme Theme, scale int, showShadow, animations bool) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellStyleEmpty := lipgloss.NewStyle()
	cellText := strings.Repeat(" ", cellWidth(scale))
	board := make([][]Cell, boardHeight)
	for y := range board {
		board[y] = make([]Cell, boardWidth)
		copy(board[y], state.Grid[y])
	}
	ghost := make([][]bool, boardHeight)
	for y := range ghost {
		ghost[y] = make([]bool, boardWidth)
	}
	falling := state.Falling
	if falling.Spawned() {
		if showShadow {
			dropped := falling.FastFall(state.Grid)
			if dropped.Y != falling.Y {
				stamp(ghost, dropped, board)
			}
		}
		shape := falling.Shape()
		for y, row := range shape {
			for x, occupied := range row {
				if !occupied {
					continue
				}
				bx := falling.X + x
				by := falling.Y + y
				if by >= 0 && by < boardHeight && bx >= 0 && bx < boardWidth {
					board[by][bx] = cellFor(falling.Type)
				}
			}
		}
	}
	flashMap := map[int]struct{}{}
	breakColumns := 0
	if state.Clearing && animations {
		for _, row := range state.Grid.CompletedRows() {
			flashMap[row] = struct{}{}
		}
		breakColumns = brokenColumns(state.ClearFrame)
	}
	whiteStyle := lipgloss.NewStyle().Background(lipgloss.Color("15"))
	var b strings.Builder
	b.WriteString(border.Render("+" + strings.Repeat("-", boardWidth*cellWidth(scale)) + "+"))
	b.WriteString("\n")
	for y := 0; y < boardHeight; y++ {
		for repeat := 0; repeat < scale; repeat++ {
			b.WriteString(border.Render("|"))
			for x := 0; x < boardWidth; x++ {
				if _, flashRow := flashMap[y]; flashRow {
					if x < breakColumns {
						b.WriteString(cellStyleEmpty.Render(cellText))
					} else {
						b.WriteString(whiteStyle.Render(cellText))
					}
					continue
				}
				val := board[y][x]
				if val == cellEmpty {
					if ghost[y][x] {
						color := theme.PieceColors[int(falling.Type)%len(theme.PieceColors)]
						ghostText := strings.Repeat(".", cellWidth(scale))
						b.WriteString(lipgloss.NewStyle().Foreground(color).Faint(true).Render(ghostText))
					} else {
						b.WriteString(cellStyleEmpty.Render(cellText))
					}
					continue
				}
				color := theme.PieceColors[int(val.Brick())%len(theme.PieceColors)]
				b.WriteString(lipgloss.NewStyle().Background(color).Render(cellText))
			}
			b.WriteString(border.Render("|"))
			b.WriteString("\n")
		}
	}
	b.WriteString(border.Render("+" + strings.Repeat("-", boardWidth*cellWidth(scale)) + "+"))
	return b.String()
}

func stamp(ghost [][]bool, brick FallingBrick, board [][]Cell) {
	for y, row := range brick.Shape() {
		for x, occupied := range row {
			if !occupied {
				continue
			}
			bx := brick.X + x
			by := brick.Y + y
			if by >= 0 && by < boardHeight && bx >= 0 && bx < boardWidth && board[by][bx] == cellEmpty {
				ghost[by][bx] = true
			}
		}
	}
}

// brokenColumns maps the animation frame to how many columns of a flashed
// row have already shattered, sweeping left to right over the back part of
// the animation window.
func brokenColumns(frame int) int {
	progress := float64(frame) / float64(clearAnimationFrames)
	if progress <= 0.35 {
		return 0
	}
	breakProgress := (progress - 0.35) / 0.65
	columns := int(breakProgress*float64(boardWidth)) + 1
	if columns > boardWidth {
		return boardWidth
	}
	return columns
}

func renderInfo(state GameState, theme Theme, scale int) string {
	var b strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	b.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	b.WriteString("\n")
	for _, kind := range state.Queue {
		b.WriteString(pad.Render(renderMiniPiece(kind, theme, 1)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Score: %d", state.Score)))
	b.WriteString("\n")
	b.WriteString(pad.Render(helpStyle(theme).Render(phaseLabel(state.Phase))))
	b.WriteString("\n\n")
	keys := []string{
		"Arrows/HL: move",
		"X or Up: rotate",
		"Space or Down: drop",
		"Q: menu",
	}
	for _, line := range keys {
		b.WriteString(pad.Render(helpStyle(theme).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

// phaseLabel trusts the reducer to only ever emit the three known phases;
// anything else is a contract violation.
func phaseLabel(phase GamePhase) string {
	switch phase {
	case PhaseUnstarted:
		return "Press Enter to start"
	case PhaseInProgress:
		return "Playing"
	case PhaseOver:
		return "Game over"
	default:
		panic(fmt.Sprintf("unknown game phase %d", phase))
	}
}

func renderMiniPiece(kind BrickType, theme Theme, scale int) string {
	shape := canonicalShapes[kind]
	cellStyleEmpty := lipgloss.NewStyle()
	cellText := strings.Repeat(" ", cellWidth(scale))
	var b strings.Builder
	for y, row := range shape {
		if shapeRowEmpty(row) {
			continue
		}
		for repeat := 0; repeat < scale; repeat++ {
			for x := range row {
				if !shape[y][x] {
					b.WriteString(cellStyleEmpty.Render(cellText))
					continue
				}
				color := theme.PieceColors[int(kind)%len(theme.PieceColors)]
				b.WriteString(lipgloss.NewStyle().Background(color).Render(cellText))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func shapeRowEmpty(row []bool) bool {
	for _, occupied := range row {
		if occupied {
			return false
		}
	}
	return true
}

func minGameSize(scale int) (int, int) {
	width := boardWidth*cellWidth(scale) + 4
	height := boardHeight*scale + 4
	return width, height
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func warningStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderSyncLoader(dots int) string {
	if dots < 0 {
		dots = 0
	}
	if dots > 3 {
		dots = dots % 4
	}
	return "Syncing" + strings.Repeat(".", dots)
}

func clampScale(value int) int {
	if value < 1 {
		return 1
	}
	if value > 3 {
		return 3
	}
	return value
}

func clampVolumePercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func cellWidth(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return 2 * scale
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item)
		if width := lipgloss.Width(item); width > maxWidth {
			maxWidth = width
		}
	}
	if width := lipgloss.Width(footer); width > maxWidth {
		maxWidth = width
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, line := range lines {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(line)))
			b.WriteString("\n")
			continue
		}
		b.WriteString(lineStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}
