package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenScores
	screenConfig
	screenNameEntry
)

type tickMsg struct{}
type soundMsg struct{}
type syncTickMsg struct{}

type scoresLoadedMsg struct {
	scores []ScoreEntry
	err    error
}

type scoreUploadedMsg struct {
	err error
}

// tickInterval paces gravity at a nominal 7.5 ticks per second. All game
// timing, including the row-clear animation, is counted in these ticks.
const tickInterval = 133 * time.Millisecond

// Model is the bubbletea shell around the game state. Its message queue is
// the single ordered action stream: clock ticks and key presses arrive in
// delivery order and each one is folded through Apply before the next.
type Model struct {
	screen       Screen
	width        int
	height       int
	menuIndex    int
	configIndex  int
	themeIndex   int
	scoresOffset int
	config       Config
	scores       []ScoreEntry
	state        GameState
	nextBrick    RandomBrick
	nameInput    textinput.Model
	sound        *SoundEngine
	music        *MusicPlayer
	sync         *ScoreSync
	syncWarning  string
	syncLoading  bool
	syncDots     int
}

func NewModel() Model {
	config, _ := loadConfig()
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	sync := NewScoreSyncFromEnv(config.Sync)
	scores := []ScoreEntry{}
	if !sync.Enabled() {
		scores, _ = loadScores()
	}
	ctx, sampleRate, err := initAudioContext()
	if err != nil {
		DebugLogf("audio context init error: %v", err)
	}
	sound := NewSoundEngine(ctx, sampleRate, config.Sound)
	sound.SetVolume(volumeFromPercent(config.Volume))
	nameInput := textinput.New()
	nameInput.Placeholder = "AAA"
	nameInput.CharLimit = 12
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return Model{
		screen:     screenMenu,
		config:     config,
		scores:     scores,
		themeIndex: index,
		state:      NewGameState(),
		nextBrick:  uniformBrick(rng),
		nameInput:  nameInput,
		sound:      sound,
		sync:       sync,
		music:      NewMusicPlayer(ctx, volumeFromPercent(config.Volume)),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenGame {
			return m, nil
		}
		return m.updateTick()
	case soundMsg:
		return m, nil
	case syncTickMsg:
		if m.syncLoading {
			m.syncDots = (m.syncDots + 1) % 4
			return m, syncTickCmd()
		}
		return m, nil
	case scoresLoadedMsg:
		if msg.err != nil {
			DebugLogf("scores fetch error: %v", msg.err)
			m.syncWarning = "Offline: scores not synced."
			m.syncLoading = false
			return m, nil
		}
		if !m.sync.Enabled() {
			m.syncWarning = "Score sync is disabled."
		} else {
			m.syncWarning = ""
		}
		m.scores = msg.scores
		m.syncLoading = false
		return m, nil
	case scoreUploadedMsg:
		if msg.err != nil {
			DebugLogf("score upload error: %v", msg.err)
			m.syncWarning = "Offline: scores not synced."
			m.syncLoading = false
			return m, nil
		}
		m.syncWarning = ""
		m.syncLoading = false
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+=", "ctrl++":
			m.adjustScale(1)
			return m, nil
		case "ctrl+-", "ctrl+_":
			m.adjustScale(-1)
			return m, nil
		}
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenThemes:
			return m, m.updateThemes(msg)
		case screenScores:
			return m, m.updateScores(msg)
		case screenConfig:
			return m, m.updateConfig(msg)
		case screenNameEntry:
			return m, m.updateNameEntry(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenScores:
		return viewScores(m)
	case screenConfig:
		return viewConfig(m)
	case screenNameEntry:
		return viewNameEntry(m)
	default:
		return ""
	}
}

func (m Model) updateTick() (tea.Model, tea.Cmd) {
	if m.state.Phase != PhaseInProgress {
		return m, nil
	}
	prev := m.state
	m.state = Apply(prev, ActionTickClock, m.nextBrick)
	if m.state.Phase == PhaseOver {
		cmds := []tea.Cmd{m.setScreen(screenNameEntry)}
		m.nameInput.SetValue("")
		cmds = append(cmds, m.nameInput.Focus())
		if m.config.Sound {
			cmds = append(cmds, playSound(m.sound, SoundGameOver))
		}
		return m, tea.Batch(cmds...)
	}
	cmds := []tea.Cmd{tickCmd()}
	locked := prev.Falling.Spawned() && !m.state.Falling.Spawned()
	cleared := !prev.Clearing && m.state.Clearing
	if m.config.Sound {
		if cleared {
			cmds = append(cmds, playSound(m.sound, SoundLineClear))
		} else if locked {
			cmds = append(cmds, playSound(m.sound, SoundLock))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
			if m.config.Sound {
				cmd = playSound(m.sound, SoundMenuMove)
			}
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			if m.config.Sound {
				cmd = playSound(m.sound, SoundMenuMove)
			}
		}
	case "enter":
		if m.config.Sound {
			cmd = playSound(m.sound, SoundMenuSelect)
		}
		switch m.menuIndex {
		case 0:
			m.state = Apply(m.state, ActionStartGame, m.nextBrick)
			return tea.Batch(cmd, m.setScreen(screenGame), tickCmd())
		case 1:
			return tea.Batch(cmd, m.setScreen(screenThemes))
		case 2:
			m.scoresOffset = 0
			if m.sync.Enabled() {
				m.syncLoading = true
				m.syncDots = 0
				return tea.Batch(cmd, m.setScreen(screenScores), m.sync.FetchScoresCmd(), syncTickCmd())
			}
			m.syncWarning = ""
			return tea.Batch(cmd, m.setScreen(screenScores))
		case 3:
			return tea.Batch(cmd, m.setScreen(screenConfig))
		case 4:
			return tea.Quit
		}
	case "q", "esc":
		return tea.Quit
	}
	return cmd
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	prev := m.state
	switch msg.String() {
	case "left", "h":
		m.state = Apply(prev, ActionLeft, m.nextBrick)
		if m.config.Sound && m.state.Falling.X != prev.Falling.X {
			return playSound(m.sound, SoundMove)
		}
	case "right", "l":
		m.state = Apply(prev, ActionRight, m.nextBrick)
		if m.config.Sound && m.state.Falling.X != prev.Falling.X {
			return playSound(m.sound, SoundMove)
		}
	case "up", "x":
		m.state = Apply(prev, ActionUp, m.nextBrick)
		if m.config.Sound && m.state.Falling.Orientation != prev.Falling.Orientation {
			return playSound(m.sound, SoundRotate)
		}
	case "down", "j", " ":
		m.state = Apply(prev, ActionDown, m.nextBrick)
		if m.config.Sound && m.state.Falling.Y != prev.Falling.Y {
			return playSound(m.sound, SoundDrop)
		}
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.themeIndex > 0 {
			m.themeIndex--
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "down", "j":
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "enter":
		m.config.Theme = themes[m.themeIndex].Name
		_ = saveConfig(m.config)
		cmd := m.setScreen(screenMenu)
		if m.config.Sound {
			return tea.Batch(cmd, playSound(m.sound, SoundMenuSelect))
		}
		return cmd
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateScores(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "enter":
		cmd := m.setScreen(screenMenu)
		if m.config.Sound {
			return tea.Batch(cmd, playSound(m.sound, SoundMenuSelect))
		}
		return cmd
	case "up", "k":
		if m.scoresOffset > 0 {
			m.scoresOffset--
		}
	case "down", "j":
		max := len(m.scores) - scoresPageSize
		if max < 0 {
			max = 0
		}
		if m.scoresOffset < max {
			m.scoresOffset++
		}
	}
	return nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.configIndex > 0 {
			m.configIndex--
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "down", "j":
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "enter":
		switch m.configIndex {
		case 0:
			m.config.Sound = !m.config.Sound
			m.sound.SetEnabled(m.config.Sound)
			_ = saveConfig(m.config)
		case 1:
			m.config.Music = !m.config.Music
			_ = saveConfig(m.config)
			if m.config.Sound {
				return tea.Batch(m.syncMusicForScreen(), playSound(m.sound, SoundMenuSelect))
			}
			return m.syncMusicForScreen()
		case 2:
			m.adjustVolume(5)
		case 3:
			m.config.Shadow = !m.config.Shadow
			_ = saveConfig(m.config)
		case 4:
			m.config.Animations = !m.config.Animations
			_ = saveConfig(m.config)
		case 5:
			m.adjustScale(1)
		case 6:
			m.config.Sync = !m.config.Sync
			m.sync.SetEnabled(m.config.Sync)
			_ = saveConfig(m.config)
		}
		if m.config.Sound {
			return playSound(m.sound, SoundMenuSelect)
		}
	case "left", "h":
		if m.configIndex == 2 {
			m.adjustVolume(-5)
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
		if m.configIndex == 5 {
			m.adjustScale(-1)
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "right", "l":
		if m.configIndex == 2 {
			m.adjustVolume(5)
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
		if m.configIndex == 5 {
			m.adjustScale(1)
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateNameEntry(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			name = "AAA"
		}
		entry := ScoreEntry{
			Name:  name,
			Score: m.state.Score,
			When:  time.Now().Format("2006-01-02 15:04"),
		}
		if !m.sync.Enabled() {
			m.scores = insertScore(m.scores, entry)
			_ = saveScores(m.scores)
		}
		m.nameInput.Blur()
		m.scoresOffset = 0
		cmd := m.setScreen(screenScores)
		var cmds []tea.Cmd
		if m.sync.Enabled() {
			m.syncLoading = true
			m.syncDots = 0
			cmds = append(cmds, m.sync.UploadScoreCmd(entry))
			cmds = append(cmds, m.sync.FetchScoresCmd())
			cmds = append(cmds, syncTickCmd())
		}
		if len(cmds) == 0 {
			return cmd
		}
		cmds = append(cmds, cmd)
		return tea.Batch(cmds...)
	case tea.KeyEsc:
		m.nameInput.Blur()
		return m.setScreen(screenMenu)
	default:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return cmd
	}
}

var menuItems = []string{
	"Start Game",
	"Themes",
	"Scores",
	"Config",
	"Quit",
}

var configItems = []string{
	"Sound Effects",
	"Music",
	"Volume",
	"Shadow",
	"Line Clear Animation",
	"Game Scale",
	"Score Sync",
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func syncTickCmd() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg { return syncTickMsg{} })
}

func playSound(engine *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if engine != nil {
			engine.Play(event)
		}
		return soundMsg{}
	}
}

func (m *Model) adjustScale(delta int) {
	newScale := clampScale(m.config.Scale + delta)
	if newScale != m.config.Scale {
		m.config.Scale = newScale
		_ = saveConfig(m.config)
	}
}

func (m *Model) adjustVolume(delta int) {
	newVolume := clampVolumePercent(m.config.Volume + delta)
	if newVolume == m.config.Volume {
		return
	}
	m.config.Volume = newVolume
	if m.sound != nil {
		m.sound.SetVolume(volumeFromPercent(newVolume))
	}
	if m.music != nil {
		m.music.SetVolume(volumeFromPercent(newVolume))
	}
	_ = saveConfig(m.config)
}

func volumeFromPercent(value int) float64 {
	return float64(clampVolumePercent(value)) / 100
}

func (m *Model) setScreen(screen Screen) tea.Cmd {
	m.screen = screen
	return m.syncMusicForScreen()
}

func (m *Model) syncMusicForScreen() tea.Cmd {
	if m.music == nil {
		return nil
	}
	if !m.config.Music {
		m.music.Stop()
		return nil
	}
	if m.screen == screenGame {
		m.music.StartGame()
		return nil
	}
	m.music.Stop()
	return nil
}
