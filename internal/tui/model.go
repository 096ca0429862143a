package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"goalquest/internal/engine"
	"goalquest/internal/storage"
	"goalquest/internal/ui"
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	userID int64

	width  int
	height int

	user      *storage.User
	habits    []storage.Habit
	doneToday map[int64]bool

	selected int
	lastLog  string
	loading  bool
	err      error
}

type loadedMsg struct {
	user      *storage.User
	habits    []storage.Habit
	doneToday map[int64]bool
	err       error
}

type completedMsg struct {
	id  int64
	res *engine.CompletionResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, userID int64) boardModel {
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		userID:    userID,
		doneToday: map[int64]bool{},
		loading:   true,
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.svc.GetUser(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		habits, err := m.svc.ListHabits(m.ctx, m.userID, true)
		if err != nil {
			return loadedMsg{err: err}
		}
		ids, err := m.svc.TodayCompletions(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		done := map[int64]bool{}
		for _, id := range ids {
			done[id] = true
		}
		return loadedMsg{user: user, habits: habits, doneToday: done}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteHabit(m.ctx, id, m.userID)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.habits = msg.habits
		m.doneToday = msg.doneToday
		if m.selected >= len(m.habits) {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, engine.ErrAlreadyCompleted) {
				m.lastLog = "Already completed today."
			} else {
				m.lastLog = "Complete failed: " + msg.err.Error()
			}
			return m, nil
		}
		m.lastLog = fmt.Sprintf("+%d XP (streak %d, +%d gold)", msg.res.XPEarned, msg.res.NewStreak, msg.res.GoldEarned)
		if msg.res.Level.LeveledUp {
			m.lastLog += " " + ui.BadgeLevelUp
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.habits)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.selected < len(m.habits) {
				h := m.habits[m.selected]
				if m.doneToday[h.ID] {
					m.lastLog = "Already completed today."
					return m, nil
				}
				return m, m.completeCmd(h.ID)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return "Loading…"
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
	}

	var b strings.Builder

	tier := engine.TierForLevel(m.user.Level)
	b.WriteString(ui.Heading(ui.IconSword, fmt.Sprintf("%s — Level %d %s", m.user.Name, m.user.Level, ui.Muted.Render(tier.Name))))
	b.WriteString("\n")
	b.WriteString(ui.XPBar(m.user.CurrentXP, engine.XPForLevel(m.user.Level), 30))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s\n\n",
		ui.IconCoin, m.user.Gold,
		ui.IconGem, m.user.Gems,
		ui.StreakBadge(m.user.CurrentStreak)))

	if len(m.habits) == 0 {
		b.WriteString(ui.Muted.Render("No habits yet. Add one with 'gq habit add'.") + "\n")
	}
	for i, h := range m.habits {
		marker := "  "
		if m.doneToday[h.ID] {
			marker = ui.IconDone + " "
		}
		line := fmt.Sprintf("%s%s %s %s", marker, h.Title,
			ui.Muted.Render(fmt.Sprintf("(%s, %d xp)", h.Category, h.XPReward)),
			ui.StreakBadge(h.Streak))
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render("enter: complete  j/k: move  r: refresh  q: quit") + "\n")
	b.WriteString(ui.Muted.Render(m.lastLog) + "\n")
	return b.String()
}
