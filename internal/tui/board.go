package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/getaltair/altair-sub003/internal/engine"
	"github.com/getaltair/altair-sub003/internal/storage"
)

type boardModel struct {
	ctx   context.Context
	svc   *engine.Service
	owner string

	width  int
	height int

	view *engine.TodayView

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	view *engine.TodayView
	err  error
}

type actedMsg struct {
	verb string
	q    *storage.Quest
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service, owner string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		owner:   owner,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		view, err := m.svc.TodayView(m.ctx, m.owner, m.svc.Today())
		return loadedMsg{view: view, err: err}
	}
}

func (m boardModel) actCmd(verb, id string, fn func(ctx context.Context, owner, id string) (*storage.Quest, error)) tea.Cmd {
	return func() tea.Msg {
		q, err := fn(m.ctx, m.owner, id)
		return actedMsg{verb: verb, q: q, err: err}
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
		m.view = msg.view
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case actedMsg:
		if msg.err != nil {
			m.lastLog = msg.verb + " failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("%s %q.", msg.verb, msg.q.Title)
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
			rows := m.rows()
			if m.selected < len(rows)-1 {
				m.selected++
			}
			return m, nil
		case "s":
			row := m.selectedRow()
			if row == nil {
				return m, nil
			}
			if row.status != string(engine.StatusBacklog) {
				m.lastLog = "Only backlog quests can be started."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Starting %q…", row.title)
			return m, m.actCmd("Started", row.id, m.svc.StartQuest)
		case "c", " ":
			row := m.selectedRow()
			if row == nil {
				return m, nil
			}
			if row.status == string(engine.StatusCompleted) {
				m.lastLog = "Already completed."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %q…", row.title)
			return m, m.actCmd("Completed", row.id, m.svc.CompleteQuest)
		case "p":
			row := m.selectedRow()
			if row == nil {
				return m, nil
			}
			if row.status != string(engine.StatusActive) {
				m.lastLog = "Only the active quest can be parked."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Parking %q…", row.title)
			return m, m.actCmd("Parked", row.id, m.svc.ParkQuest)
		}
	}
	return m, nil
}

type boardRow struct {
	id      string
	title   string
	status  string
	energy  int
	section string
}

func (m boardModel) rows() []boardRow {
	if m.view == nil {
		return nil
	}
	var out []boardRow
	if m.view.Active != nil {
		out = append(out, questRow(m.view.Active, "now"))
	}
	for i := range m.view.DueFromRoutines {
		q := &m.view.DueFromRoutines[i]
		if q.Status == string(engine.StatusCompleted) || q.Status == string(engine.StatusActive) {
			continue
		}
		out = append(out, questRow(q, "routines"))
	}
	for i := range m.view.Backlog {
		q := &m.view.Backlog[i]
		if q.RoutineID != nil && inToday(m.view.DueFromRoutines, q.ID) {
			continue
		}
		out = append(out, questRow(q, "backlog"))
	}
	for i := range m.view.CompletedToday {
		out = append(out, questRow(&m.view.CompletedToday[i], "done"))
	}
	return out
}

func questRow(q *storage.Quest, section string) boardRow {
	return boardRow{id: q.ID, title: q.Title, status: q.Status, energy: q.Energy, section: section}
}

func inToday(qs []storage.Quest, id string) bool {
	for i := range qs {
		if qs[i].ID == id {
			return true
		}
	}
	return false
}

func (m *boardModel) selectedRow() *boardRow {
	rows := m.rows()
	if m.selected >= len(rows) {
		m.selected = len(rows) - 1
	}
	if m.selected < 0 || len(rows) == 0 {
		return nil
	}
	row := rows[m.selected]
	return &row
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.view == nil {
		return "Altair — loading…"
	}
	b := m.view.Budget
	bar := progressBar(b.Spent, b.Budget, 30)
	over := ""
	if b.OverBudget {
		over = " OVER"
	}
	return fmt.Sprintf("Altair | %s | Energy %d/%d %s%s", m.view.Day, b.Spent, b.Budget, bar, over)
}

func (m boardModel) renderSidebar() string {
	if m.view == nil {
		return "Budget\n\nLoading…"
	}
	b := m.view.Budget
	lines := []string{"Budget"}
	lines = append(lines, fmt.Sprintf("- budget: %d", b.Budget))
	lines = append(lines, fmt.Sprintf("- spent: %d", b.Spent))
	lines = append(lines, fmt.Sprintf("- remaining: %d", b.Remaining))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- s: start")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- p: park")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	rows := m.rows()
	var out []string
	section := ""
	if len(rows) == 0 {
		return "Today\n\n(nothing planned — capture something or start a quest)"
	}
	for i, row := range rows {
		if row.section != section {
			if section != "" {
				out = append(out, "")
			}
			section = row.section
			out = append(out, sectionTitle(section))
		}
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		out = append(out, fmt.Sprintf("%s%s (energy=%d, status=%s)", cursor, row.title, row.energy, row.status))
	}
	return strings.Join(out, "\n")
}

func sectionTitle(section string) string {
	switch section {
	case "now":
		return "Now"
	case "routines":
		return "Due from routines"
	case "backlog":
		return "Backlog"
	case "done":
		return "Completed today"
	default:
		return section
	}
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
