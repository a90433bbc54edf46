// Package dashui provides the Bubble Tea journal dashboard.
package dashui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/moodpeek/internal/calendar"
	"github.com/verte-zerg/moodpeek/internal/insights"
	"github.com/verte-zerg/moodpeek/internal/model"
)

const (
	tabWeek = iota
	tabCalendar
	tabEntries
	tabTrend
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	loggedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6FBF73"))
	streakStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	outsideStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea dashboard.
type Model struct {
	lister insights.EntryLister
	cfg    model.ReportConfig
	today  func() calendar.Date

	entries []model.Entry
	day     calendar.Date
	report  insights.Report
	errMsg  string

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	entryTable table.Model

	width  int
	height int

	jumpMode  bool
	jumpInput textinput.Model
	jumpError string
}

// NewModel constructs a dashboard for the week of cfg.Day, or today when it
// is zero. Entries are loaded immediately.
func NewModel(lister insights.EntryLister, cfg model.ReportConfig) *Model {
	return newModel(lister, cfg, calendar.Today)
}

func newModel(lister insights.EntryLister, cfg model.ReportConfig, today func() calendar.Date) *Model {
	m := &Model{
		lister: lister,
		cfg:    cfg,
		today:  today,
		day:    cfg.Day,
		tabs:   []string{"Week", "Calendar", "Entries", "Trend"},
	}
	if m.day.IsZero() {
		m.day = today()
	}
	m.jumpInput = textinput.New()
	m.jumpInput.Prompt = "Date: "
	m.jumpInput.Placeholder = "YYYY-MM-DD"
	m.jumpInput.CharLimit = len(calendar.KeyLayout)
	m.jumpInput.Cursor.SetMode(cursor.CursorBlink)
	m.entryTable = buildEntryTable(nil, 80, 1)
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.jumpMode {
			return m.updateJump(msg)
		}
		if m.activeTab == tabEntries {
			m.entryTable.Focus()
		} else {
			m.entryTable.Blur()
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "[":
			m.setDay(m.day.AddDays(-7))
			return m, nil
		case "]":
			m.setDay(m.day.AddDays(7))
			return m, nil
		case "{":
			m.setDay(calendar.AddMonths(m.day, -1))
			return m, nil
		case "}":
			m.setDay(calendar.AddMonths(m.day, 1))
			return m, nil
		case "t":
			m.setDay(m.today())
			return m, nil
		case "r":
			m.reload()
			return m, nil
		case "/":
			m.jumpMode = true
			m.jumpError = ""
			m.jumpInput.SetValue(m.day.Key())
			return m, m.jumpInput.Focus()
		case "g", "home":
			if m.activeTab == tabEntries {
				m.entryTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabEntries {
				m.entryTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabEntries {
				var cmd tea.Cmd
				m.entryTable, cmd = m.entryTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.jumpMode {
		return fitLines(m.renderJumpModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Day returns the selected reference day.
func (m *Model) Day() calendar.Date {
	return m.day
}

// reload fetches entries from the lister. Navigation reuses the cached slice.
func (m *Model) reload() {
	entries, err := m.lister.ListEntries(context.Background(), model.ListFilter{})
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load entries: %v", err)
		return
	}
	m.errMsg = ""
	m.entries = entries
	m.recompute()
}

func (m *Model) setDay(day calendar.Date) {
	m.day = day
	m.recompute()
}

func (m *Model) recompute() {
	cfg := m.cfg
	cfg.Day = m.day
	m.report = insights.Compute(m.entries, cfg, m.today())
	m.renderTabContents()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	promptWidth := lipgloss.Width(m.jumpInput.Prompt)
	m.jumpInput.Width = max(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabEntries {
		m.entryTable.Focus()
	} else {
		m.entryTable.Blur()
	}
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewports[tabWeek].SetContent(renderWeek(m.report, width))
	m.viewports[tabCalendar].SetContent(renderCalendar(m.report))
	m.viewports[tabTrend].SetContent(renderTrend(m.report, width))
	m.entryTable = buildEntryTable(m.report.WeekEntries, width, bodyHeight)
	if m.activeTab == tabEntries {
		m.entryTable.Focus()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	today := "not logged today"
	if insights.HasEntryOn(m.entries, m.today()) {
		today = "logged today"
	}
	summary := fmt.Sprintf("%s  ·  %d entries  ·  streak %d  ·  %s",
		insights.WeekHeading(m.day), len(m.entries), m.report.Streaks.Current, today)
	return tabs + "\n" + padLines(headerStyle.Render(truncateLine(summary, m.width)), m.width)
}

func (m *Model) renderHelp() string {
	help := "Tabs: h/l  Week: [/]  Month: {/}  Today: t  Jump: /  Reload: r  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabEntries {
		if len(m.report.WeekEntries) == 0 {
			return fitLines("No entries this week.", m.width, height)
		}
		view := mutedStyle.Render(m.entryTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.jumpMode = false
		m.jumpError = ""
		m.jumpInput.Blur()
		return m, nil
	case tea.KeyEnter:
		day, ok := calendar.ParseKey(strings.TrimSpace(m.jumpInput.Value()))
		if !ok {
			m.jumpError = "Date must be YYYY-MM-DD"
			return m, nil
		}
		m.jumpMode = false
		m.jumpError = ""
		m.jumpInput.Blur()
		m.setDay(day)
		return m, nil
	}
	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(msg)
	return m, cmd
}

func (m *Model) renderJumpModal() string {
	body := []string{
		cardValueStyle.Render("Jump to date"),
		m.jumpInput.View(),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.jumpError != "" {
		body = append(body, errorStyle.Render(m.jumpError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
