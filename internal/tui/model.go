// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkurev/typedrill/internal/content"
	"github.com/mkurev/typedrill/internal/engine"
	"github.com/mkurev/typedrill/internal/model"
	"github.com/mkurev/typedrill/internal/store"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Bold(true)
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// SetupProvider builds the setup for each new run. Assembled modes
// regenerate their text on every call; lesson mode advances through the
// lesson sequence.
type SetupProvider func(ctx context.Context) (content.Setup, error)

// Model implements the Bubble Tea typing UI.
type Model struct {
	store   *store.Store
	provide SetupProvider

	setup   content.Setup
	session *engine.Session

	width  int
	height int

	ticking bool
	done    bool
	result  model.ResultRecord
	savedID int64

	lastResult *model.ResultRecord
}

// NewModel constructs a typing TUI model with its first session ready.
func NewModel(st *store.Store, provide SetupProvider) (*Model, error) {
	m := &Model{
		store:   st,
		provide: provide,
	}
	if err := m.nextSession(); err != nil {
		return nil, err
	}
	m.loadLastResult()
	return m, nil
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
		return m, nil
	case tickMsg:
		return m.handleTick()
	case tea.KeyMsg:
		if m.done {
			return m.handleResultKey(msg)
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			if m.session.Backspace() {
				m.finishSession()
				return m, nil
			}
			return m.afterInput()
		case tea.KeySpace:
			return m.handleRunes([]rune{' '})
		case tea.KeyRunes:
			return m.handleRunes(msg.Runes)
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) handleRunes(runes []rune) (tea.Model, tea.Cmd) {
	for _, r := range runes {
		if m.session.Key(r) {
			m.finishSession()
			return m, nil
		}
	}
	return m.afterInput()
}

// afterInput starts the clock once the session becomes active.
func (m *Model) afterInput() (tea.Model, tea.Cmd) {
	if m.session.Active() && !m.ticking {
		m.ticking = true
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.session.Active() {
		m.ticking = false
		return m, nil
	}
	if m.session.Tick() {
		m.finishSession()
		m.ticking = false
		return m, nil
	}
	return m, tickCmd()
}

func (m *Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC, msg.Type == tea.KeyEsc, msg.String() == "q":
		return m, tea.Quit
	case msg.Type == tea.KeyEnter:
		if err := m.nextSession(); err != nil {
			logErrf("failed to prepare next session: %v\n", err)
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) nextSession() error {
	setup, err := m.provide(context.Background())
	if err != nil {
		return err
	}
	session, err := engine.New(setup.Text, setup.Config)
	if err != nil {
		return err
	}
	m.setup = setup
	m.session = session
	m.ticking = false
	m.done = false
	m.savedID = 0
	return nil
}

func (m *Model) finishSession() {
	m.done = true
	m.ticking = false
	m.result = m.session.Result()

	ctx := context.Background()
	id, err := m.store.InsertResult(ctx, m.result)
	if err != nil {
		logErrf("failed to save result: %v\n", err)
	} else {
		m.savedID = id
	}
	rec := m.result
	m.lastResult = &rec
}

func (m *Model) loadLastResult() {
	ctx := context.Background()
	results, err := m.store.ListResults(ctx, model.StatsConfig{Filter: model.FilterAll, Last: 1}, true)
	if err != nil {
		logErrf("failed to load last result: %v\n", err)
		return
	}
	if len(results) > 0 {
		m.lastResult = &results[0]
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return m.viewResult()
	}
	return m.viewTyping()
}

func (m *Model) viewTyping() string {
	chars := m.session.Chars()
	if len(chars) == 0 {
		return ""
	}
	styledRunes := buildStyledRunes(chars, m.session.Cursor())
	header := titleStyle.Render(m.setup.Title)
	if m.width == 0 || m.height == 0 {
		return header + "\n\n" + renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	body := header + "\n\n" + wrapped
	centered := lipgloss.NewStyle().Width(contentWidth).Render(body)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, centered)
	}
	bodyHeight := m.height - 1
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, centered)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return placed + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	metrics := m.session.Metrics()
	chars := m.session.Chars()

	segments := make([]string, 0, 4)
	if metrics.Countdown {
		segments = append(segments, fmt.Sprintf("%ds left", metrics.Seconds))
	} else {
		progress := 0
		if len(chars) > 0 {
			progress = m.session.Cursor() * 100 / len(chars)
		}
		segments = append(segments, fmt.Sprintf("Progress %d%%", progress))
	}
	segments = append(segments, fmt.Sprintf("%d WPM · %d%%", metrics.WPM, metrics.Accuracy))
	if m.lastResult != nil {
		segments = append(segments, fmt.Sprintf("Last %d WPM · %.0f%%", m.lastResult.WPM, m.lastResult.Accuracy))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) viewResult() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.setup.Title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "WPM: %d\n", m.result.WPM)
	fmt.Fprintf(&b, "Accuracy: %.0f%%\n", m.result.Accuracy)
	fmt.Fprintf(&b, "Errors: %d\n", m.result.Errors)
	fmt.Fprintf(&b, "Duration: %ds\n", m.result.DurationSeconds)
	if m.savedID == 0 {
		b.WriteString("\nResult was not saved.\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter: next session  q: quit"))
	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
