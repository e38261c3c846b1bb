package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driving"
)

// sourceStatus tracks the latest progress event for one source.
type sourceStatus struct {
	name   string
	status domain.ProgressStatus
	count  *int
}

// Model is the live-search view. It implements tea.Model.
type Model struct {
	styles  *Styles
	input   textinput.Model
	spinner spinner.Model

	queryService driving.QueryService
	ctx          context.Context
	opts         domain.SearchOptions

	// events carries progress and completion messages from the search
	// goroutine. Replaced on every new search.
	events chan tea.Msg

	// statuses lists sources in the order their first event arrived.
	statuses  []sourceStatus
	searching bool
	formatted string
	err       error

	width  int
	height int
}

// Ensure Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

// NewModel creates the live-search model.
func NewModel(ctx context.Context, queryService driving.QueryService, opts domain.SearchOptions) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter search query..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		styles:       DefaultStyles(),
		input:        ti,
		spinner:      sp,
		queryService: queryService,
		ctx:          ctx,
		opts:         opts,
		width:        80,
		height:       24,
	}
}

// Init initialises the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.searching {
				return m, nil
			}
			return m, tea.Batch(m.startSearch(query), m.spinner.Tick)
		}

	case progressReceived:
		m.applyProgress(msg.progress)
		return m, m.nextEvent()

	case searchCompleted:
		m.searching = false
		m.err = msg.err
		if msg.err == nil {
			m.formatted = m.queryService.FormatResults(msg.results, m.opts.MaxResults)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startSearch launches the orchestrator in a goroutine and arms the
// event reader. Progress events flow through m.events.
func (m *Model) startSearch(query string) tea.Cmd {
	m.searching = true
	m.statuses = nil
	m.formatted = ""
	m.err = nil

	events := make(chan tea.Msg, 16)
	m.events = events

	go func() {
		results, err := m.queryService.Search(m.ctx, query, m.opts, func(p domain.SearchProgress) {
			events <- progressReceived{progress: p}
		})
		events <- searchCompleted{results: results, err: err}
	}()

	return m.nextEvent()
}

// nextEvent reads one message from the search goroutine.
func (m *Model) nextEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// applyProgress records the latest event for a source, keeping sources
// in first-event order.
func (m *Model) applyProgress(p domain.SearchProgress) {
	for i := range m.statuses {
		if m.statuses[i].name == p.Source {
			m.statuses[i].status = p.Status
			m.statuses[i].count = p.ResultCount
			return
		}
	}
	m.statuses = append(m.statuses, sourceStatus{name: p.Source, status: p.Status, count: p.ResultCount})
}

// View renders the view.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Queryspan"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Normal.Render("Search: "))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.statuses) > 0 {
		b.WriteString("\n")
		for _, st := range m.statuses {
			b.WriteString(m.statusLine(st))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.formatted != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Normal.Render(m.formatted))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: search  ·  esc: quit"))
	b.WriteString("\n")

	return b.String()
}

// statusLine renders one source's progress line.
func (m *Model) statusLine(st sourceStatus) string {
	switch st.status {
	case domain.StatusCompleted:
		line := fmt.Sprintf("✓ %s: completed", st.name)
		if st.count != nil {
			line = fmt.Sprintf("✓ %s: %d results", st.name, *st.count)
		}
		return m.styles.Success.Render(line)
	case domain.StatusError:
		return m.styles.Error.Render(fmt.Sprintf("✗ %s: error", st.name))
	default:
		return m.styles.Muted.Render(fmt.Sprintf("%s %s: searching", m.spinner.View(), st.name))
	}
}
