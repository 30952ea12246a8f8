package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chartkit/pkg/selection"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listCheckedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// SeriesPickerModel - Interactive series selection
// =============================================================================

// SeriesPickerModel is the bubbletea model for choosing the visible series
// of a line chart.
type SeriesPickerModel struct {
	Keys      []string
	Selection selection.Set
	Cursor    int
	Height    int
	Offset    int
	Filter    string
	Done      bool
	Cancelled bool
}

// NewSeriesPickerModel creates a picker over keys with initial checked.
func NewSeriesPickerModel(keys, initial []string) SeriesPickerModel {
	return SeriesPickerModel{
		Keys:      keys,
		Selection: selection.New(initial...),
		Height:    15,
	}
}

func (m SeriesPickerModel) Init() tea.Cmd {
	return nil
}

func (m SeriesPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		visible := m.visible()
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.Done = true
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1, len(visible))
		case tea.KeyDown:
			m.move(1, len(visible))
		case tea.KeySpace:
			if m.Cursor < len(visible) {
				m.Selection = m.Selection.Toggle(visible[m.Cursor])
			}
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyCtrlA:
			if m.Selection.Len() == len(m.Keys) {
				m.Selection = selection.New()
			} else {
				m.Selection = selection.All(m.Keys)
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *SeriesPickerModel) move(delta, n int) {
	m.Cursor = max(0, min(m.Cursor+delta, n-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// visible returns the keys matching the filter, in dataset order.
func (m SeriesPickerModel) visible() []string {
	if m.Filter == "" {
		return m.Keys
	}
	needle := strings.ToLower(m.Filter)
	var out []string
	for _, k := range m.Keys {
		if strings.Contains(strings.ToLower(k), needle) {
			out = append(out, k)
		}
	}
	return out
}

func (m SeriesPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Series"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ctrl+a all  ⏎ done  esc cancel"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(listDimStyle.Render("filter: ") + StyleHighlight.Render(m.Filter))
	}
	b.WriteString("\n\n")

	visible := m.visible()
	end := min(m.Offset+m.Height, len(visible))
	for i := m.Offset; i < end; i++ {
		k := visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := listDimStyle.Render("[ ]")
		if m.Selection.Has(k) {
			box = listCheckedStyle.Render("[x]")
		}

		line := cursor + k
		switch {
		case i == m.Cursor:
			line = listSelectedStyle.Render(line)
		case m.Selection.Has(k):
			line = listNormalStyle.Render(line)
		default:
			line = listDimStyle.Render(line)
		}
		b.WriteString(box + " " + line + "\n")
	}
	if len(visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matches") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d selected of %d", m.Selection.Len(), len(m.Keys))))

	return b.String()
}

// Picked returns the chosen keys in dataset order.
func (m SeriesPickerModel) Picked() []string {
	var out []string
	for _, k := range m.Keys {
		if m.Selection.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// pickSeries runs the picker. ok is false when the user cancelled.
func pickSeries(keys, initial []string) ([]string, bool, error) {
	if len(keys) == 0 {
		return nil, true, nil
	}
	final, err := tea.NewProgram(NewSeriesPickerModel(keys, initial)).Run()
	if err != nil {
		return nil, false, fmt.Errorf("series picker: %w", err)
	}
	m := final.(SeriesPickerModel)
	if m.Cancelled || !m.Done {
		return nil, false, nil
	}
	return m.Picked(), true, nil
}
