package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/netscene/pkg/query"
	"github.com/matzehuels/netscene/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EntityListModel - Interactive entity browser
// =============================================================================

// EntityListModel is the bubbletea model for browsing the entities of a
// view. Enter toggles a detail pane listing the links that touch the
// selected device or base.
type EntityListModel struct {
	Entries []entityEntry
	Cursor  int
	Height  int
	Offset  int
	Detail  bool

	view    scene.View
	querier *query.Querier
}

// NewEntityListModel creates a browser over entries of view v in s.
func NewEntityListModel(s *scene.Scene, v scene.View, entries []entityEntry) EntityListModel {
	return EntityListModel{
		Entries: entries,
		Height:  15,
		view:    v,
		querier: query.New(s, nil),
	}
}

func (m EntityListModel) Init() tea.Cmd {
	return nil
}

func (m EntityListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EntityListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Entities in " + string(m.view)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("  no entities"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, m.Entries[i].row()...))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Kind", "ID", "Label", "Base", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col >= 4 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	if m.Detail {
		b.WriteString("\n\n")
		b.WriteString(m.detail())
	}
	return b.String()
}

// detail renders the links of the selected entry.
func (m EntityListModel) detail() string {
	e := m.Entries[m.Cursor]
	links := connections(m.querier, m.view, e)
	head := StyleHighlight.Render(string(e.Kind)+" "+e.ID) + " "
	switch {
	case e.Kind != scene.KindDevice && e.Kind != scene.KindBase:
		return head + listDimStyle.Render(e.Detail)
	case len(links) == 0:
		return head + listDimStyle.Render("no links")
	}
	return head + listDimStyle.Render(fmt.Sprintf("%d links: ", len(links))) + StyleValue.Render(strings.Join(links, ", "))
}
