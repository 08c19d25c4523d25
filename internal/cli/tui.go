package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/arclabs/breadboard/pkg/circuit"
	"github.com/arclabs/breadboard/pkg/store"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for browsing stored designs.
func (c *CLI) tuiCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse stored designs interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd, backend)
			if err != nil {
				return err
			}
			defer s.Close()

			designs, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(designs) == 0 {
				printInfo("No stored designs")
				printNextStep("Save one first", fmt.Sprintf("%s designs save <name> <file>", appName))
				return nil
			}

			model := NewDesignListModel(designs)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			if m, ok := final.(DesignListModel); ok && m.Selected != nil {
				printDesignSummary(*m.Selected)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "store", "", "storage backend: file (default) or mongo")
	return cmd
}

// printDesignSummary prints the chosen design after the TUI exits.
func printDesignSummary(d store.Design) {
	printNewline()
	fmt.Println(StyleTitle.Render(d.Name))

	circ := circuit.New()
	circ.UpdateFromData(d.Data)

	printKeyValue("Components", fmt.Sprintf("%d", len(circ.Components())))
	printKeyValue("Connections", fmt.Sprintf("%d", len(circ.Connections())))
	printKeyValue("Updated", d.UpdatedAt.Local().Format("2006-01-02 15:04"))
	for typ, n := range circ.CountByType() {
		printDetail("%d × %s", n, typ)
	}
	for _, issue := range circ.Verify() {
		printWarning("%s", issue)
	}
	printNewline()
	printNextStep("Load it", fmt.Sprintf("%s designs load %s", appName, d.Name))
}

// =============================================================================
// DesignListModel - Interactive design selection
// =============================================================================

// DesignListModel is the bubbletea model for interactive design selection.
type DesignListModel struct {
	Designs  []store.Design
	Cursor   int
	Selected *store.Design
	Height   int
	Offset   int
}

// NewDesignListModel creates a new design list model.
func NewDesignListModel(designs []store.Design) DesignListModel {
	return DesignListModel{
		Designs: designs,
		Height:  15,
	}
}

func (m DesignListModel) Init() tea.Cmd {
	return nil
}

func (m DesignListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Designs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Designs[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DesignListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Stored Designs"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Designs) {
		end = len(m.Designs)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		d := m.Designs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			d.Name,
			fmt.Sprintf("%d", len(d.Data.Components)),
			formatRelativeTime(d.UpdatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Design", "Parts", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Designs))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
