package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labyrinth/pkg/grid"
	pkgio "github.com/matzehuels/labyrinth/pkg/io"
	"github.com/matzehuels/labyrinth/pkg/pipeline"
	"github.com/matzehuels/labyrinth/pkg/render/text"
)

var (
	viewMazeStyle = lipgloss.NewStyle().Foreground(colorWhite)
	viewHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// chromeLines is the number of rows View uses besides the maze itself.
const chromeLines = 4

// viewCommand creates the view command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		cellWidth int
		noTUI     bool
	)

	cmd := &cobra.Command{
		Use:   "view <maze.toml|maze.json>",
		Short: "Browse a maze as ASCII art in the terminal",
		Long: `Open a maze definition in a scrollable terminal viewer.

Keys: arrows or hjkl scroll, pgup/pgdown page, g/G jump to top/bottom,
i toggles maze statistics, q quits. --print writes the ASCII art to stdout
instead.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDefinitionFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := pkgio.Import(args[0])
			if err != nil {
				return err
			}
			art := text.Render(g, text.Options{CellWidth: cellWidth})
			if noTUI {
				_, err := fmt.Fprint(cmd.OutOrStdout(), art)
				return err
			}

			loggerFromContext(cmd.Context()).Debug("opening viewer", "file", args[0], "grid", g)
			_, err = tea.NewProgram(newViewModel(args[0], g, art), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&cellWidth, "cell-width", pipeline.DefaultCellWidth, "characters per cell")
	cmd.Flags().BoolVar(&noTUI, "print", false, "print the maze and exit instead of opening the viewer")

	return cmd
}

// =============================================================================
// viewModel - scrollable maze viewer
// =============================================================================

// viewModel scrolls a pre-rendered ASCII maze in both directions.
type viewModel struct {
	title string
	stats [][]string
	lines []string
	wide  int // longest line

	width, height int // visible maze area
	top, left     int
	showStats     bool
}

func newViewModel(title string, g *grid.Grid, art string) viewModel {
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	wide := 0
	for _, l := range lines {
		wide = max(wide, len(l))
	}
	return viewModel{
		title:  title,
		stats:  mazeStats(g),
		lines:  lines,
		wide:   wide,
		width:  80,
		height: 24 - chromeLines,
	}
}

// mazeStats summarizes g for the info panel.
func mazeStats(g *grid.Grid) [][]string {
	deadEnds, junctions := 0, 0
	for c := range g.Cells() {
		switch n := c.Walls.Count(); {
		case n == 1:
			deadEnds++
		case n >= 3:
			junctions++
		}
	}
	return [][]string{
		{"size", fmt.Sprintf("%d×%d", g.Width(), g.Height())},
		{"cells", strconv.Itoa(g.Len())},
		{"passages", strconv.Itoa(len(g.Passages()))},
		{"dead ends", strconv.Itoa(deadEnds)},
		{"junctions", strconv.Itoa(junctions)},
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.top--
		case "down", "j":
			m.top++
		case "left", "h":
			m.left -= 4
		case "right", "l":
			m.left += 4
		case "pgup", "b":
			m.top -= m.height
		case "pgdown", " ", "f":
			m.top += m.height
		case "home", "g":
			m.top, m.left = 0, 0
		case "end", "G":
			m.top = len(m.lines)
		case "i":
			m.showStats = !m.showStats
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-chromeLines, 1)
	}
	m.clamp()
	return m, nil
}

// clamp keeps the scroll offsets inside the maze.
func (m *viewModel) clamp() {
	m.top = max(min(m.top, len(m.lines)-m.height), 0)
	m.left = max(min(m.left, m.wide-m.width), 0)
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("↑/↓/←/→ scroll  g/G top/bottom  i info  q quit"))
	b.WriteString("\n\n")

	end := min(m.top+m.height, len(m.lines))
	visible := make([]string, 0, end-m.top)
	for _, line := range m.lines[m.top:end] {
		visible = append(visible, viewMazeStyle.Render(cut(line, m.left, m.width)))
	}
	maze := strings.Join(visible, "\n")

	if m.showStats {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Rows(m.stats...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if col == 0 {
					return lipgloss.NewStyle().Foreground(colorGray)
				}
				return lipgloss.NewStyle().Foreground(colorCyan)
			})
		maze = lipgloss.JoinHorizontal(lipgloss.Top, maze, "  ", t.Render())
	}
	b.WriteString(maze)
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render(fmt.Sprintf("  rows %d-%d of %d", m.top+1, end, len(m.lines))))

	return b.String()
}

// cut returns at most n bytes of s starting at offset. The text formatter
// only emits ASCII, so byte offsets are column offsets.
func cut(s string, offset, n int) string {
	if offset >= len(s) {
		return ""
	}
	s = s[offset:]
	if len(s) > n {
		s = s[:n]
	}
	return s
}
