package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/tasktrack/internal/core"
	"github.com/valter-silva-au/tasktrack/internal/session"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

var (
	browseTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	browseInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	browseHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// browseModel is a read-only view of one task file that can be re-sorted
// from the keyboard.
type browseModel struct {
	path     string
	source   *core.Collection
	shown    *core.Collection
	skipped  int
	keys     core.SortKeys
	maxSteps int
}

func newBrowseModel(path string, source *core.Collection, skipped, maxSteps int) browseModel {
	m := browseModel{
		path:     path,
		source:   source,
		skipped:  skipped,
		keys:     core.SortKeys{Primary: models.FieldID, Secondary: models.FieldID},
		maxSteps: maxSteps,
	}
	m.shown = source.Copy()
	return m
}

// resort sorts a fresh copy of the source, so the result depends only on
// the current keys.
func (m browseModel) resort() browseModel {
	m.shown = m.source.Copy()
	m.shown.Sort(m.keys, m.maxSteps)
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "0", "1", "2", "3", "4", "5", "6", "7":
		m.keys.Primary = models.Field(s[0] - '0')
		return m.resort(), nil
	case "s":
		m.keys.Secondary = (m.keys.Secondary + 1) % models.FieldCount
		return m.resort(), nil
	case "r":
		m.keys.ReversePrimary = !m.keys.ReversePrimary
		return m.resort(), nil
	case "R":
		m.keys.ReverseSecondary = !m.keys.ReverseSecondary
		return m.resort(), nil
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(browseTitleStyle.Render(" " + m.path + " "))
	b.WriteString("\n\n")
	b.WriteString(session.RenderTable(m.shown, "  No tasks."))
	b.WriteString("\n\n")

	info := fmt.Sprintf("sorted by %s%s, then %s%s",
		m.keys.Primary, direction(m.keys.ReversePrimary),
		m.keys.Secondary, direction(m.keys.ReverseSecondary))
	if m.skipped > 0 {
		info += fmt.Sprintf(" | %d line(s) skipped", m.skipped)
	}
	b.WriteString(browseInfoStyle.Render(info))
	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("0-7: primary key | s: secondary key | r/R: reverse | q: quit"))
	return b.String()
}

func direction(reverse bool) string {
	if reverse {
		return " (desc)"
	}
	return ""
}

var browseCmd = &cobra.Command{
	Use:   "browse <file>",
	Short: "Browse a task file in a sortable table",
	Long: `Open a task file read-only in a terminal table.

Press 0-7 to pick the primary sort key, s to cycle the secondary key,
r and R to reverse them, and q to quit.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskFiles,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil || Config == nil {
			return fmt.Errorf("task store not initialized")
		}
		if err := core.ValidatePath(args[0]); err != nil {
			return err
		}

		tasks, issues, err := Store.Load(args[0])
		if err != nil {
			return err
		}

		p := tea.NewProgram(newBrowseModel(args[0], tasks, len(issues), Config.Sort.MaxSteps), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
