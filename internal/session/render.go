package session

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/valter-silva-au/tasktrack/internal/core"
	"github.com/valter-silva-au/tasktrack/pkg/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusStyles = map[models.StatusCode]lipgloss.Style{
		models.StatusFailed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		models.StatusReceived:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		models.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

// TableHeaders are the column titles of a rendered task table. Dates and
// times share a column.
var TableHeaders = []string{"ID", "Received", "Due", "Executor", "Task", "Status"}

// TableRows converts tasks into display rows. Canonical encodings are turned
// back into their entry forms here and nowhere else.
func TableRows(tasks []models.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		f := t.HumanFields()
		rows = append(rows, []string{
			f[models.FieldID],
			f[models.FieldReceivedDate] + " " + f[models.FieldReceivedTime],
			f[models.FieldDueDate] + " " + f[models.FieldDueTime],
			f[models.FieldExecutor],
			f[models.FieldDescription],
			statusStyles[t.Status].Render(f[models.FieldStatus]),
		})
	}
	return rows
}

// RenderTable draws c as a bordered table, or returns empty when c has no
// tasks.
func RenderTable(c *core.Collection, empty string) string {
	if c == nil || c.Len() == 0 {
		return empty
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(TableHeaders...).
		Rows(TableRows(c.Tasks())...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
