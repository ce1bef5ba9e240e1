package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display session activity metrics",
	Long: `Display counters derived from the session event log.

Metrics include sessions started, files loaded and saved, lines skipped
while loading, task changes, rejected input, and queries by command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (event log may be disabled)")
		}

		sinceTime, err := parseSinceDuration(metricsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		if metricsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Metrics (since %s)\n\n", sinceTime.Format("2006-01-02"))
		rows := []struct {
			label string
			value int
		}{
			{"Events recorded:", metrics.EventCount},
			{"Sessions:", metrics.Sessions},
			{"Files loaded:", metrics.FilesLoaded},
			{"Files saved:", metrics.FilesSaved},
			{"File failures:", metrics.FileFailures},
			{"Lines skipped:", metrics.LinesSkipped},
			{"Tasks added:", metrics.TasksAdded},
			{"Tasks edited:", metrics.TasksEdited},
			{"Tasks removed:", metrics.TasksRemoved},
			{"Tasks rejected:", metrics.TasksRejected},
			{"Commands rejected:", metrics.CommandsRejected},
		}
		for _, r := range rows {
			fmt.Fprintf(out, "  %-24s %d\n", r.label, r.value)
		}

		if len(metrics.QueriesByCommand) > 0 {
			fmt.Fprintln(out, "\n  Queries by command:")
			commands := make([]string, 0, len(metrics.QueriesByCommand))
			for c := range metrics.QueriesByCommand {
				commands = append(commands, c)
			}
			sort.Strings(commands)
			for _, c := range commands {
				fmt.Fprintf(out, "    %-20s %d\n", c+":", metrics.QueriesByCommand[c])
			}
		}

		if metrics.OldestEvent != nil {
			fmt.Fprintf(out, "\n  %-24s %s\n", "Oldest event:", metrics.OldestEvent.Format(time.RFC3339))
		}
		if metrics.NewestEvent != nil {
			fmt.Fprintf(out, "  %-24s %s\n", "Newest event:", metrics.NewestEvent.Format(time.RFC3339))
		}

		return nil
	},
}

// parseSinceDuration parses a human-friendly duration string like "7d", "30d",
// or "24h" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
