package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/espmon/espmon/internal/data/configfile"
)

var checkCmd = &cobra.Command{
	Use:   "check <config-file>",
	Short: "Validate a task configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	summary, err := checkConfig(expandPath(args[0]))
	if err != nil {
		return err
	}
	fmt.Print(summary)
	return nil
}

// checkConfig loads and validates a config file, returning a printable summary.
func checkConfig(path string) (string, error) {
	cfg, err := configfile.Load(path)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d tasks OK\n", path, len(cfg.Tasks))
	for _, task := range cfg.Tasks {
		fmt.Fprintf(&b, "  %-20s priority %2d  every %5d ms  [%s]\n",
			task.Name, task.Priority, task.PeriodMs, strings.Join(task.Sensors, ", "))
	}
	return b.String(), nil
}
