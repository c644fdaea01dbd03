package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/espmon/espmon/internal/data/configfile"
	"github.com/espmon/espmon/internal/transport"
)

var sendCmd = &cobra.Command{
	Use:   "send <config-file>",
	Short: "Send a task configuration to the device and exit",
	Long: `Validates the given configuration file and transmits it over the serial
link using the device's START/payload/END framing.`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	initLogging()

	if portName == "" {
		return fmt.Errorf("--port is required (try 'espmon ports')")
	}

	cfg, err := configfile.Load(expandPath(args[0]))
	if err != nil {
		return err
	}

	port, err := transport.OpenPort(portName, baudRate)
	if err != nil {
		return err
	}
	defer port.Close()

	if err := transport.NewFrameSender(port).Send(cfg); err != nil {
		return err
	}

	fmt.Printf("Sent %d tasks to %s\n", len(cfg.Tasks), portName)
	return nil
}
