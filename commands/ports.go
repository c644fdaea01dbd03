package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/espmon/espmon/internal/transport"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports on this host",
	RunE:  runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	ports, err := transport.ListPorts()
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}

	for _, p := range ports {
		if p.IsUSB {
			desc := p.Product
			if desc == "" {
				desc = fmt.Sprintf("USB %s:%s", p.VID, p.PID)
			}
			fmt.Printf("%-20s %s\n", p.Name, desc)
		} else {
			fmt.Println(p.Name)
		}
	}
	return nil
}
