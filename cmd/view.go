package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/backend"
	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/tui"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [circuit.qasm]",
		Short: "Execute a circuit and browse the results interactively",
		Long: `View executes the circuit like run does, then opens an interactive
viewer over the outcome histograms instead of printing them. Tab switches
between the table and bar-chart panes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			req, err := buildRequest(cmd, args)
			if err != nil {
				return err
			}

			simulated, remote := sessions(logger, runRemoteFlag, runTimeoutFlag, runRetriesFlag)
			cmp, err := backend.Compare(cmd.Context(), simulated, remote, req)
			if err != nil {
				return err
			}

			title := "demo"
			if len(args) == 1 {
				title = filepath.Base(args[0])
			}
			return tui.Show(title, cmp)
		},
	}
	addRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
