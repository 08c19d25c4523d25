package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arclabs/breadboard/pkg/circuit"
)

// verifyCommand creates the verify command for reporting wiring problems.
func (c *CLI) verifyCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Report wiring problems in a circuit file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			circ, err := circuit.ReadFile(args[0])
			if err != nil {
				return err
			}

			issues := circ.Verify()
			if len(issues) == 0 {
				printSuccess("No wiring problems found")
				printStats(len(circ.Components()), len(circ.Connections()), false)
				return nil
			}

			for _, issue := range issues {
				printWarning("%s", issue)
			}
			printStats(len(circ.Components()), len(circ.Connections()), false)
			if strict {
				return fmt.Errorf("%d wiring problem(s)", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when problems are found")

	return cmd
}
