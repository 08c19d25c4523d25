package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/arclabs/breadboard/pkg/circuit"
)

// designsCommand creates the designs command group for managing stored
// circuit designs.
func (c *CLI) designsCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "designs",
		Short: "List, save, load, and delete stored designs",
	}
	cmd.PersistentFlags().StringVar(&backend, "store", "", "storage backend: file (default) or mongo")

	cmd.AddCommand(c.designsListCommand(&backend))
	cmd.AddCommand(c.designsSaveCommand(&backend))
	cmd.AddCommand(c.designsLoadCommand(&backend))
	cmd.AddCommand(c.designsDeleteCommand(&backend))

	return cmd
}

func (c *CLI) designsListCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored designs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd, *backend)
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
				return nil
			}

			rows := make([][]string, 0, len(designs))
			for _, d := range designs {
				rows = append(rows, []string{
					d.Name,
					fmt.Sprintf("%d", len(d.Data.Components)),
					d.UpdatedAt.Local().Format("2006-01-02 15:04"),
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Name", "Components", "Updated").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle()
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}

func (c *CLI) designsSaveCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save [name] [file]",
		Short: "Save a circuit file as a named design",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := circuit.ReadData(args[1])
			if err != nil {
				return err
			}

			s, err := c.newStore(cmd, *backend)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Save(cmd.Context(), args[0], data); err != nil {
				return err
			}
			printSuccess("Saved design %q", args[0])
			printDetail("%d component(s)", len(data.Components))
			return nil
		},
	}
}

func (c *CLI) designsLoadCommand(backend *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Write a stored design to a circuit file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd, *backend)
			if err != nil {
				return err
			}
			defer s.Close()

			d, err := s.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = args[0] + ".json"
			}

			circ := circuit.New()
			circ.UpdateFromData(d.Data)
			if err := circ.WriteFile(path); err != nil {
				return err
			}
			printSuccess("Loaded design %q", args[0])
			printFile(path)
			printStats(len(circ.Components()), len(circ.Connections()), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	return cmd
}

func (c *CLI) designsDeleteCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.newStore(cmd, *backend)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted design %q", args[0])
			return nil
		},
	}
}
