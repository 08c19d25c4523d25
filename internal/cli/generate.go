package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arclabs/breadboard/pkg/cache"
	"github.com/arclabs/breadboard/pkg/circuit"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output   string // circuit design output path
	codePath string // Arduino sketch output path ("" derives from output)
	model    string // override the configured model
	noCache  bool   // bypass the generation cache entirely
	refresh  bool   // regenerate and overwrite cached results
	noCode   bool   // skip firmware generation
}

// generateCommand creates the generate command for AI circuit and firmware
// generation.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{output: "circuit.json"}

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate a circuit design and firmware from a description",
		Long: `Generate turns a plain-language description into a circuit design and
matching Arduino firmware, e.g.:

  breadboard generate "a button on pin 2 that lights an led on pin 13"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "circuit design output file")
	cmd.Flags().StringVar(&opts.codePath, "code", "", "Arduino sketch output file (default: design path with .ino)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "override the configured model")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the generation cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached, replacing the cached result")
	cmd.Flags().BoolVar(&opts.noCode, "no-code", false, "skip firmware generation")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, prompt string, opts *generateOpts) error {
	if opts.model != "" {
		c.Config.API.Model = opts.model
	}
	ca, err := c.newCache(opts.noCache)
	if err != nil {
		return err
	}
	if opts.refresh {
		ca = cache.NewRefreshCache(ca)
	}
	defer ca.Close()
	generator := c.newGenerator(ca)

	spin := newSpinnerWithContext(cmd.Context(), "Designing circuit...")
	spin.Start()
	data, err := generator.GenerateCircuit(cmd.Context(), prompt)
	if err != nil {
		spin.StopWithError("Circuit generation failed")
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Designed circuit with %d component(s)", len(data.Components)))

	circ := circuit.New()
	circ.UpdateFromData(data)
	if err := circ.WriteFile(opts.output); err != nil {
		return err
	}
	printFile(opts.output)
	printStats(len(circ.Components()), len(circ.Connections()), false)

	for _, issue := range circ.Verify() {
		printWarning("%s", issue)
	}

	if !opts.noCode {
		codePath := opts.codePath
		if codePath == "" {
			codePath = strings.TrimSuffix(opts.output, ".json") + ".ino"
		}

		spin = newSpinnerWithContext(cmd.Context(), "Writing firmware...")
		spin.Start()
		code, err := generator.GenerateCode(cmd.Context(), circ.Data())
		if err != nil {
			spin.StopWithError("Firmware generation failed")
			return err
		}
		spin.StopWithSuccess("Generated firmware")

		if err := os.WriteFile(codePath, []byte(code+"\n"), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", codePath, err)
		}
		printFile(codePath)
	}

	printNewline()
	printNextStep("Simulate it", fmt.Sprintf("%s simulate %s", appName, opts.output))
	printNextStep("Draw the wiring", fmt.Sprintf("%s render %s", appName, opts.output))
	return nil
}
