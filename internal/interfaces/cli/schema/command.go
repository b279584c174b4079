package schema

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/namuve/frontdesk/internal/infrastructure/schema"
)

var validatePath string

// NewCommand prints the effective schema registry, or validates an
// alternative registry file without starting the server.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or validate the schema registry",
		Long: `Print the embedded schema registry as YAML. With --validate, load the
given registry file and report whether the server would accept it.`,
		RunE: run,
	}

	cmd.Flags().StringVar(&validatePath, "validate", "", "Registry file to validate instead of printing")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	registry, err := schema.Load(validatePath)
	if err != nil {
		return err
	}

	if validatePath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", validatePath)
		return nil
	}

	doc, err := registry.Document()
	if err != nil {
		return fmt.Errorf("render schema registry: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(doc)
	return err
}
