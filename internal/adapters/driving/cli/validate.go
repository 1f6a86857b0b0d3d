package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate landscape input files",
	Long:  `Commands that check landscape input files without building.`,
}

var validateDataCmd = &cobra.Command{
	Use:         "data",
	Short:       "Validate the landscape data file",
	Annotations: map[string]string{needsServices: "true"},
	Args:        cobra.NoArgs,
	RunE:        runValidateData,
}

func init() {
	addSourceFlags(validateDataCmd)
	validateCmd.AddCommand(validateDataCmd)
	rootCmd.AddCommand(validateCmd)
}

func runValidateData(cmd *cobra.Command, _ []string) error {
	if validateService == nil {
		return notConfigured("validate service")
	}
	if err := validateService.ValidateData(cmd.Context()); err != nil {
		return fmt.Errorf("invalid landscape data: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Landscape data is valid")
	return nil
}
