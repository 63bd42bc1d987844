package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/tripflow/booking"
	"github.com/petal-labs/tripflow/config"
)

// NewValidateCmd creates the "validate" subcommand.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE:  runValidate,
	}
	cmd.Flags().String("config", "", "Path to tripflow.yaml")
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	explicitConfigPath, _ := cmd.Flags().GetString("config")

	path, found, err := config.DiscoverPath(explicitConfigPath)
	if err != nil {
		return exitError(exitConfig, "%s", err)
	}
	if !found {
		return exitError(exitConfig, "no configuration file found")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return exitError(exitValidation, "%s", err)
	}
	if err := cfg.Validate(); err != nil {
		return exitError(exitValidation, "%s", err)
	}
	if _, err := booking.ParseCronExpressionUTC(cfg.Monitor.Schedule); err != nil {
		return exitError(exitValidation, "monitor schedule: %v", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", path)
	return nil
}
