package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/petal-labs/tripflow/config"
	"github.com/petal-labs/tripflow/guide"
)

// NewToolsCmd creates the "tools" command group.
func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the travel tool set",
	}
	cmd.PersistentFlags().String("config", "", "Path to tripflow.yaml")

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsInspectCmd())
	cmd.AddCommand(newToolsResourcesCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available tools",
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	stack, err := loadOfflineStack(cmd)
	if err != nil {
		return err
	}
	defer stack.close()

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tREQUIRED\tDESCRIPTION")
	for _, tool := range stack.registry.All() {
		schema := tool.Schema()
		required := strings.Join(schema.Required, ",")
		if required == "" {
			required = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", tool.Name(), required, schema.Description)
	}
	return writer.Flush()
}

func newToolsInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <name>",
		Short: "Print a tool's input schema as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolsInspect,
	}
}

func runToolsInspect(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])

	stack, err := loadOfflineStack(cmd)
	if err != nil {
		return err
	}
	defer stack.close()

	tool, ok := stack.registry.Get(name)
	if !ok {
		return exitError(exitValidation, "unknown tool: %q", name)
	}

	schema := tool.Schema()
	out, err := json.MarshalIndent(map[string]any{
		"name":        tool.Name(),
		"description": schema.Description,
		"inputSchema": schema.InputSchema(),
	}, "", "  ")
	if err != nil {
		return exitError(exitRuntime, "encoding schema: %v", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func newToolsResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List bundled travel guide resources",
		RunE:  runToolsResources,
	}
}

func runToolsResources(cmd *cobra.Command, _ []string) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(writer, "URI\tNAME\tMIME")
	for _, res := range guide.Resources() {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", res.URI, res.Name, res.MIMEType)
	}
	return writer.Flush()
}

// loadOfflineStack builds the tool stack for inspection commands. No
// upstream call happens; credentials may be absent.
func loadOfflineStack(cmd *cobra.Command) (*toolStack, error) {
	explicitConfigPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDiscovered(explicitConfigPath)
	if err != nil {
		return nil, exitError(exitConfig, "%s", err)
	}

	stack, err := buildToolStack(cfg, newLogger(cmd), nil)
	if err != nil {
		return nil, exitError(exitRuntime, "%s", err)
	}
	return stack, nil
}
