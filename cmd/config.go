package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/edi-build/edi/internal/app"
	"github.com/edi-build/edi/internal/config"
	"github.com/edi-build/edi/internal/playbook"
)

var (
	itemsPaths bool

	playbooksTarget     string
	playbooksConnection string
	playbooksDryRun     bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect a project configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump <config-file>",
	Short: "Print the merged configuration",
	Long: `Print the configuration after rendering the base file and its overlays
and merging them. The output uses the format of the base file.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigDump,
}

var configItemsCmd = &cobra.Command{
	Use:   "items <section> <config-file>",
	Short: "List the active items of a section",
	Long: `List the items of a section that are not switched off with skip: true,
in the order they are applied.`,
	Example: `  edi config items playbooks image.yml --paths
  edi config items shared_folders image.yml`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigItems,
}

var configPlaybooksCmd = &cobra.Command{
	Use:   "playbooks <config-file>",
	Short: "Apply the playbooks of a configuration to a target",
	Example: `  edi config playbooks image.yml --target my-container
  edi config playbooks image.yml --target 192.168.1.20 --connection ssh --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigPlaybooks,
}

func init() {
	configItemsCmd.Flags().BoolVar(&itemsPaths, "paths", false, "Resolve item paths against the plugin directories")

	configPlaybooksCmd.Flags().StringVarP(&playbooksTarget, "target", "t", "", "Container or host to configure (required)")
	configPlaybooksCmd.Flags().StringVar(&playbooksConnection, "connection", string(playbook.ConnectionLXD), "Ansible connection: lxd or ssh")
	configPlaybooksCmd.Flags().BoolVar(&playbooksDryRun, "dry-run", false, "Print the commands instead of running them")
	_ = configPlaybooksCmd.MarkFlagRequired("target")

	configCmd.AddCommand(configDumpCmd, configItemsCmd, configPlaybooksCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	out, err := cfg.Dump()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runConfigItems(cmd *cobra.Command, args []string) error {
	section, err := parseSection(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(args[1])
	if err != nil {
		return err
	}

	var headers []string
	var rows [][]string

	if itemsPaths {
		items, err := cfg.OrderedPathItems(section)
		if err != nil {
			return err
		}
		headers = []string{"NAME", "PATH"}
		for _, item := range items {
			rows = append(rows, []string{item.Name, item.Path})
		}
	} else {
		items, err := cfg.OrderedRawItems(section)
		if err != nil {
			return err
		}
		headers = []string{"NAME", "SETTINGS"}
		for _, item := range items {
			rows = append(rows, []string{item.Name, formatRecord(item.Record)})
		}
	}

	if len(rows) == 0 {
		logInfo("No active items in section %s", section)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), itemsTable(headers, rows))
	return nil
}

func runConfigPlaybooks(cmd *cobra.Command, args []string) error {
	connection, err := playbook.ParseConnection(playbooksConnection)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	runner, err := app.Default.PlaybookRunner(cfg, playbooksTarget, connection)
	if err != nil {
		return err
	}

	if playbooksDryRun {
		lines, err := runner.DryRun()
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	}

	applied, err := runner.RunAll(cmd.Context())
	if len(applied) > 0 {
		logSuccess("Applied %d playbook(s) to %s: %s", len(applied), playbooksTarget, strings.Join(applied, ", "))
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		logWarning("No playbooks to apply in %s", args[0])
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func itemsTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// formatRecord renders an item record as sorted key=value pairs.
func formatRecord(record config.Item) string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, record[k]))
	}
	return strings.Join(parts, " ")
}
