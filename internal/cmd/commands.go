package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/panelkit/internal/commands"
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands registered by mounted panels",
	Args:  cobra.NoArgs,
	RunE:  runCommands,
}

var commandsFormat = outputFormat(formatAuto)

var execCmd = &cobra.Command{
	Use:   "exec <command> [key=value...]",
	Short: "Run a panel command",
	Long: `Run a command registered by a mounted panel and print its result.

Arguments are key=value pairs; true/false become booleans and integers
become numbers, e.g.:
  panelkit exec panel/general/open tab=style`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	commandsCmd.Flags().VarP(&commandsFormat, "format", "f", "output format: auto, table or yaml")
	rootCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(execCmd)
}

type commandRow struct {
	Name        string `yaml:"name"`
	Owner       string `yaml:"owner"`
	Description string `yaml:"description,omitempty"`
}

func runCommands(cmd *cobra.Command, args []string) error {
	format := resolveFormat(commandsFormat, cmd.OutOrStdout())

	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	var rows []commandRow
	for _, c := range rt.host.Components() {
		for _, command := range c.Commands() {
			rows = append(rows, commandRow{
				Name:        commands.Qualify(c, command.Name),
				Owner:       c.Namespace(),
				Description: command.Description,
			})
		}
	}
	slices.SortFunc(rows, func(a, b commandRow) int { return strings.Compare(a.Name, b.Name) })

	if format == formatYAML {
		return writeYAML(cmd.OutOrStdout(), rows)
	}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{row.Name, row.Owner, row.Description})
	}
	return writeTable(cmd.OutOrStdout(), []string{"COMMAND", "OWNER", "DESCRIPTION"}, table)
}

func runExec(cmd *cobra.Command, args []string) error {
	parsed, err := commands.ParseArgs(args[1:])
	if err != nil {
		return err
	}

	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	result, err := rt.host.Run(args[0], parsed)
	if err != nil {
		return err
	}
	if result != nil {
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}
	return nil
}
