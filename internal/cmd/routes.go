package cmd

import (
	"github.com/Iron-Ham/panelkit/internal/router"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes registered by mounted panels",
	Long: `List every route registered by the mounted panels with its owner.

Patterns use glob syntax where '*' does not cross a '/', e.g.:
  panelkit routes --pattern 'panel/general/*'
  panelkit routes --pattern 'panel/**'`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

var (
	routesPattern string
	routesFormat  = outputFormat(formatAuto)
)

func init() {
	routesCmd.Flags().StringVarP(&routesPattern, "pattern", "p", "", "only list routes matching this glob")
	routesCmd.Flags().VarP(&routesFormat, "format", "f", "output format: auto, table or yaml")
	rootCmd.AddCommand(routesCmd)
}

type routeRow struct {
	Route     string `yaml:"route"`
	Container string `yaml:"container"`
	Owner     string `yaml:"owner"`
}

func runRoutes(cmd *cobra.Command, args []string) error {
	format := resolveFormat(routesFormat, cmd.OutOrStdout())

	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	r := rt.host.Router()
	paths := r.Routes()
	if routesPattern != "" {
		if paths, err = r.Match(routesPattern); err != nil {
			return err
		}
	}

	rows := make([]routeRow, 0, len(paths))
	for _, p := range paths {
		owner, _ := r.OwnerOf(p)
		rows = append(rows, routeRow{Route: p, Container: router.Container(p), Owner: owner})
	}

	if format == formatYAML {
		return writeYAML(cmd.OutOrStdout(), rows)
	}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{row.Route, row.Container, row.Owner})
	}
	return writeTable(cmd.OutOrStdout(), []string{"ROUTE", "CONTAINER", "OWNER"}, table)
}
