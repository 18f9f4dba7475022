package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mediarelay/internal/server"
	"mediarelay/internal/ui"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the HTTP routes the server exposes",
	Args:  cobra.NoArgs,
	RunE:  routesRun,
}

func routesRun(cmd *cobra.Command, args []string) error {
	routes := server.New(cfg, server.Deps{Version: Version}).Routes()

	rows := make([]ui.Row, len(routes))
	for i, r := range routes {
		rows[i] = ui.Row{
			Key:   strings.Join(r.Methods, ","),
			Value: r.Path,
			Note:  r.Description,
		}
	}

	out := cmd.OutOrStdout()
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return ui.Table(out, "mediarelay "+Version+" on "+cfg.Addr(), rows, color)
}
