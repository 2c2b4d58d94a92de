package main

import (
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"wisp/internal/observability"
	"wisp/pkg/ui"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [url]",
		Short: "Open a browser window",
		Long:  "Opens a browser window on url, or on browser.start_url when no url is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			log := observability.GetLogger()

			start := cfg.Browser().StartURL
			if len(args) == 1 {
				start = normalizeArg(args[0])
			}

			a := app.NewWithID("wisp")
			b := ui.New(a, cfg.Browser(), newFetcher(cfg, log), log)
			b.ShowAndRun(start)
			return nil
		},
	}
}
