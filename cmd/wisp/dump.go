package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wisp/internal/observability"
	"wisp/pkg/dom"
	"wisp/pkg/dump"
	"wisp/pkg/layout"
	"wisp/pkg/style"
)

func newDumpCmd() *cobra.Command {
	var stage string
	var format string

	dumpCmd := &cobra.Command{
		Use:   "dump <url>",
		Short: "Print the DOM, style or layout tree of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			f, err := dump.ParseFormat(format)
			if err != nil {
				return err
			}
			log := observability.GetLogger()

			page, err := loadPage(cmd.Context(), newFetcher(cfg, log), log, normalizeArg(args[0]))
			if err != nil {
				return err
			}
			snap, err := snapshot(page.Document(), stage, log)
			if err != nil {
				return err
			}
			return dump.Encode(cmd.OutOrStdout(), f, snap)
		},
	}

	dumpCmd.Flags().StringVarP(&stage, "stage", "s", "dom", "tree to print: dom, style or layout")
	dumpCmd.Flags().StringVarP(&format, "format", "f", "tree", "output format: tree, yaml or json")
	return dumpCmd
}

func snapshot(doc *dom.Node, stage string, log *zap.Logger) (*dump.Node, error) {
	switch strings.ToLower(stage) {
	case "dom":
		return dump.DOMSnapshot(doc), nil
	case "style":
		return dump.StyledSnapshot(style.StyleDocument(doc, log.Named("style")).DocumentElement), nil
	case "layout":
		return dump.BoxSnapshot(layout.LayoutDocument(style.StyleDocument(doc, log.Named("style"))).Root), nil
	}
	return nil, fmt.Errorf("unknown stage %q, want dom, style or layout", stage)
}
