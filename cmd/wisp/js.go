package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wisp/internal/observability"
	"wisp/pkg/resource"
)

const replPrompt = "> "

func newJSCmd() *cobra.Command {
	var pageURL string

	jsCmd := &cobra.Command{
		Use:   "js",
		Short: "Evaluate JavaScript interactively",
		Long: `Reads one statement per line and prints its completion value. With --url the
statements run against the loaded document; otherwise document is null.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			log := observability.GetLogger()
			out := cmd.OutOrStdout()

			page := resource.NewPage(newFetcher(cfg, log),
				resource.WithLogger(log),
				resource.WithAlert(func(msg string) { fmt.Fprintf(out, "alert: %s\n", msg) }),
			)
			if pageURL != "" {
				if err := page.Navigate(cmd.Context(), normalizeArg(pageURL)); err != nil {
					return err
				}
			}
			return runREPL(cmd.Context(), log, page, cmd.InOrStdin(), out)
		},
	}

	jsCmd.Flags().StringVarP(&pageURL, "url", "u", "", "document to load before reading statements")
	return jsCmd
}

// runREPL evaluates lines of in until EOF or ctx is done. Script errors are
// printed and do not end the session.
func runREPL(ctx context.Context, log *zap.Logger, page *resource.Page, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for n := 1; ; n++ {
		fmt.Fprint(out, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := page.Execute(fmt.Sprintf("repl:%d", n), line)
		if err != nil {
			log.Debug("statement failed", zap.Int("line", n), zap.Error(err))
			fmt.Fprintln(out, "error:", err)
			continue
		}
		fmt.Fprintln(out, result)
	}
}
