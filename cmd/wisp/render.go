package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wisp/internal/config"
	"wisp/internal/observability"
	"wisp/pkg/render"
	"wisp/pkg/resource"
)

func newRenderCmd() *cobra.Command {
	var format string
	var outputDir string

	renderCmd := &cobra.Command{
		Use:   "render <url>...",
		Short: "Render documents to PNG files or text",
		Long: `Loads every url, runs its scripts and renders the resulting widget tree.
PNG files are written to render.output_dir, text goes to stdout in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.RenderCfg.OutputDir = outputDir
			}
			return runRender(cmd.Context(), observability.GetLogger(), cfg, newFetcher(cfg, observability.GetLogger()), args, format, cmd.OutOrStdout())
		},
	}

	renderCmd.Flags().StringVarP(&format, "format", "f", "png", "output format: png or text")
	renderCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for PNG files (overrides render.output_dir)")
	return renderCmd
}

// runRender renders the documents concurrently, at most
// render.concurrency at a time.
func runRender(ctx context.Context, logger *zap.Logger, cfg *config.Config, fetcher resource.Fetcher, args []string, format string, out io.Writer) error {
	if format != "png" && format != "text" {
		return fmt.Errorf("unknown render format %q", format)
	}
	if format == "png" {
		if err := os.MkdirAll(cfg.Render().OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	texts := make([]bytes.Buffer, len(args))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Render().Concurrency)

	for i, arg := range args {
		g.Go(func() error {
			rawURL := normalizeArg(arg)
			page, err := loadPage(groupCtx, fetcher, logger, rawURL)
			if err != nil {
				return err
			}
			if format == "text" {
				return render.WriteText(&texts[i], page.View())
			}

			// Faces are loaded per page since painting is concurrent.
			faces, err := render.LoadFaces(render.FontConfig{
				Regular: cfg.Render().FontRegular,
				Italic:  cfg.Render().FontItalic,
				Size:    cfg.Render().FontSize,
			})
			if err != nil {
				return err
			}
			name := filepath.Join(cfg.Render().OutputDir, outputName(i, rawURL))
			if err := writePNG(name, page.View(), cfg.Browser(), render.WithFaces(faces)); err != nil {
				return err
			}
			logger.Info("rendered", zap.String("url", rawURL), zap.String("file", name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if format == "text" {
		for i := range texts {
			if _, err := texts[i].WriteTo(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadPage navigates a new page to rawURL. A failing script is logged and
// the page is kept with the renders made before it.
func loadPage(ctx context.Context, fetcher resource.Fetcher, logger *zap.Logger, rawURL string) (*resource.Page, error) {
	page := resource.NewPage(fetcher, resource.WithLogger(logger))
	err := page.Navigate(ctx, rawURL)
	var pageErr *resource.PageError
	if errors.As(err, &pageErr) && pageErr.Stage == "script" {
		logger.Warn("script failed, keeping the page", zap.String("url", rawURL), zap.Error(err))
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func writePNG(name string, view *render.Container, size config.BrowserConfig, opts ...render.Option) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.WritePNG(f, view, size.Width, size.Height, opts...)
}

// outputName derives a file name from the index and last path segment of
// rawURL, e.g. "01-index.png".
func outputName(i int, rawURL string) string {
	base := "page"
	if u, err := url.Parse(rawURL); err == nil {
		if b := strings.TrimSuffix(path.Base(u.Path), path.Ext(u.Path)); b != "" && b != "." && b != "/" {
			base = b
		} else if u.Host != "" {
			base = u.Host
		}
	}
	return fmt.Sprintf("%02d-%s.png", i+1, base)
}
