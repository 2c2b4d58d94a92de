// Command wisp loads web documents and shows them in a window, renders them
// to PNG or text, or dumps their intermediate trees.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"wisp/internal/observability"
)

func main() {
	defer observability.Sync()
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		observability.GetLogger().Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
