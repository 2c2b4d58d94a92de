package js

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// consoleAPI routes console.* calls to the logger.
type consoleAPI struct {
	log *zap.Logger
}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", c.printer(c.log.Info))
	console.Set("info", c.printer(c.log.Info))
	console.Set("debug", c.printer(c.log.Debug))
	console.Set("warn", c.printer(c.log.Warn))
	console.Set("error", c.printer(c.log.Error))
	vm.Set("console", console)
}

func (c *consoleAPI) printer(write func(string, ...zap.Field)) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		write(formatArgs(call.Arguments))
		return goja.Undefined()
	}
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
