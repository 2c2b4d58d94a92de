package js

import (
	"github.com/dop251/goja"

	"wisp/pkg/css"
	"wisp/pkg/dom"
)

// selectors parses the selector list passed as the first argument, throwing
// a SyntaxError style TypeError into the script when it is malformed.
func (ctx *domContext) selectors(method string, call goja.FunctionCall) []css.Selector {
	src, ok := argString(call, 0)
	if !ok {
		panic(ctx.vm.NewTypeError("Failed to execute '" + method + "': 1 argument required"))
	}
	sels, err := css.ParseSelectors(src)
	if err != nil {
		panic(ctx.vm.NewTypeError("Failed to execute '" + method + "': '" + src + "' is not a valid selector"))
	}
	return sels
}

func matchesAny(sels []css.Selector, n *dom.Node) bool {
	for _, sel := range sels {
		if sel.Matches(n) {
			return true
		}
	}
	return false
}

// walkElements visits the element descendants of root, root excluded. The
// callback returns true to stop.
func walkElements(root *dom.Node, fn func(*dom.Node) bool) {
	stopped := false
	root.Walk(func(n *dom.Node) bool {
		if stopped {
			return false
		}
		if n != root && n.Type == dom.ElementNode && fn(n) {
			stopped = true
			return false
		}
		return true
	})
}

func querySelectorFn(ctx *domContext, root *dom.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		sels := ctx.selectors("querySelector", call)
		var result *dom.Node
		walkElements(root, func(n *dom.Node) bool {
			if matchesAny(sels, n) {
				result = n
				return true
			}
			return false
		})
		return ctx.proxyOrNull(result)
	}
}

func querySelectorAllFn(ctx *domContext, root *dom.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		sels := ctx.selectors("querySelectorAll", call)
		var results []*dom.Node
		walkElements(root, func(n *dom.Node) bool {
			if matchesAny(sels, n) {
				results = append(results, n)
			}
			return false
		})
		return ctx.elementArray(results)
	}
}

func matchesFn(ctx *domContext, node *dom.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		sels := ctx.selectors("matches", call)
		return ctx.vm.ToValue(matchesAny(sels, node))
	}
}

// closestFn walks from node up through its ancestors and returns the first
// element matching the selector.
func closestFn(ctx *domContext, node *dom.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		sels := ctx.selectors("closest", call)
		for current := node; current != nil; current = ctx.parent(current) {
			if current.Type == dom.ElementNode && matchesAny(sels, current) {
				return ctx.proxy(current)
			}
		}
		return goja.Null()
	}
}
