package js

import (
	"github.com/dop251/goja"

	"wisp/pkg/dom"
	"wisp/pkg/html"
)

// appendChildFn implements document.appendChild(x). Strings become text nodes
// appended to the document element, node proxies are moved there.
func (d *documentAccessor) appendChildFn() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		ctx := d.ctx
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'appendChild' on 'Document': 1 argument required"))
		}
		root := d.node.DocumentElement()
		child := ctx.unwrapNode(call.Arguments[0])
		if child == nil {
			child = dom.NewText(call.Arguments[0].String())
		} else {
			ctx.adopt("appendChild", root, child)
		}
		root.AppendChild(child)
		ctx.rt.requestRerender("appendChild")
		return ctx.proxy(child)
	}
}

func (e *elementAccessor) appendChildFn() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		ctx := e.ctx
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'appendChild': 1 argument required"))
		}
		child := ctx.unwrapNode(call.Arguments[0])
		if child == nil {
			panic(ctx.vm.NewTypeError("Failed to execute 'appendChild': parameter is not a Node"))
		}
		ctx.adopt("appendChild", e.node, child)
		e.node.AppendChild(child)
		ctx.rt.requestRerender("appendChild")
		return ctx.proxy(child)
	}
}

func (e *elementAccessor) removeChildFn() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		ctx := e.ctx
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'removeChild': 1 argument required"))
		}
		child := ctx.unwrapNode(call.Arguments[0])
		if child == nil {
			panic(ctx.vm.NewTypeError("Failed to execute 'removeChild': parameter is not a Node"))
		}
		if e.node.RemoveChild(child) == nil {
			panic(ctx.vm.NewTypeError("Failed to execute 'removeChild': The node to be removed is not a child of this node"))
		}
		ctx.detach(child)
		ctx.rt.requestRerender("removeChild")
		return ctx.proxy(child)
	}
}

func (e *elementAccessor) insertBeforeFn() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		ctx := e.ctx
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'insertBefore': 1 argument required"))
		}
		child := ctx.unwrapNode(call.Arguments[0])
		if child == nil {
			panic(ctx.vm.NewTypeError("Failed to execute 'insertBefore': parameter 1 is not a Node"))
		}
		var ref *dom.Node
		if len(call.Arguments) > 1 {
			ref = ctx.unwrapNode(call.Arguments[1])
		}
		if ref != nil && ctx.indexIn(e.node, ref) < 0 {
			panic(ctx.vm.NewTypeError("Failed to execute 'insertBefore': The node before which the new node is to be inserted is not a child of this node"))
		}
		// Inserting a node before itself keeps it in place.
		if ref == child {
			ref = nodeAfter(e.node, child)
		}
		ctx.adopt("insertBefore", e.node, child)
		i := -1
		if ref != nil {
			i = ctx.indexIn(e.node, ref)
		}
		if i < 0 {
			e.node.AppendChild(child)
		} else {
			e.node.Children = append(e.node.Children[:i], append([]*dom.Node{child}, e.node.Children[i:]...)...)
		}
		ctx.rt.requestRerender("insertBefore")
		return ctx.proxy(child)
	}
}

func (e *elementAccessor) removeFn() func(goja.FunctionCall) goja.Value {
	return func(goja.FunctionCall) goja.Value {
		if p := e.ctx.parent(e.node); p != nil {
			p.RemoveChild(e.node)
			e.ctx.detach(e.node)
			e.ctx.rt.requestRerender("remove")
		}
		return goja.Undefined()
	}
}

func (e *elementAccessor) setAttributeFn() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'setAttribute': 2 arguments required"))
		}
		e.node.SetAttribute(call.Arguments[0].String(), call.Arguments[1].String())
		e.ctx.rt.requestRerender("setAttribute")
		return goja.Undefined()
	}
}

func (e *elementAccessor) removeAttributeFn() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		name, ok := argString(call, 0)
		if !ok {
			return goja.Undefined()
		}
		if _, had := e.node.GetAttribute(name); had {
			e.node.RemoveAttribute(name)
			e.ctx.rt.requestRerender("removeAttribute")
		}
		return goja.Undefined()
	}
}

// setTextContent replaces all children with a single text node.
func (e *elementAccessor) setTextContent(text string) {
	if e.isText() {
		e.node.Text = text
	} else {
		old := e.node.Children
		e.node.ReplaceChildren()
		e.node.AppendText(text)
		e.dropAll(old)
	}
	e.ctx.rt.requestRerender("textContent")
}

// setInnerHTML parses markup as a fragment and replaces the children of the
// node. A parse failure is thrown into the script and leaves the node alone.
func (e *elementAccessor) setInnerHTML(markup string) {
	old := e.node.Children
	if err := html.SetInnerHTML(e.node, markup); err != nil {
		e.ctx.rt.log.Debug("innerHTML rejected")
		panic(e.ctx.vm.NewGoError(err))
	}
	e.dropAll(old)
	e.ctx.rt.requestRerender("innerHTML")
}

func (e *elementAccessor) dropAll(nodes []*dom.Node) {
	for _, n := range nodes {
		e.ctx.drop(n)
	}
}
