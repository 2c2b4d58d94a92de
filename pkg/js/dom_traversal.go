package js

import (
	"github.com/dop251/goja"

	"wisp/pkg/dom"
)

// indexIn returns the position of child among the children of parent, or -1.
func (ctx *domContext) indexIn(parent, child *dom.Node) int {
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// nodeAfter returns the child of parent following child, or nil.
func nodeAfter(parent, child *dom.Node) *dom.Node {
	for i, c := range parent.Children {
		if c == child && i+1 < len(parent.Children) {
			return parent.Children[i+1]
		}
	}
	return nil
}

// siblings returns the children of the node's parent and the node's index
// among them.
func (e *elementAccessor) siblings() ([]*dom.Node, int) {
	p := e.ctx.parent(e.node)
	if p == nil {
		return nil, -1
	}
	return p.Children, e.ctx.indexIn(p, e.node)
}

func (e *elementAccessor) firstChild() goja.Value {
	if len(e.node.Children) == 0 {
		return goja.Null()
	}
	return e.ctx.proxy(e.node.Children[0])
}

func (e *elementAccessor) lastChild() goja.Value {
	if len(e.node.Children) == 0 {
		return goja.Null()
	}
	return e.ctx.proxy(e.node.Children[len(e.node.Children)-1])
}

func (e *elementAccessor) firstElementChild() goja.Value {
	for _, child := range e.node.Children {
		if child.Type == dom.ElementNode {
			return e.ctx.proxy(child)
		}
	}
	return goja.Null()
}

func (e *elementAccessor) lastElementChild() goja.Value {
	for i := len(e.node.Children) - 1; i >= 0; i-- {
		if e.node.Children[i].Type == dom.ElementNode {
			return e.ctx.proxy(e.node.Children[i])
		}
	}
	return goja.Null()
}

func (e *elementAccessor) nextSibling() goja.Value {
	sibs, idx := e.siblings()
	if idx < 0 || idx+1 >= len(sibs) {
		return goja.Null()
	}
	return e.ctx.proxy(sibs[idx+1])
}

func (e *elementAccessor) previousSibling() goja.Value {
	sibs, idx := e.siblings()
	if idx <= 0 {
		return goja.Null()
	}
	return e.ctx.proxy(sibs[idx-1])
}

func (e *elementAccessor) nextElementSibling() goja.Value {
	sibs, idx := e.siblings()
	if idx < 0 {
		return goja.Null()
	}
	for _, n := range sibs[idx+1:] {
		if n.Type == dom.ElementNode {
			return e.ctx.proxy(n)
		}
	}
	return goja.Null()
}

func (e *elementAccessor) previousElementSibling() goja.Value {
	sibs, idx := e.siblings()
	for i := idx - 1; i >= 0; i-- {
		if sibs[i].Type == dom.ElementNode {
			return e.ctx.proxy(sibs[i])
		}
	}
	return goja.Null()
}
