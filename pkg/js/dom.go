package js

import (
	"strconv"
	"weak"

	"github.com/dop251/goja"

	"wisp/pkg/dom"
)

// domContext holds the DOM bindings of one document. It caches one proxy per
// node so scripts can compare nodes with ===.
type domContext struct {
	rt    *Runtime
	vm    *goja.Runtime
	doc   *dom.Node
	cache map[*dom.Node]*goja.Object
	// detached holds the roots of trees outside the document that scripts
	// may still reach. Roots nothing refers to any more are collected.
	detached map[weak.Pointer[dom.Node]]struct{}
}

func newDOMContext(rt *Runtime, doc *dom.Node) *domContext {
	return &domContext{
		rt:       rt,
		vm:       rt.vm,
		doc:      doc,
		cache:    make(map[*dom.Node]*goja.Object),
		detached: make(map[weak.Pointer[dom.Node]]struct{}),
	}
}

// proxy returns the JS object wrapping node.
func (ctx *domContext) proxy(node *dom.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	var v *goja.Object
	if node.Type == dom.DocumentNode {
		v = ctx.vm.NewDynamicObject(&documentAccessor{ctx: ctx, node: node})
	} else {
		v = ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	}
	ctx.cache[node] = v
	return v
}

func (ctx *domContext) proxyOrNull(node *dom.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	return ctx.proxy(node)
}

// unwrapNode returns the node behind a proxy of this context, or nil for any
// other value. A proxy evicted from the cache is cached again.
func (ctx *domContext) unwrapNode(val goja.Value) *dom.Node {
	obj, ok := val.(*goja.Object)
	if !ok {
		return nil
	}
	var node *dom.Node
	switch a := obj.Export().(type) {
	case *elementAccessor:
		if a.ctx == ctx {
			node = a.node
		}
	case *documentAccessor:
		if a.ctx == ctx {
			node = a.node
		}
	}
	if node != nil {
		if _, cached := ctx.cache[node]; !cached {
			ctx.cache[node] = obj
		}
	}
	return node
}

// parent looks up the parent of node in the document and then in the
// detached trees.
func (ctx *domContext) parent(node *dom.Node) *dom.Node {
	if p := ctx.doc.ParentOf(node); p != nil {
		return p
	}
	for wp := range ctx.detached {
		root := wp.Value()
		if root == nil {
			delete(ctx.detached, wp)
			continue
		}
		if p := root.ParentOf(node); p != nil {
			return p
		}
	}
	return nil
}

// detach records node as the root of a tree outside the document.
func (ctx *domContext) detach(node *dom.Node) {
	ctx.detached[weak.Make(node)] = struct{}{}
}

// drop forgets the proxies of a subtree that was replaced, keeping it
// reachable for proxies the script still holds.
func (ctx *domContext) drop(root *dom.Node) {
	held := false
	root.Walk(func(n *dom.Node) bool {
		if _, ok := ctx.cache[n]; ok {
			delete(ctx.cache, n)
			held = true
		}
		return true
	})
	if held {
		ctx.detach(root)
	}
}

// adopt detaches node from its current parent so it can be inserted
// elsewhere. Inserting a node into its own subtree is rejected.
func (ctx *domContext) adopt(method string, parent, node *dom.Node) {
	if node.Type == dom.DocumentNode || node.Contains(parent) {
		panic(ctx.vm.NewTypeError("Failed to execute '" + method + "': the new child contains the parent"))
	}
	if old := ctx.parent(node); old != nil {
		old.RemoveChild(node)
	}
	delete(ctx.detached, weak.Make(node))
}

func (ctx *domContext) elementArray(nodes []*dom.Node) goja.Value {
	arr := ctx.vm.NewArray()
	for i, n := range nodes {
		arr.Set(strconv.Itoa(i), ctx.proxy(n))
	}
	return arr
}

func argString(call goja.FunctionCall, i int) (string, bool) {
	if len(call.Arguments) <= i {
		return "", false
	}
	return call.Arguments[i].String(), true
}

// documentAccessor backs the document global.
type documentAccessor struct {
	ctx  *domContext
	node *dom.Node
}

var documentKeys = []string{
	"nodeType", "nodeName", "URL", "documentURI", "documentElement",
	"childNodes", "textContent", "appendChild",
	"getElementById", "getElementsByTagName", "createElement", "createTextNode",
	"querySelector", "querySelectorAll",
}

func (d *documentAccessor) Get(key string) goja.Value {
	ctx := d.ctx
	vm := ctx.vm
	switch key {
	case "nodeType":
		return vm.ToValue(9)
	case "nodeName":
		return vm.ToValue("#document")
	case "URL":
		return vm.ToValue(d.node.URL)
	case "documentURI":
		return vm.ToValue(d.node.DocumentURI)
	case "documentElement":
		return ctx.proxy(d.node.DocumentElement())
	case "childNodes":
		return ctx.elementArray(d.node.Children)
	case "textContent":
		return goja.Null()
	case "appendChild":
		return vm.ToValue(d.appendChildFn())
	case "getElementById":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			id, ok := argString(call, 0)
			if !ok {
				return goja.Null()
			}
			return ctx.proxyOrNull(d.node.ElementByID(id))
		})
	case "getElementsByTagName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			tag, ok := argString(call, 0)
			if !ok {
				return ctx.elementArray(nil)
			}
			return ctx.elementArray(d.node.ElementsByTagName(tag))
		})
	case "createElement":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			tag, ok := argString(call, 0)
			if !ok {
				panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
			}
			node := dom.NewElement(tag, nil)
			ctx.detach(node)
			return ctx.proxy(node)
		})
	case "createTextNode":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			text, _ := argString(call, 0)
			node := dom.NewText(text)
			ctx.detach(node)
			return ctx.proxy(node)
		})
	case "querySelector":
		return vm.ToValue(querySelectorFn(ctx, d.node))
	case "querySelectorAll":
		return vm.ToValue(querySelectorAllFn(ctx, d.node))
	}
	return goja.Undefined()
}

func (d *documentAccessor) Set(key string, val goja.Value) bool { return false }

func (d *documentAccessor) Has(key string) bool {
	for _, k := range documentKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (d *documentAccessor) Delete(key string) bool { return false }

func (d *documentAccessor) Keys() []string { return documentKeys }

// elementAccessor backs the proxies of element and text nodes.
type elementAccessor struct {
	ctx  *domContext
	node *dom.Node
}

var elementKeys = []string{
	"nodeType", "nodeName", "nodeValue", "tagName", "id", "className",
	"textContent", "innerHTML", "outerHTML",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"children", "childNodes", "parentNode", "parentElement",
	"appendChild", "removeChild", "insertBefore", "remove",
	"firstChild", "lastChild", "firstElementChild", "lastElementChild",
	"nextSibling", "previousSibling", "nextElementSibling", "previousElementSibling",
	"childElementCount", "hasChildNodes", "contains", "cloneNode",
	"querySelector", "querySelectorAll", "matches", "closest",
	"getElementsByTagName",
}

func (e *elementAccessor) isText() bool { return e.node.Type == dom.TextNode }

func (e *elementAccessor) Get(key string) goja.Value {
	ctx := e.ctx
	vm := ctx.vm

	switch key {
	case "nodeType":
		if e.isText() {
			return vm.ToValue(3)
		}
		return vm.ToValue(1)
	case "nodeName":
		if e.isText() {
			return vm.ToValue("#text")
		}
		return vm.ToValue(e.node.TagName)
	case "nodeValue":
		if e.isText() {
			return vm.ToValue(e.node.Text)
		}
		return goja.Null()
	case "textContent":
		if e.isText() {
			return vm.ToValue(e.node.Text)
		}
		return vm.ToValue(e.node.InnerText())
	case "childNodes":
		return ctx.elementArray(e.node.Children)
	case "parentNode":
		return ctx.proxyOrNull(ctx.parent(e.node))
	case "parentElement":
		if p := ctx.parent(e.node); p != nil && p.Type == dom.ElementNode {
			return ctx.proxy(p)
		}
		return goja.Null()
	case "remove":
		return vm.ToValue(e.removeFn())
	case "firstChild":
		return e.firstChild()
	case "lastChild":
		return e.lastChild()
	case "nextSibling":
		return e.nextSibling()
	case "previousSibling":
		return e.previousSibling()
	case "nextElementSibling":
		return e.nextElementSibling()
	case "previousElementSibling":
		return e.previousElementSibling()
	case "hasChildNodes":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue(len(e.node.Children) > 0)
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			other := ctx.unwrapNode(call.Arguments[0])
			return vm.ToValue(other != nil && e.node.Contains(other))
		})
	case "cloneNode":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			deep := len(call.Arguments) > 0 && call.Arguments[0].ToBoolean()
			clone := e.node.CloneNode(deep)
			ctx.detach(clone)
			return ctx.proxy(clone)
		})
	}

	if e.isText() {
		return goja.Undefined()
	}

	switch key {
	case "tagName":
		return vm.ToValue(e.node.TagName)
	case "id":
		return vm.ToValue(e.node.ID())
	case "className":
		cls, _ := e.node.GetAttribute("class")
		return vm.ToValue(cls)
	case "innerHTML":
		return vm.ToValue(e.node.InnerHTML())
	case "outerHTML":
		return vm.ToValue(e.node.OuterHTML())
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			name, ok := argString(call, 0)
			if !ok {
				return goja.Null()
			}
			val, ok := e.node.GetAttribute(name)
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			name, _ := argString(call, 0)
			_, ok := e.node.GetAttribute(name)
			return vm.ToValue(ok)
		})
	case "setAttribute":
		return vm.ToValue(e.setAttributeFn())
	case "removeAttribute":
		return vm.ToValue(e.removeAttributeFn())
	case "children":
		var elements []*dom.Node
		for _, child := range e.node.Children {
			if child.Type == dom.ElementNode {
				elements = append(elements, child)
			}
		}
		return ctx.elementArray(elements)
	case "childElementCount":
		count := 0
		for _, child := range e.node.Children {
			if child.Type == dom.ElementNode {
				count++
			}
		}
		return vm.ToValue(count)
	case "firstElementChild":
		return e.firstElementChild()
	case "lastElementChild":
		return e.lastElementChild()
	case "appendChild":
		return vm.ToValue(e.appendChildFn())
	case "removeChild":
		return vm.ToValue(e.removeChildFn())
	case "insertBefore":
		return vm.ToValue(e.insertBeforeFn())
	case "querySelector":
		return vm.ToValue(querySelectorFn(ctx, e.node))
	case "querySelectorAll":
		return vm.ToValue(querySelectorAllFn(ctx, e.node))
	case "matches":
		return vm.ToValue(matchesFn(ctx, e.node))
	case "closest":
		return vm.ToValue(closestFn(ctx, e.node))
	case "getElementsByTagName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			tag, ok := argString(call, 0)
			if !ok {
				return ctx.elementArray(nil)
			}
			var result []*dom.Node
			for _, child := range e.node.Children {
				result = append(result, child.ElementsByTagName(tag)...)
			}
			return ctx.elementArray(result)
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		e.setTextContent(val.String())
		return true
	case "nodeValue":
		if !e.isText() {
			return true
		}
		e.node.Text = val.String()
		e.ctx.rt.requestRerender("nodeValue")
		return true
	}
	if e.isText() {
		return false
	}
	switch key {
	case "id":
		e.node.SetAttribute("id", val.String())
		e.ctx.rt.requestRerender("id")
		return true
	case "className":
		e.node.SetAttribute("class", val.String())
		e.ctx.rt.requestRerender("className")
		return true
	case "innerHTML":
		e.setInnerHTML(val.String())
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool { return false }

func (e *elementAccessor) Keys() []string { return elementKeys }
