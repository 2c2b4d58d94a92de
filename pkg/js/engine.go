package js

import (
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"wisp/pkg/dom"
)

// Host is the page a runtime is attached to.
type Host interface {
	// RequestRerender is called after a script changed the document.
	RequestRerender()
	// Alert shows msg to the user.
	Alert(msg string)
}

type ErrorKind int

const (
	CompileError ErrorKind = iota
	ExecuteError
)

func (k ErrorKind) String() string {
	if k == CompileError {
		return "compile error"
	}
	return "execute error"
}

// ScriptError reports a script that failed to compile or threw.
type ScriptError struct {
	Kind ErrorKind
	Name string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s in %s: %v", e.Kind, e.Name, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// Runtime executes JavaScript against a document. It is not safe for
// concurrent use.
type Runtime struct {
	vm   *goja.Runtime
	host Host
	log  *zap.Logger
	dom  *domContext
}

type nopHost struct{}

func (nopHost) RequestRerender() {}
func (nopHost) Alert(string)     {}

// New creates a runtime with the console, alert and window globals
// installed. The document global is null until SetDocument is called.
func New(host Host, log *zap.Logger) *Runtime {
	if host == nil {
		host = nopHost{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	vm := goja.New()
	r := &Runtime{vm: vm, host: host, log: log}

	if _, err := vm.RunProgram(initPlatform()); err != nil {
		// The bootstrap only declares globals.
		panic(err)
	}

	c := &consoleAPI{log: log.Named("console")}
	c.register(vm)

	vm.Set("alert", r.alert)
	vm.Set("document", goja.Null())
	return r
}

// SetDocument binds the document global to doc. Proxies handed out for a
// previous document are dropped.
func (r *Runtime) SetDocument(doc *dom.Node) {
	if doc == nil {
		r.dom = nil
		r.vm.Set("document", goja.Null())
		return
	}
	r.dom = newDOMContext(r, doc)
	r.vm.Set("document", r.dom.proxy(doc))
}

// Execute runs src and returns the string form of its completion value.
func (r *Runtime) Execute(name, src string) (string, error) {
	prg, err := goja.Compile(name, src, false)
	if err != nil {
		return "", &ScriptError{Kind: CompileError, Name: name, Err: err}
	}
	v, err := r.vm.RunProgram(prg)
	if err != nil {
		return "", &ScriptError{Kind: ExecuteError, Name: name, Err: err}
	}
	if v == nil {
		return "", nil
	}
	return v.String(), nil
}

func (r *Runtime) alert(call goja.FunctionCall) goja.Value {
	msg := ""
	if len(call.Arguments) > 0 {
		msg = call.Arguments[0].String()
	}
	r.log.Debug("alert", zap.String("message", msg))
	r.host.Alert(msg)
	return goja.Undefined()
}

func (r *Runtime) requestRerender(reason string) {
	r.log.Debug("re-render requested", zap.String("reason", reason))
	r.host.RequestRerender()
}
