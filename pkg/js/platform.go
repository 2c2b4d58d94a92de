package js

import (
	"sync"

	"github.com/dop251/goja"
)

// The bootstrap script aliases the browser globals onto globalThis. It is
// compiled once per process and run in every new runtime.
const bootstrapSource = `var window = globalThis;
var self = globalThis;
`

var (
	platformMu    sync.Mutex
	platformOnce  = new(sync.Once)
	platformInits int
	bootstrap     *goja.Program
)

func initPlatform() *goja.Program {
	platformMu.Lock()
	once := platformOnce
	platformMu.Unlock()

	once.Do(func() {
		platformMu.Lock()
		defer platformMu.Unlock()
		bootstrap = goja.MustCompile("bootstrap.js", bootstrapSource, false)
		platformInits++
	})

	platformMu.Lock()
	defer platformMu.Unlock()
	return bootstrap
}

// shutdownPlatform forgets the compiled bootstrap so the next runtime
// initializes it again.
func shutdownPlatform() {
	platformMu.Lock()
	defer platformMu.Unlock()
	platformOnce = new(sync.Once)
	bootstrap = nil
}
