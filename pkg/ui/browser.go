// Package ui is the desktop browser window: a navigation bar, the widgets of
// the current page and a status line.
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"wisp/internal/config"
	"wisp/pkg/render"
	"wisp/pkg/resource"
)

const alertTitle = "from JavaScript"

// Browser owns a window and the page shown in it. Navigation runs off the UI
// thread; a click arriving while a page loads is dropped.
type Browser struct {
	win      fyne.Window
	page     *resource.Page
	log      *zap.Logger
	urlEntry *widget.Entry
	status   *widget.Label
	body     *fyne.Container
	loading  atomic.Bool

	// do runs fn on the UI thread.
	do func(fn func())
}

// New creates the browser window in app a.
func New(a fyne.App, cfg config.BrowserConfig, fetcher resource.Fetcher, log *zap.Logger) *Browser {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Browser{
		win:    a.NewWindow("wisp"),
		log:    log.Named("ui"),
		status: widget.NewLabel("Enter a URL and press Enter"),
		body:   container.NewVBox(),
		do:     fyne.Do,
	}
	b.page = resource.NewPage(fetcher,
		resource.WithLogger(log),
		resource.WithAlert(func(msg string) { b.do(func() { b.alert(msg) }) }),
		resource.WithRenderHook(func(view *render.Container) { b.do(func() { b.show(view) }) }),
	)

	b.urlEntry = widget.NewEntry()
	b.urlEntry.SetPlaceHolder(cfg.StartURL)
	b.urlEntry.OnSubmitted = b.Navigate

	topBar := container.NewBorder(nil, nil, nil, nil, b.urlEntry)
	content := container.NewBorder(topBar, b.status, nil, nil, container.NewVScroll(b.body))
	b.win.SetContent(content)
	b.win.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
	// Tab freezes when nothing is focusable.
	b.win.Canvas().Focus(b.urlEntry)
	return b
}

func (b *Browser) Window() fyne.Window { return b.win }

func (b *Browser) Page() *resource.Page { return b.page }

// Navigate loads rawURL in the background.
func (b *Browser) Navigate(rawURL string) {
	if !b.loading.CompareAndSwap(false, true) {
		b.status.SetText("Still loading, try again")
		return
	}
	b.urlEntry.SetText(rawURL)
	b.status.SetText("Loading " + rawURL + "...")
	go func() {
		defer b.loading.Store(false)
		err := b.page.Navigate(context.Background(), rawURL)
		b.do(func() { b.finish(rawURL, err) })
	}()
}

// ShowAndRun opens the window on startURL, if any, and runs the event loop.
func (b *Browser) ShowAndRun(startURL string) {
	if startURL != "" {
		b.Navigate(startURL)
	}
	b.win.ShowAndRun()
}

func (b *Browser) finish(rawURL string, err error) {
	if err != nil {
		b.log.Warn("navigation failed", zap.String("url", rawURL), zap.Error(err))
		b.status.SetText("Error: " + err.Error())
		return
	}
	b.urlEntry.SetText(b.page.URL())
	b.status.SetText(b.page.URL())
	b.win.SetTitle(fmt.Sprintf("wisp - %s", b.page.URL()))
}

func (b *Browser) show(view *render.Container) {
	b.body.Objects = []fyne.CanvasObject{Objects(view, b)}
	b.body.Refresh()
}

func (b *Browser) alert(msg string) {
	dialog.ShowInformation(alertTitle, msg, b.win)
}

// Follow implements Actions.
func (b *Browser) Follow(href string) {
	target, err := resource.ResolveURL(b.page.URL(), href)
	if err != nil {
		b.status.SetText("Error: " + err.Error())
		return
	}
	b.Navigate(target)
}

// Click implements Actions.
func (b *Browser) Click(script string) {
	if b.loading.Load() {
		return
	}
	if _, err := b.page.Execute(b.page.URL()+"#onclick", script); err != nil {
		b.log.Warn("onclick failed", zap.Error(err))
		b.status.SetText("Script error: " + err.Error())
	}
}
