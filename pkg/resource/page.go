package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wisp/pkg/dom"
	"wisp/pkg/html"
	"wisp/pkg/js"
	"wisp/pkg/layout"
	"wisp/pkg/render"
	"wisp/pkg/style"
)

// ErrNoDocument is returned when a page is rendered before it loaded a
// document.
var ErrNoDocument = errors.New("no document loaded")

// PageError reports the stage at which a navigation failed.
type PageError struct {
	URL   string
	Stage string // fetch, parse or script
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("navigating to %s: %s: %v", e.URL, e.Stage, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// Page loads documents and keeps the widget tree of the current one up to
// date while scripts mutate it. A Page is not safe for concurrent use.
type Page struct {
	id       uuid.UUID
	fetcher  Fetcher
	log      *zap.Logger
	baseLog  *zap.Logger
	runtime  *js.Runtime
	url      string
	doc      *dom.Node
	view     *render.Container
	renders  int
	onAlert  func(string)
	onRender func(*render.Container)
}

type PageOption func(*Page)

// WithLogger sets the logger the page and its scripts log to.
func WithLogger(log *zap.Logger) PageOption {
	return func(p *Page) { p.baseLog = log }
}

// WithAlert installs the handler for script alerts.
func WithAlert(fn func(msg string)) PageOption {
	return func(p *Page) { p.onAlert = fn }
}

// WithRenderHook installs a callback invoked with every new widget tree.
func WithRenderHook(fn func(*render.Container)) PageOption {
	return func(p *Page) { p.onRender = fn }
}

func NewPage(fetcher Fetcher, opts ...PageOption) *Page {
	p := &Page{fetcher: fetcher}
	for _, opt := range opts {
		opt(p)
	}
	if p.baseLog == nil {
		p.baseLog = zap.NewNop()
	}
	if p.fetcher == nil {
		p.fetcher = NewFetcher(nil, "", p.baseLog)
	}
	p.id = uuid.New()
	p.log = p.baseLog.With(zap.String("page_id", p.id.String()))
	p.runtime = js.New(p, p.log)
	return p
}

func (p *Page) ID() uuid.UUID { return p.id }

// URL returns the URL of the current document.
func (p *Page) URL() string { return p.url }

func (p *Page) Document() *dom.Node { return p.doc }

// View returns the widget tree of the last render, or nil.
func (p *Page) View() *render.Container { return p.view }

// Renders counts completed renders of the current document.
func (p *Page) Renders() int { return p.renders }

// Navigate fetches rawURL, renders the document and runs its inline scripts
// in document order. The first failing stage aborts the navigation; a
// script failure leaves the document and the renders made so far in place.
func (p *Page) Navigate(ctx context.Context, rawURL string) error {
	res, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return &PageError{URL: rawURL, Stage: "fetch", Err: err}
	}
	docURL := rawURL
	if res.URL != nil {
		docURL = res.URL.String()
	}
	doc, err := html.ParseDocument(docURL, res.Data)
	if err != nil {
		return &PageError{URL: rawURL, Stage: "parse", Err: err}
	}

	p.id = uuid.New()
	p.log = p.baseLog.With(zap.String("page_id", p.id.String()), zap.String("url", docURL))
	p.url = docURL
	p.doc = doc
	p.renders = 0
	p.runtime = js.New(p, p.log)
	p.runtime.SetDocument(doc)
	p.log.Info("document loaded", zap.Int("bytes", len(res.Data)))

	if _, err := p.Render(); err != nil {
		return err
	}

	for i, src := range doc.ScriptInners() {
		name := fmt.Sprintf("%s#script%d", docURL, i)
		if _, err := p.runtime.Execute(name, src); err != nil {
			p.log.Warn("script failed", zap.String("script", name), zap.Error(err))
			return &PageError{URL: rawURL, Stage: "script", Err: err}
		}
	}
	return nil
}

// Render styles, lays out and builds the widget tree of the current DOM.
func (p *Page) Render() (*render.Container, error) {
	if p.doc == nil {
		return nil, ErrNoDocument
	}
	styled := style.StyleDocument(p.doc, p.log.Named("style"))
	boxes := layout.LayoutDocument(styled)
	p.view = render.Build(boxes.Root)
	p.renders++
	p.log.Debug("rendered", zap.Int("renders", p.renders))
	if p.onRender != nil {
		p.onRender(p.view)
	}
	return p.view, nil
}

// Execute runs src in the page's script runtime, as the onclick handlers of
// buttons do.
func (p *Page) Execute(name, src string) (string, error) {
	return p.runtime.Execute(name, src)
}

// RequestRerender implements js.Host.
func (p *Page) RequestRerender() {
	if _, err := p.Render(); err != nil {
		p.log.Warn("re-render failed", zap.Error(err))
	}
}

// Alert implements js.Host.
func (p *Page) Alert(msg string) {
	if p.onAlert == nil {
		p.log.Info("alert", zap.String("message", msg))
		return
	}
	p.onAlert(msg)
}
