package resource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisp/pkg/html"
	"wisp/pkg/js"
	"wisp/pkg/render"
)

// staticFetcher serves fixed documents keyed by URL.
type staticFetcher map[string]string

func (f staticFetcher) Fetch(_ context.Context, rawURL string) (*Response, error) {
	body, ok := f[rawURL]
	if !ok {
		return nil, &FetchError{Kind: NetworkError, URL: rawURL}
	}
	return &Response{Type: Basic, Status: http.StatusOK, Data: []byte(body)}, nil
}

func texts(c *render.Container) []string {
	var out []string
	render.Walk(c, func(w render.Widget) {
		if t, ok := w.(*render.Text); ok {
			out = append(out, t.Text)
		}
	})
	return out
}

func TestPage_RenderBeforeNavigate(t *testing.T) {
	p := NewPage(staticFetcher{})
	_, err := p.Render()
	assert.ErrorIs(t, err, ErrNoDocument)
	assert.Nil(t, p.View())
}

func TestPage_Navigate(t *testing.T) {
	p := NewPage(staticFetcher{"http://x/": `<html><p>hello</p></html>`})
	require.NoError(t, p.Navigate(context.Background(), "http://x/"))

	assert.Equal(t, "http://x/", p.URL())
	assert.Equal(t, "http://x/", p.Document().URL)
	assert.Equal(t, []string{"hello"}, texts(p.View()))
	assert.Equal(t, 1, p.Renders())
}

func TestPage_ScriptsMutateAndRerender(t *testing.T) {
	var rendered []*render.Container
	p := NewPage(staticFetcher{
		"http://x/": `<html><p id="msg">before</p><script>document.getElementById("msg").textContent = "after";</script><script>document.appendChild("tail");</script></html>`,
	}, WithRenderHook(func(c *render.Container) { rendered = append(rendered, c) }))

	require.NoError(t, p.Navigate(context.Background(), "http://x/"))
	assert.Equal(t, 3, p.Renders(), "initial render plus one per mutation")
	require.Len(t, rendered, 3)
	assert.Equal(t, []string{"before"}, texts(rendered[0]))
	assert.Equal(t, []string{"after", "tail"}, texts(p.View()))
}

func TestPage_Alert(t *testing.T) {
	var alerts []string
	p := NewPage(staticFetcher{"http://x/": `<html><script>alert("hi " + document.URL)</script></html>`},
		WithAlert(func(msg string) { alerts = append(alerts, msg) }))
	require.NoError(t, p.Navigate(context.Background(), "http://x/"))
	assert.Equal(t, []string{"hi http://x/"}, alerts)
}

func TestPage_NavigateErrors(t *testing.T) {
	p := NewPage(staticFetcher{
		"http://bad/":    `<p></div>`,
		"http://throws/": `<html><script>throw new Error("boom")</script><p>kept</p></html>`,
	})

	err := p.Navigate(context.Background(), "http://missing/")
	var pe *PageError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "fetch", pe.Stage)
	assert.ErrorIs(t, err, ErrNetwork)

	err = p.Navigate(context.Background(), "http://bad/")
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "parse", pe.Stage)
	assert.ErrorIs(t, err, html.ErrInvalidResource)
	assert.Nil(t, p.Document(), "failed parse does not replace the document")

	err = p.Navigate(context.Background(), "http://throws/")
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "script", pe.Stage)
	var se *js.ScriptError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, js.ExecuteError, se.Kind)
	assert.Equal(t, []string{"kept"}, texts(p.View()), "document stays rendered")
}

func TestPage_NewIDPerNavigation(t *testing.T) {
	p := NewPage(staticFetcher{"http://x/": `<p>a</p>`})
	first := p.ID()
	require.NoError(t, p.Navigate(context.Background(), "http://x/"))
	second := p.ID()
	require.NoError(t, p.Navigate(context.Background(), "http://x/"))
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, p.ID())
}

func TestPage_Execute(t *testing.T) {
	p := NewPage(staticFetcher{"http://x/": `<html><button id="b" onclick="document.getElementById('b').textContent = 'clicked'">press</button></html>`})
	require.NoError(t, p.Navigate(context.Background(), "http://x/"))

	buttons := []*render.Button{}
	render.Walk(p.View(), func(w render.Widget) {
		if b, ok := w.(*render.Button); ok {
			buttons = append(buttons, b)
		}
	})
	require.Len(t, buttons, 1)
	_, err := p.Execute("onclick", buttons[0].OnClick)
	require.NoError(t, err)

	render.Walk(p.View(), func(w render.Widget) {
		if b, ok := w.(*render.Button); ok {
			assert.Equal(t, "clicked", b.Label)
		}
	})
}

func TestPage_OverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><p>served</p></html>`))
	}))
	defer srv.Close()

	p := NewPage(NewFetcher(srv.Client(), "", nil))
	require.NoError(t, p.Navigate(context.Background(), srv.URL+"/"))
	assert.Equal(t, []string{"served"}, texts(p.View()))
}
