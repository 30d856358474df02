// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package widget

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/site-search/internal/cooldown"
	"github.com/pdiddy/site-search/internal/search"
	"github.com/pdiddy/site-search/internal/ui"
	"github.com/pdiddy/site-search/internal/view"
)

const (
	twoResultsJSON = `{"results":[
		{"publicationdate":"2024-08-06","title":"Kafka Connect","uri":"/blog/kafka-connect/","fragment":"about connectors"},
		{"publicationdate":"2023-01-15","title":"Flink SQL","uri":"/blog/flink-sql/","fragment":"streaming queries"}
	]}`

	wantEmpty   = `<div class="search-results"><h1 class="title">Search Results</h1><div class="post">No results found</div></div>`
	wantFailure = `<div class="search-results"><h1 class="title">Uh oh</h1><p>A technical error occurred; Please try again later.</p></div>`
)

// backend is a fake search backend counting requests per endpoint.
type backend struct {
	mu       sync.Mutex
	pings    int32
	searches int32
	status   int
	body     string
	release  chan struct{} // when non-nil, searches block until closed
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/ping":
		atomic.AddInt32(&b.pings, 1)
		w.WriteHeader(http.StatusOK)
	case "/search":
		atomic.AddInt32(&b.searches, 1)
		if b.release != nil {
			<-b.release
		}
		b.mu.Lock()
		status, body := b.status, b.body
		b.mu.Unlock()
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *backend) setBody(body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.body = body
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	widget  *Widget
	page    *ui.Document
	backend *backend
	server  *httptest.Server
	clock   *fakeClock
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T, b *backend) *fixture {
	t.Helper()
	ts := httptest.NewServer(b)
	t.Cleanup(ts.Close)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	core, logs := observer.New(zapcore.DebugLevel)
	page := ui.DefaultDocument()
	client := &search.Client{BaseURL: ts.URL + "/", APIKey: "k", HTTP: ts.Client()}

	w := New(client, cooldown.New(14*time.Minute, cooldown.WithClock(clock.Now)), page,
		WithLogger(zap.New(core)))

	return &fixture{widget: w, page: page, backend: b, server: ts, clock: clock, logs: logs}
}

func assertIdle(t *testing.T, page *ui.Document) {
	t.Helper()
	for _, id := range ui.Controls {
		assert.False(t, page.Disabled(id), "%s should be enabled", id)
	}
	for _, id := range ui.Icons {
		assert.Equal(t, ui.IconIdle, page.Class(id), id)
	}
}

func TestSubmit_BlankQueryDoesNothing(t *testing.T) {
	for _, q := range []string{"", " ", "\t \n"} {
		t.Run(fmt.Sprintf("%q", q), func(t *testing.T) {
			f := newFixture(t, &backend{body: twoResultsJSON})
			before, err := f.page.HTML()
			require.NoError(t, err)

			_, err = f.widget.Submit(context.Background(), search.NewParams("q", q))
			assert.ErrorIs(t, err, ErrEmptyQuery)

			after, err := f.page.HTML()
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Equal(t, int32(0), atomic.LoadInt32(&f.backend.searches))
			assert.True(t, f.widget.tracker.Last().IsZero(), "blank query must not count as a request")
		})
	}
}

func TestSubmitAsync_BusyBeforeResponse(t *testing.T) {
	b := &backend{body: twoResultsJSON, release: make(chan struct{})}
	f := newFixture(t, b)

	ch := f.widget.SubmitAsync(context.Background(), search.NewParams("q", "kafka"))

	for _, id := range ui.Controls {
		assert.True(t, f.page.Disabled(id), "%s should be disabled", id)
	}
	for _, id := range ui.Icons {
		assert.Equal(t, ui.IconLoading, f.page.Class(id), id)
	}
	assert.Empty(t, f.page.InnerHTML(ui.MainContent))
	assert.False(t, f.widget.tracker.Last().IsZero())

	close(b.release)
	o, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, view.KindResults, o.Model.Kind)
	assertIdle(t, f.page)

	_, ok = <-ch
	assert.False(t, ok, "exactly one outcome per search")
}

func TestSubmit_TwoResults(t *testing.T) {
	f := newFixture(t, &backend{body: twoResultsJSON})

	o, err := f.widget.Submit(context.Background(), search.NewParams("q", "streaming"))
	require.NoError(t, err)
	require.NoError(t, o.Err)

	content := f.page.InnerHTML(ui.MainContent)
	assert.Equal(t, o.HTML, content)
	assert.Equal(t, 2, strings.Count(content, `<div class="post">`))
	assert.Contains(t, content, `<div class="meta">2024-08-06</div>`)
	assert.Contains(t, content, `<a href="/blog/kafka-connect/">Kafka Connect</a>`)
	assert.Contains(t, content, `<span class="description">about connectors</span>`)
	assert.Contains(t, content, `<a href="/blog/flink-sql/">Flink SQL</a>`)
	assert.Less(t, strings.Index(content, "Kafka Connect"), strings.Index(content, "Flink SQL"))
	assertIdle(t, f.page)
}

func TestSubmit_EmptyResults(t *testing.T) {
	f := newFixture(t, &backend{body: `{"results":[]}`})

	o, err := f.widget.Submit(context.Background(), search.NewParams("q", "nothing"))
	require.NoError(t, err)

	assert.Equal(t, view.KindEmpty, o.Model.Kind)
	assert.Equal(t, wantEmpty, f.page.InnerHTML(ui.MainContent))
	assertIdle(t, f.page)
}

func TestSubmit_Non200(t *testing.T) {
	f := newFixture(t, &backend{status: http.StatusServiceUnavailable, body: twoResultsJSON})

	o, err := f.widget.Submit(context.Background(), search.NewParams("q", "kafka"))
	require.NoError(t, err)

	var se *search.StatusError
	require.ErrorAs(t, o.Err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, view.KindFailure, o.Model.Kind)
	assert.Equal(t, wantFailure, f.page.InnerHTML(ui.MainContent))
	assertIdle(t, f.page)
	assert.Equal(t, 1, f.logs.FilterMessage("search backend returned an error status").Len())
}

func TestSubmit_TransportFailure(t *testing.T) {
	f := newFixture(t, &backend{body: twoResultsJSON})
	f.server.Close()

	o, err := f.widget.Submit(context.Background(), search.NewParams("q", "kafka"))
	require.NoError(t, err)

	assert.ErrorIs(t, o.Err, search.ErrTransport)
	assert.Equal(t, wantFailure, f.page.InnerHTML(ui.MainContent))
	assertIdle(t, f.page)

	entries := f.logs.FilterMessage("search request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestSubmit_MalformedJSONRendersFailure(t *testing.T) {
	f := newFixture(t, &backend{body: `{"results": [{"title": `})

	o, err := f.widget.Submit(context.Background(), search.NewParams("q", "kafka"))
	require.NoError(t, err)

	assert.ErrorIs(t, o.Err, search.ErrMalformedResponse)
	assert.Equal(t, wantFailure, f.page.InnerHTML(ui.MainContent))
	assertIdle(t, f.page)
}

func TestSubmit_ReplacesPreviousContent(t *testing.T) {
	b := &backend{body: twoResultsJSON}
	f := newFixture(t, b)

	_, err := f.widget.Submit(context.Background(), search.NewParams("q", "kafka"))
	require.NoError(t, err)

	b.setBody(`{"results":[]}`)
	_, err = f.widget.Submit(context.Background(), search.NewParams("q", "kafka"))
	require.NoError(t, err)

	assert.Equal(t, wantEmpty, f.page.InnerHTML(ui.MainContent))
}

func TestWarmUp_OncePerWindow(t *testing.T) {
	f := newFixture(t, &backend{})

	assert.True(t, f.widget.WarmUp(context.Background()))
	f.clock.Advance(time.Minute)
	assert.False(t, f.widget.WarmUp(context.Background()))
	f.widget.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.backend.pings))

	f.clock.Advance(14 * time.Minute)
	assert.True(t, f.widget.WarmUp(context.Background()))
	f.widget.Wait()
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.backend.pings))
}

func TestWarmUp_SuppressedAfterSearch(t *testing.T) {
	f := newFixture(t, &backend{body: `{"results":[]}`})

	_, err := f.widget.Submit(context.Background(), search.NewParams("q", "kafka"))
	require.NoError(t, err)

	assert.False(t, f.widget.WarmUp(context.Background()))
	f.widget.Wait()
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.backend.pings))
}

func TestWarmUp_FailureIsSilent(t *testing.T) {
	f := newFixture(t, &backend{})
	f.server.Close()

	assert.True(t, f.widget.WarmUp(context.Background()))
	f.widget.Wait()

	assertIdle(t, f.page)
	assert.Empty(t, f.page.InnerHTML(ui.MainContent))
	assert.Equal(t, 1, f.logs.FilterMessage("warm-up ping failed").Len())
}

func TestWarmUp_SurvivesCancelledContext(t *testing.T) {
	f := newFixture(t, &backend{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, f.widget.WarmUp(ctx))
	f.widget.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&f.backend.pings))
}
