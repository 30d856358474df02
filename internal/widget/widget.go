// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package widget implements the search widget: a throttled warm-up trigger
// and a search executor that drives a page through one request/response
// cycle.
package widget

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/site-search/internal/cooldown"
	"github.com/pdiddy/site-search/internal/metrics"
	"github.com/pdiddy/site-search/internal/search"
	"github.com/pdiddy/site-search/internal/ui"
	"github.com/pdiddy/site-search/internal/view"
	"github.com/pdiddy/site-search/pkg/types"
)

// ErrEmptyQuery is returned by Submit when the search text is blank. Nothing
// was sent and the page was not touched.
var ErrEmptyQuery = errors.New("empty query")

// Searcher is the backend the widget talks to. *search.Client implements it.
type Searcher interface {
	Ping(ctx context.Context) error
	Search(ctx context.Context, params search.Params) (types.SearchResponse, error)
}

// Outcome is the result of one completed search.
type Outcome struct {
	// Model is what was rendered.
	Model view.Model

	// HTML is the fragment written into the results container.
	HTML string

	// Err is the failure behind a KindFailure model, nil otherwise.
	Err error
}

// Widget drives one page. The cooldown tracker may be shared between widgets
// that talk to the same backend.
type Widget struct {
	searcher Searcher
	tracker  *cooldown.Tracker
	page     ui.Page
	renderer view.Renderer
	log      *zap.Logger

	warmups sync.WaitGroup
}

// Option configures a Widget.
type Option func(*Widget)

// WithRenderer sets the fragment renderer.
func WithRenderer(r view.Renderer) Option {
	return func(w *Widget) { w.renderer = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(w *Widget) { w.log = l }
}

// New returns a widget for page.
func New(s Searcher, tracker *cooldown.Tracker, page ui.Page, opts ...Option) *Widget {
	w := &Widget{
		searcher: s,
		tracker:  tracker,
		page:     page,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// WarmUp sends a ping to the backend unless a request was sent within the
// cooldown window. The ping runs in the background and its outcome is
// ignored; it is not cancelled when ctx is. WarmUp reports whether a ping was
// dispatched.
func (w *Widget) WarmUp(ctx context.Context) bool {
	if !w.tracker.TryWarmUp() {
		return false
	}

	metrics.WarmUpSent()
	ctx = context.WithoutCancel(ctx)

	w.warmups.Add(1)
	go func() {
		defer w.warmups.Done()
		if err := w.searcher.Ping(ctx); err != nil {
			w.log.Debug("warm-up ping failed", zap.Error(err))
		}
	}()
	return true
}

// Wait blocks until all dispatched warm-up pings have finished.
func (w *Widget) Wait() {
	w.warmups.Wait()
}

// SubmitAsync starts a search. When the "q" parameter is blank it does
// nothing and returns a closed channel. Otherwise the controls are disabled
// and the icons switched to loading before it returns, and the channel
// later delivers exactly one Outcome, after the page has been updated.
//
// There is no timeout besides ctx; a dispatched request cannot be
// withdrawn from the page, only abandoned through ctx, which renders as a
// failure.
func (w *Widget) SubmitAsync(ctx context.Context, params search.Params) <-chan Outcome {
	ch := make(chan Outcome, 1)
	if params.Blank() {
		close(ch)
		return ch
	}

	params = append(search.Params(nil), params...)
	w.log.Debug("dispatching search", zap.String("query", params.Encode()))

	ui.SetBusy(w.page, true)
	go func() {
		defer close(ch)
		ch <- w.complete(ctx, params)
	}()
	w.tracker.Touch()

	return ch
}

// Submit runs a search and waits for it to complete. It returns
// ErrEmptyQuery when nothing was sent. Backend failures are not returned as
// errors; they are rendered and reported in Outcome.Err.
func (w *Widget) Submit(ctx context.Context, params search.Params) (Outcome, error) {
	o, ok := <-w.SubmitAsync(ctx, params)
	if !ok {
		return Outcome{}, ErrEmptyQuery
	}
	return o, nil
}

func (w *Widget) complete(ctx context.Context, params search.Params) Outcome {
	resp, err := w.searcher.Search(ctx, params)

	ui.SetBusy(w.page, false)

	var model view.Model
	if err != nil {
		w.logFailure(err)
		model = view.Failure()
	} else {
		model = view.FromResponse(resp)
	}

	html, rerr := w.renderer.Render(model)
	if rerr != nil {
		w.log.Error("rendering search results", zap.Error(rerr))
		model = view.Failure()
		err = rerr
		html = view.FailureHTML
	}

	ui.ShowContent(w.page, html)
	metrics.SearchCompleted(model.Kind.String())

	return Outcome{Model: model, HTML: html, Err: err}
}

func (w *Widget) logFailure(err error) {
	var se *search.StatusError
	switch {
	case errors.Is(err, search.ErrTransport):
		w.log.Warn("search request failed", zap.Error(err))
	case errors.As(err, &se):
		w.log.Warn("search backend returned an error status", zap.Int("status", se.StatusCode))
	case errors.Is(err, search.ErrMalformedResponse):
		w.log.Error("search backend returned a malformed response", zap.Error(err))
	default:
		w.log.Warn("search failed", zap.Error(err))
	}
}
