package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// ResponseDecoder allows a custom response decoder to be plugged in.
// By default the std json decoder is used.
type ResponseDecoder interface {
	Decode(v any) error
}

type ResponseDecoderFunc func(r io.Reader) ResponseDecoder

type APIOption func(opts *apiOptions)

type apiOptions struct {
	log                Logger
	responseDecodeFunc ResponseDecoderFunc
}

func WithLogger(log Logger) APIOption {
	return func(opts *apiOptions) {
		opts.log = log
	}
}

func WithResponseDecoder(decoderFunc ResponseDecoderFunc) APIOption {
	return func(opts *apiOptions) {
		opts.responseDecodeFunc = decoderFunc
	}
}

// API performs typed GETs against arbitrary URLs, decoding each
// response body into T.
//
// T is a compile-time contract only: the body is decoded structurally
// and never validated against T at runtime. A server that returns a
// JSON object missing T's fields, or carrying extras, produces a
// zero-padded value and no error. Callers who need runtime shape
// safety must validate the returned value themselves.
type API[T any] struct {
	c    Interface
	opts apiOptions
}

func NewAPI[T any](c Interface, opt ...APIOption) *API[T] {
	opts := apiOptions{
		log: &DefaultLogger{},
		responseDecodeFunc: func(r io.Reader) ResponseDecoder {
			return json.NewDecoder(r)
		},
	}
	for _, o := range opt {
		o(&opts)
	}

	return &API[T]{
		c:    c,
		opts: opts,
	}
}

// Get performs one GET against url and returns the decoded body.
//
// Failure modes: *TransportError when no response was produced,
// *StatusError for a status outside 200-299, *ParseError for a body
// that is not valid JSON. Each is logged once at the detection site
// and returned unchanged. No retries, and no cancellation of an
// in-flight request beyond what ctx provides.
func (a *API[T]) Get(ctx context.Context, url string) (T, error) {
	var t T

	resp, err := a.do(ctx, url)
	if err != nil {
		return t, err
	}
	defer resp.Body.Close()

	if err := a.opts.responseDecodeFunc(resp.Body).Decode(&t); err != nil {
		perr := &ParseError{URL: url, Err: err}
		a.opts.log.Errorf("fetch: %v", perr)
		var zero T
		return zero, perr
	}
	return t, nil
}

func (a *API[T]) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		terr := &TransportError{URL: url, Err: err}
		a.opts.log.Errorf("fetch: %v", terr)
		return nil, terr
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.c.Do(req)
	if err != nil {
		terr := &TransportError{URL: url, Err: err}
		a.opts.log.Errorf("fetch: %v", terr)
		return nil, terr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		serr := &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
		a.opts.log.Errorf("fetch: %v", serr)
		return nil, serr
	}
	return resp, nil
}

// Get is a convenience wrapper for a one-off typed GET using a default
// client.
func Get[T any](ctx context.Context, url string, opt ...APIOption) (T, error) {
	return NewAPI[T](NewClient(), opt...).Get(ctx, url)
}
