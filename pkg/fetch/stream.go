package fetch

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Stream is a source of decoded values read from a single long-running
// response body.
type Stream[T any] interface {
	// Stop stops the stream and closes the channel returned by
	// ResultChan. It releases the underlying response body and is safe
	// to call more than once.
	Stop()

	// ResultChan returns the channel values are delivered on. It is
	// closed when the body ends, a decode fails, or Stop is called.
	ResultChan() <-chan T
}

// Stream performs one GET against url and decodes the response body as
// a stream of JSON values of type T (one JSON document after another,
// NDJSON-style). Values are delivered on the returned stream's channel
// until the body is exhausted, a value fails to decode, or the stream
// is stopped.
//
// The same status and transport failure modes as Get apply to the
// initial request.
func (a *API[T]) Stream(ctx context.Context, url string) (Stream[T], error) {
	resp, err := a.do(ctx, url)
	if err != nil {
		return nil, err
	}
	return newStreamReader[T](resp.Body, a.opts.log, a.opts.responseDecodeFunc(resp.Body)), nil
}

// streamReader turns a response body plus a decoder into a Stream. One
// goroutine decodes values and sends them down the result channel.
type streamReader[T any] struct {
	result  chan T
	r       io.ReadCloser
	log     Logger
	decoder ResponseDecoder
	sync.Mutex
	stopped bool
}

func newStreamReader[T any](r io.ReadCloser, log Logger, decoder ResponseDecoder) *streamReader[T] {
	sr := &streamReader[T]{
		result:  make(chan T),
		r:       r,
		log:     log,
		decoder: decoder,
	}
	go sr.receive()
	return sr
}

func (sr *streamReader[T]) ResultChan() <-chan T {
	return sr.result
}

func (sr *streamReader[T]) Stop() {
	sr.Lock()
	defer sr.Unlock()
	if !sr.stopped {
		sr.stopped = true
		sr.r.Close()
	}
}

// stopping returns true if Stop() was called previously.
func (sr *streamReader[T]) stopping() bool {
	sr.Lock()
	defer sr.Unlock()
	return sr.stopped
}

// receive decodes values in a loop and sends them down the result
// channel until the body ends or the stream is stopped.
func (sr *streamReader[T]) receive() {
	defer close(sr.result)
	defer sr.Stop()
	for {
		var t T
		if err := sr.decoder.Decode(&t); err != nil {
			// Closing the body mid-decode is the normal Stop path.
			if sr.stopping() {
				return
			}
			switch {
			case errors.Is(err, io.EOF):
				// Stream closed normally.
			case errors.Is(err, io.ErrUnexpectedEOF):
				sr.log.Infof("fetch: unexpected EOF during stream decoding: %v", err)
			default:
				sr.log.Errorf("fetch: unable to decode a value from the stream: %v", err)
			}
			return
		}
		sr.result <- t
	}
}
