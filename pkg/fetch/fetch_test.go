package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calder-r/pollkit/types"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

func newTestAPI[T any](t *testing.T) *API[T] {
	t.Helper()
	return NewAPI[T](NewClient(), WithLogger(nopLogger{}))
}

func TestGetDecodesTypedValue(t *testing.T) {
	var gotMethod, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.Todo{
			OwnerID:   7,
			ID:        42,
			Title:     "write more tests",
			Completed: true,
		})
	}))
	defer srv.Close()

	todo, err := newTestAPI[types.Todo](t).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, gotMethod)
	require.NotEmpty(t, gotRequestID)
	require.Equal(t, 7, todo.OwnerID)
	require.Equal(t, 42, todo.ID)
	require.Equal(t, "write more tests", todo.Title)
	require.True(t, todo.Completed)
}

func TestGetNonSuccessStatus(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusTeapot} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		_, err := newTestAPI[types.Todo](t).Get(context.Background(), srv.URL)
		var serr *StatusError
		require.ErrorAs(t, err, &serr)
		require.Equal(t, code, serr.Code)

		srv.Close()
	}
}

func TestGetMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1, "title": `))
	}))
	defer srv.Close()

	todo, err := newTestAPI[types.Todo](t).Get(context.Background(), srv.URL)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)

	// No partial value alongside the error.
	require.Zero(t, todo)
}

func TestGetTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestAPI[types.Todo](t).Get(context.Background(), srv.URL)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	require.Error(t, terr.Unwrap())
}

func TestGetConcurrentRequestsAreIndependent(t *testing.T) {
	handler := func(todo types.Todo) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(todo)
		}
	}
	srvA := httptest.NewServer(handler(types.Todo{OwnerID: 1, ID: 1, Title: "a"}))
	defer srvA.Close()
	srvB := httptest.NewServer(handler(types.Todo{OwnerID: 2, ID: 2, Title: "b", Completed: true}))
	defer srvB.Close()

	api := newTestAPI[types.Todo](t)

	var wg sync.WaitGroup
	var todoA, todoB types.Todo
	var errA, errB error
	wg.Add(2)
	go func() {
		defer wg.Done()
		todoA, errA = api.Get(context.Background(), srvA.URL)
	}()
	go func() {
		defer wg.Done()
		todoB, errB = api.Get(context.Background(), srvB.URL)
	}()
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	require.Equal(t, types.Todo{OwnerID: 1, ID: 1, Title: "a"}, todoA)
	require.Equal(t, types.Todo{OwnerID: 2, ID: 2, Title: "b", Completed: true}, todoB)
}

func TestGetSendsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(WithToken(staticToken("s3cret")))
	api := NewAPI[types.Todo](c, WithLogger(nopLogger{}))
	_, err := api.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Bearer s3cret", got)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }
