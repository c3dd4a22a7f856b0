package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ozkatz/cloudbytes/pkg/remote"
)

func TestHttpFetcher_Read(t *testing.T) {
	var lock sync.Mutex
	var requestIds []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		requestIds = append(requestIds, r.Header.Get("X-Request-Id"))
		lock.Unlock()
		switch r.URL.Path {
		case "/lorem.txt":
			_, _ = w.Write([]byte(lorem))
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	h := remote.NewHttpFetcher(server.Client())

	t.Run("existing object", func(t *testing.T) {
		data, err := h.Read(ctx, server.URL+"/lorem.txt")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if string(data) != lorem {
			t.Errorf("wrong body returned: %s", data)
		}
		lock.Lock()
		defer lock.Unlock()
		if len(requestIds) == 0 || requestIds[len(requestIds)-1] == "" {
			t.Errorf("expected request id header to be set")
		}
	})
	t.Run("not found", func(t *testing.T) {
		_, err := h.Read(ctx, server.URL+"/missing")
		if !errors.Is(err, remote.ErrDoesNotExist) {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("server error", func(t *testing.T) {
		_, err := h.Read(ctx, server.URL+"/broken")
		if !errors.Is(err, remote.ErrUnexpectedStatus) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
