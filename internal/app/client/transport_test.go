package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/domain/book"
	"bookshelf/internal/utils/logger"
)

func TestTransport_Headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/api/v1/zones/Demo/books", r.URL.Path)
		_, _ = w.Write([]byte(`{"books":[{"id":2,"title":"Dune"},{"id":5,"title":"Ubik"}]}`))
	}))
	defer srv.Close()

	tr := NewTransport(srv.URL, time.Second, logger.Discard())
	tr.SetSession("abc")

	snap, err := tr.Query(context.Background(), "Demo")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())

	assert.Equal(t, "Bearer abc", got.Get("Authorization"))
	assert.Equal(t, userAgent, got.Get("User-Agent"))
	_, err = uuid.Parse(got.Get("X-Request-ID"))
	assert.NoError(t, err)

	tr.SetSession("")
	_, err = tr.Query(context.Background(), "Demo")
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
}

func TestTransport_WriteBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/zones/Demo/books":
			var books []book.Book
			assert.NoError(t, json.Unmarshal(body["books"], &books))
			_ = json.NewEncoder(w).Encode(map[string]int{"count": len(books)})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/zones/Demo/books/delete":
			var ids []int
			assert.NoError(t, json.Unmarshal(body["ids"], &ids))
			_ = json.NewEncoder(w).Encode(map[string]int{"count": len(ids) - 1})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	tr := NewTransport(srv.URL, time.Second, logger.Discard())

	n, err := tr.Upsert(context.Background(), "Demo", []book.Book{{ID: 1, Title: "Dune"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = tr.Delete(context.Background(), "Demo", []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTransport_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusPreconditionFailed)
		_, _ = w.Write([]byte(`{"title":"Precondition Failed","status":412,"detail":"object type not registered"}`))
	}))
	defer srv.Close()

	tr := NewTransport(srv.URL, time.Second, logger.Discard())
	_, err := tr.Query(context.Background(), "Demo")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusPreconditionFailed, apiErr.StatusCode)
	assert.Equal(t, "object type not registered", apiErr.Detail)
	assert.True(t, IsStatus(err, http.StatusPreconditionFailed))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestTransport_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr := NewTransport(url, time.Second, logger.Discard())
	err := tr.Health(context.Background())
	require.Error(t, err)
	assert.False(t, isAPIError(err))
}
