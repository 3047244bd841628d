package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestClient(handler http.HandlerFunc) (*httptest.Server, *MOEXClient) {
	srv := httptest.NewServer(handler)
	client := NewMOEXClient(srv.URL, zerolog.Nop()).(*MOEXClient)
	return srv, client
}

func TestGetIndexValue(t *testing.T) {
	srv, client := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/iss/engines/stock/markets/index/indices/IMOEX/values.json", r.URL.Path)
		w.Write([]byte(`{"values": [{"value": 3214.55}]}`))
	})
	defer srv.Close()

	value, ok := client.GetIndexValue(context.Background(), "IMOEX")
	assert.True(t, ok)
	assert.InDelta(t, 3214.55, value, 1e-9)
}

func TestGetIndexValueStringPayload(t *testing.T) {
	// ISS serves some index values as strings.
	srv, client := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values": [{"value": "112.37"}]}`))
	})
	defer srv.Close()

	value, ok := client.GetIndexValue(context.Background(), "RGBI")
	assert.True(t, ok)
	assert.InDelta(t, 112.37, value, 1e-9)
}

func TestGetIndexValueEmptyValues(t *testing.T) {
	srv, client := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values": []}`))
	})
	defer srv.Close()

	_, ok := client.GetIndexValue(context.Background(), "RUGOLD")
	assert.False(t, ok)
}

func TestGetIndexValueBadStatus(t *testing.T) {
	srv, client := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	_, ok := client.GetIndexValue(context.Background(), "IMOEX")
	assert.False(t, ok)
}

func TestGetIndexValueMalformedPayload(t *testing.T) {
	srv, client := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values": [{"value": "not-a-number"}]}`))
	})
	defer srv.Close()

	_, ok := client.GetIndexValue(context.Background(), "IMOEX")
	assert.False(t, ok)
}

func TestGetIndexValueServerDown(t *testing.T) {
	srv, client := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, ok := client.GetIndexValue(context.Background(), "IMOEX")
	assert.False(t, ok)
}
