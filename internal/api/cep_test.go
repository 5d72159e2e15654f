package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teletela/storefront/internal/errs"
)

func newCEPServer(t *testing.T, handler http.HandlerFunc) *CEPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCEPClient(srv.URL, 5*time.Second)
}

func TestCEPLookup_Found(t *testing.T) {
	c := newCEPServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01001000/json/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`))
	})

	res, err := c.Lookup(context.Background(), "01001000")
	require.NoError(t, err)
	assert.Equal(t, "Praça da Sé", res.Street)
	assert.Equal(t, "São Paulo", res.City)
	assert.Equal(t, "SP", res.State)
}

func TestCEPLookup_Unknown(t *testing.T) {
	// ViaCEP answers 200 with {"erro": true} for unknown codes
	c := newCEPServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": true}`))
	})

	_, err := c.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCEPLookup_RejectsMalformedInput(t *testing.T) {
	c := NewCEPClient("http://127.0.0.1:0", time.Second)

	for _, cep := range []string{"", "1234", "01001-000", "abcdefgh"} {
		_, err := c.Lookup(context.Background(), cep)
		assert.Error(t, err, cep)
	}
}
