package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/teletela/storefront/internal/errs"
	"github.com/teletela/storefront/internal/model"
)

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// CEPClient looks up Brazilian postal codes on ViaCEP to prefill address
// forms. It is a separate client because the host differs from the backend
// and no credentials may leak to it.
type CEPClient struct {
	base string
	http *http.Client
}

// NewCEPClient builds a lookup client; base defaults to the public ViaCEP.
func NewCEPClient(base string, timeout time.Duration) *CEPClient {
	if base == "" {
		base = "https://viacep.com.br"
	}
	return &CEPClient{base: base, http: &http.Client{Timeout: timeout}}
}

// Lookup resolves a bare 8-digit CEP. Unknown CEPs map to errs.ErrNotFound.
func (c *CEPClient) Lookup(ctx context.Context, cep string) (*model.CEPResult, error) {
	if !cepPattern.MatchString(cep) {
		return nil, fmt.Errorf("cep: %q is not 8 digits", cep)
	}
	url := fmt.Sprintf("%s/ws/%s/json/", c.base, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep: lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var out model.CEPResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("cep: decode: %w", err)
	}
	if out.NotFound {
		return nil, errs.ErrNotFound
	}
	return &out, nil
}
