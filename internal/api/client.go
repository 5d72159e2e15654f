// Package api is the REST client for the Teletela backend. All calls take a
// context so navigation-away cancels in-flight requests instead of letting
// stale responses land on a dead view.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teletela/storefront/internal/errs"
	"github.com/teletela/storefront/internal/model"
)

// TokenSource supplies the bearer token attached to outgoing requests.
type TokenSource interface {
	Token() string
	IsExpired() bool
}

// Error is a non-2xx backend response, carrying the body's message field when
// one was sent.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Unwrap maps auth/lookup statuses onto the shared sentinels.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return errs.ErrUnauthorized
	case http.StatusForbidden:
		return errs.ErrForbidden
	case http.StatusNotFound:
		return errs.ErrNotFound
	}
	return nil
}

// Page is one page of a paginated list plus the total reported by the
// X-Total-Count response header.
type Page[T any] struct {
	Items      []T
	TotalCount int
}

// Client talks to the backend. Construct once at boot and share.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger

	// Resource clients for the flat catalog entities.
	Brands          *CatalogResource[model.Brand, model.BrandRequest]
	Models          *CatalogResource[model.TVModel, model.TVModelRequest]
	Manufacturers   *CatalogResource[model.Manufacturer, model.ManufacturerRequest]
	Suppliers       *CatalogResource[model.Supplier, model.SupplierRequest]
	Characteristics *CatalogResource[model.Characteristic, model.CharacteristicRequest]
}

// New builds a client over baseURL. tokens feeds the auth transport;
// onUnauthorized fires once per intercepted 401/403 response (outside /auth).
func New(baseURL string, tokens TokenSource, timeout time.Duration, log *zap.Logger, onUnauthorized func()) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: bad base url %q: %w", baseURL, err)
	}
	transport := newUnauthorizedWatcher(
		newLoggingTransport(
			newAuthTransport(http.DefaultTransport, tokens),
			log,
		),
		onUnauthorized,
	)
	c := &Client{
		base: base,
		http: &http.Client{Transport: transport, Timeout: timeout},
		log:  log,
	}
	c.Brands = newCatalogResource[model.Brand, model.BrandRequest](c, "/marcas", "buscar-marca-por-id")
	c.Models = newCatalogResource[model.TVModel, model.TVModelRequest](c, "/modelos", "buscar-modelo-por-id")
	c.Manufacturers = newCatalogResource[model.Manufacturer, model.ManufacturerRequest](c, "/fabricantes", "buscar-fabricante-por-id")
	c.Suppliers = newCatalogResource[model.Supplier, model.SupplierRequest](c, "/fornecedores", "buscar-fornecedor-por-id")
	c.Characteristics = newCatalogResource[model.Characteristic, model.CharacteristicRequest](c, "/caracteristicas", "buscar-por-id")
	return c, nil
}

// do issues one JSON request. out may be nil for empty responses. The returned
// response has its body already consumed; only headers/status remain useful.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*http.Response, error) {
	return c.doHeaders(ctx, method, path, query, nil, body, out)
}

// doHeaders is do with extra request headers for the few endpoints that need
// them (the employee delete carries X-Password).
func (c *Client) doHeaders(ctx context.Context, method, path string, query url.Values, headers map[string]string, body, out any) (*http.Response, error) {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, decodeError(resp.StatusCode, raw)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("api: decode response: %w", err)
		}
	}
	return resp, nil
}

// decodeError extracts the backend's message field from an error body.
func decodeError(status int, raw []byte) error {
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"mensagem"`
	}
	_ = json.Unmarshal(raw, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Msg
	}
	return &Error{Status: status, Message: msg}
}

// getList fetches a paginated array, reading X-Total-Count for the total and
// falling back to the page length when the header is absent or unreadable.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) (Page[T], error) {
	var items []T
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, &items)
	if err != nil {
		return Page[T]{}, err
	}
	total := len(items)
	if v := resp.Header.Get("X-Total-Count"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			total = n
		}
	}
	return Page[T]{Items: items, TotalCount: total}, nil
}

// IsStatus reports whether err is an api error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
