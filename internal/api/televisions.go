package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/teletela/storefront/internal/model"
)

// TVFilter narrows the catalog listing.
type TVFilter struct {
	Brands    []string
	Types     []string
	MaxInches float64
	Sort      string
}

func (f *TVFilter) apply(q url.Values) {
	if f == nil {
		return
	}
	for _, b := range f.Brands {
		q.Add("marcas", b)
	}
	for _, t := range f.Types {
		q.Add("tipos", t)
	}
	if f.MaxInches > 0 {
		q.Set("maxPolegada", strconv.FormatFloat(f.MaxInches, 'f', -1, 64))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
}

// Televisions lists active catalog entries with paging and optional filters.
func (c *Client) Televisions(ctx context.Context, page, pageSize int, filter *TVFilter) (Page[model.Television], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	filter.apply(q)
	return getList[model.Television](ctx, c, "/televisoes", q)
}

// InactiveTelevisions lists soft-deleted catalog entries (admin).
func (c *Client) InactiveTelevisions(ctx context.Context, page, pageSize int) (Page[model.Television], error) {
	return getList[model.Television](ctx, c, "/televisoes/inativas", pageQuery(page, pageSize))
}

// TelevisionBrands lists the distinct brand names in the active catalog, used
// to build the brand filter.
func (c *Client) TelevisionBrands(ctx context.Context) ([]string, error) {
	var brands []string
	_, err := c.do(ctx, http.MethodGet, "/televisoes/marcas", nil, nil, &brands)
	return brands, err
}

// TelevisionsByModel lists catalog entries whose model name matches.
func (c *Client) TelevisionsByModel(ctx context.Context, name string, page, pageSize int) (Page[model.Television], error) {
	return getList[model.Television](ctx, c, "/televisoes/modelo/"+url.PathEscape(name), pageQuery(page, pageSize))
}

// TelevisionModel fetches the model line behind a catalog entry, for the edit
// form's dropdown preselection.
func (c *Client) TelevisionModel(ctx context.Context, tvID int64) (*model.TVModel, error) {
	var m model.TVModel
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/televisoes/%d/modelo", tvID), nil, nil, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Television fetches one catalog entry.
func (c *Client) Television(ctx context.Context, id int64) (*model.Television, error) {
	var tv model.Television
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/televisoes/%d/buscar-por-id", id), nil, nil, &tv)
	if err != nil {
		return nil, err
	}
	return &tv, nil
}

// CreateTelevision inserts a catalog entry (admin).
func (c *Client) CreateTelevision(ctx context.Context, req model.TelevisionRequest) (*model.Television, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var tv model.Television
	_, err := c.do(ctx, http.MethodPost, "/televisoes", nil, req, &tv)
	if err != nil {
		return nil, err
	}
	return &tv, nil
}

// UpdateTelevision overwrites a catalog entry (admin).
func (c *Client) UpdateTelevision(ctx context.Context, id int64, req model.TelevisionRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/televisoes/%d/atualizar", id), nil, req, nil)
	return err
}

// DeactivateTelevision soft-deletes a catalog entry (admin).
func (c *Client) DeactivateTelevision(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/televisoes/%d/desativar", id), nil, nil, nil)
	return err
}

// RestoreTelevision reactivates a soft-deleted catalog entry (admin). The
// backend's PATCH requires a body.
func (c *Client) RestoreTelevision(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/televisoes/%d/restaurar", id), nil, struct{}{}, nil)
	return err
}

// UploadTelevisionImage attaches an image to a catalog entry via multipart
// PATCH. The backend pairs the file with the television through the form's
// idTelevisao field.
func (c *Client) UploadTelevisionImage(ctx context.Context, id int64, filename string, img io.Reader) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("idTelevisao", strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("api: encode upload: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("api: encode upload: %w", err)
	}
	if _, err := io.Copy(part, img); err != nil {
		return fmt.Errorf("api: read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("api: encode upload: %w", err)
	}

	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/televisoes/imagem/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u.String(), &buf)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: upload image: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	return nil
}

// TelevisionImageURL returns the download URL for a stored image name.
func (c *Client) TelevisionImageURL(imageName string) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/televisoes/imagem/download/" + imageName
	return u.String()
}
