package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/teletela/storefront/internal/model"
)

// CatalogResource is the shared CRUD client for the flat catalog entities
// (brands, model lines, manufacturers, suppliers, characteristics). They share
// one path grammar: create posts to the resource root, soft delete is
// DELETE /{id}/apagar, restore is PATCH /{id}/ativar, and the find-by-id
// segment is named per entity.
type CatalogResource[T any, R any] struct {
	c    *Client
	base string
	byID string
}

func newCatalogResource[T any, R any](c *Client, base, byID string) *CatalogResource[T, R] {
	return &CatalogResource[T, R]{c: c, base: base, byID: byID}
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

// List returns one page of active records.
func (r *CatalogResource[T, R]) List(ctx context.Context, page, pageSize int) (Page[T], error) {
	return getList[T](ctx, r.c, r.base, pageQuery(page, pageSize))
}

// Inactive returns one page of soft-deleted records.
func (r *CatalogResource[T, R]) Inactive(ctx context.Context, page, pageSize int) (Page[T], error) {
	return getList[T](ctx, r.c, r.base+"/inativos", pageQuery(page, pageSize))
}

// FindByName returns one page of records whose name matches.
func (r *CatalogResource[T, R]) FindByName(ctx context.Context, name string, page, pageSize int) (Page[T], error) {
	return getList[T](ctx, r.c, r.base+"/nome/"+url.PathEscape(name), pageQuery(page, pageSize))
}

// Get fetches one record by id.
func (r *CatalogResource[T, R]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	_, err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d/%s", r.base, id, r.byID), nil, nil, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create validates and inserts a record, returning the stored version.
func (r *CatalogResource[T, R]) Create(ctx context.Context, req R) (*T, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var item T
	_, err := r.c.do(ctx, http.MethodPost, r.base, nil, req, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update validates and overwrites a record.
func (r *CatalogResource[T, R]) Update(ctx context.Context, id int64, req R) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d/atualizar", r.base, id), nil, req, nil)
	return err
}

// Deactivate soft-deletes a record.
func (r *CatalogResource[T, R]) Deactivate(ctx context.Context, id int64) error {
	_, err := r.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d/apagar", r.base, id), nil, nil, nil)
	return err
}

// Restore reactivates a soft-deleted record. The backend's PATCH requires a
// body, even an empty one.
func (r *CatalogResource[T, R]) Restore(ctx context.Context, id int64) error {
	_, err := r.c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/ativar", r.base, id), nil, struct{}{}, nil)
	return err
}

// ModelsByBrand lists the model lines of one brand, for form dropdowns.
func (c *Client) ModelsByBrand(ctx context.Context, brandID int64) ([]model.TVModel, error) {
	var models []model.TVModel
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/modelos/marca/%d", brandID), nil, nil, &models)
	return models, err
}

// AssociateBrands links a supplier to the brands it supplies.
func (c *Client) AssociateBrands(ctx context.Context, supplierID int64, brandIDs []int64) (*model.Supplier, error) {
	var s model.Supplier
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/fornecedores/%d/associar-marcas", supplierID), nil, brandIDs, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
