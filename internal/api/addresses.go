package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/teletela/storefront/internal/model"
)

// The address and municipality resources live under singular path roots on
// the backend.

// MyAddresses lists the logged-in user's delivery addresses; the token decides
// whose they are.
func (c *Client) MyAddresses(ctx context.Context) ([]model.Address, error) {
	var addrs []model.Address
	_, err := c.do(ctx, http.MethodGet, "/endereco/buscar-endereco-user", nil, nil, &addrs)
	return addrs, err
}

// CreateAddress adds a delivery address for the logged-in user.
func (c *Client) CreateAddress(ctx context.Context, req model.AddressRequest) (*model.Address, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var addr model.Address
	_, err := c.do(ctx, http.MethodPost, "/endereco", nil, req, &addr)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// UpdateAddress overwrites a delivery address.
func (c *Client) UpdateAddress(ctx context.Context, id int64, req model.AddressRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/endereco/%d/atualizar", id), nil, req, nil)
	return err
}

// DeleteAddress removes a delivery address.
func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/endereco/%d/deletar", id), nil, nil, nil)
	return err
}

// Municipalities lists the selectable cities for address forms.
func (c *Client) Municipalities(ctx context.Context) ([]model.Municipality, error) {
	var ms []model.Municipality
	_, err := c.do(ctx, http.MethodGet, "/municipio", nil, nil, &ms)
	return ms, err
}

// Municipality fetches one city by id.
func (c *Client) Municipality(ctx context.Context, id int64) (*model.Municipality, error) {
	var m model.Municipality
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/municipio/%d/procurar-id", id), nil, nil, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// EnsureMunicipality returns the city matching name/UF, creating it on the
// backend when it does not exist yet. Backs the CEP-prefilled address form.
func (c *Client) EnsureMunicipality(ctx context.Context, req model.MunicipalityCheckRequest) (*model.Municipality, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var m model.Municipality
	_, err := c.do(ctx, http.MethodPost, "/municipio/verificar-ou-cadastrar", nil, req, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
