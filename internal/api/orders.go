package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/teletela/storefront/internal/model"
)

// CreateOrder places an order draft and returns the persisted order.
func (c *Client) CreateOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var order model.Order
	_, err := c.do(ctx, http.MethodPost, "/pedidos/criar-pedido", nil, req, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder changes an order's address/status within the edit window.
func (c *Client) UpdateOrder(ctx context.Context, id int64, req model.OrderUpdateRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/pedidos/%d/atualizar-pedido", id), nil, req, nil)
	return err
}

// GeneratePix opens a PIX charge for the order and returns the key to display.
func (c *Client) GeneratePix(ctx context.Context, orderID int64) (*model.PixCharge, error) {
	var charge model.PixCharge
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/pedidos/%d/gerar-pix", orderID), nil, nil, &charge)
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

// GenerateBoleto opens a boleto charge for the order.
func (c *Client) GenerateBoleto(ctx context.Context, orderID int64) (*model.BoletoCharge, error) {
	var charge model.BoletoCharge
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/pedidos/%d/gerar-boleto", orderID), nil, nil, &charge)
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

// ConfirmPix marks an open PIX charge as paid (gateway-callback stand-in).
func (c *Client) ConfirmPix(ctx context.Context, pixID int64) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/pedidos/%d/efetuar-pagamento-pix", pixID), nil, nil, nil)
	return err
}

// ConfirmBoleto marks an open boleto charge as paid.
func (c *Client) ConfirmBoleto(ctx context.Context, boletoID int64) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/pedidos/%d/efetuar-pagamento-boleto", boletoID), nil, nil, nil)
	return err
}

// PayByCard validates and submits card data against a freshly created order.
func (c *Client) PayByCard(ctx context.Context, orderID int64, card model.CardRequest) error {
	if err := model.Validate(card); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/pedidos/%d/efetuar-pagamento-cartao", orderID), nil, card, nil)
	return err
}

// MyOrders lists the logged-in customer's orders.
func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	_, err := c.do(ctx, http.MethodGet, "/pedidos/meus-pedidos", nil, nil, &orders)
	return orders, err
}

// Order fetches one order (admin).
func (c *Client) Order(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pedidos/%d/procurar-id", id), nil, nil, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrdersByUsername lists a customer's orders by username.
func (c *Client) OrdersByUsername(ctx context.Context, username string) ([]model.Order, error) {
	var orders []model.Order
	_, err := c.do(ctx, http.MethodGet, "/pedidos/"+url.PathEscape(username)+"/procurar-pedido-username", nil, nil, &orders)
	return orders, err
}

// Orders lists every order (admin).
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	_, err := c.do(ctx, http.MethodGet, "/pedidos", nil, nil, &orders)
	return orders, err
}

// UpdateOrderAdmin overwrites an order (admin).
func (c *Client) UpdateOrderAdmin(ctx context.Context, id int64, req model.OrderRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/pedidos/%d/atualizar-pedido-adm", id), nil, req, nil)
	return err
}

// UpdateOrderStatus moves an order along its status enum (admin). The backend
// takes the bare status id as the body.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status int) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/pedidos/%d/atualizar-status", id), nil, status, nil)
	return err
}

// DeleteOrder removes an order (admin).
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/pedidos/%d/deletar", id), nil, nil, nil)
	return err
}
