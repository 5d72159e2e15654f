package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/teletela/storefront/internal/model"
)

// Register creates a customer account (self-service, public).
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.Profile, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var p model.Profile
	_, err := c.do(ctx, http.MethodPost, "/usuarios", nil, req, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RecoverPassword resets a forgotten password by username+CPF (public).
func (c *Client) RecoverPassword(ctx context.Context, req model.RecoverPasswordRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/usuarios/recuperar-senha", nil, req, nil)
	return err
}

// UpdatePersonalData patches the logged-in user's profile section.
func (c *Client) UpdatePersonalData(ctx context.Context, req model.PersonalDataRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPatch, "/usuarios/dados-pessoais", nil, req, nil)
	return err
}

// UpdateCredentials changes the logged-in user's username/password.
func (c *Client) UpdateCredentials(ctx context.Context, req model.CredentialsRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPatch, "/usuarios/atualizar-credenciais", nil, req, nil)
	return err
}

// User fetches a profile by id.
func (c *Client) User(ctx context.Context, id int64) (*model.Profile, error) {
	var p model.Profile
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d/procurar-id", id), nil, nil, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UserByUsername fetches a profile by username.
func (c *Client) UserByUsername(ctx context.Context, username string) (*model.Profile, error) {
	var p model.Profile
	_, err := c.do(ctx, http.MethodGet, "/usuarios/"+url.PathEscape(username)+"/buscar-username", nil, nil, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Users lists accounts (admin).
func (c *Client) Users(ctx context.Context, page, pageSize int) (Page[model.Profile], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return getList[model.Profile](ctx, c, "/usuarios", q)
}

// CreateUserAdmin creates a customer account on someone's behalf (admin).
func (c *Client) CreateUserAdmin(ctx context.Context, req model.RegisterRequest) (*model.Profile, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var p model.Profile
	_, err := c.do(ctx, http.MethodPost, "/usuarios/admin", nil, req, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateUserDataAdmin overwrites a user's profile section (admin).
func (c *Client) UpdateUserDataAdmin(ctx context.Context, id int64, req model.PersonalDataRequest) (*model.Profile, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var p model.Profile
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/usuarios/admin/%d/dados", id), nil, req, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ResetUserCredentialsAdmin resets a user's credentials (admin).
func (c *Client) ResetUserCredentialsAdmin(ctx context.Context, id int64, req model.CredentialsRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/usuarios/admin/%d/credenciais", id), nil, req, nil)
	return err
}

// DeleteUserAdmin removes an account (admin; permission enforced server-side).
func (c *Client) DeleteUserAdmin(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/usuarios/%d/deletar", id), nil, nil, nil)
	return err
}
