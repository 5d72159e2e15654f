package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/teletela/storefront/internal/model"
)

// The employee resource does not follow the catalog grammar: it lives under a
// singular root, creates via /incluir, and its destructive operations demand
// the target's password.

// Employees lists back-office employees.
func (c *Client) Employees(ctx context.Context, page, pageSize int) (Page[model.Employee], error) {
	return getList[model.Employee](ctx, c, "/funcionario", pageQuery(page, pageSize))
}

// EmployeesByName lists employees whose name starts with the given prefix.
func (c *Client) EmployeesByName(ctx context.Context, name string, page, pageSize int) (Page[model.Employee], error) {
	return getList[model.Employee](ctx, c, "/funcionario/"+url.PathEscape(name)+"/procurar-por-nome", pageQuery(page, pageSize))
}

// EmployeesByUsername lists employees whose username matches.
func (c *Client) EmployeesByUsername(ctx context.Context, username string, page, pageSize int) (Page[model.Employee], error) {
	return getList[model.Employee](ctx, c, "/funcionario/"+url.PathEscape(username)+"/procurar-por-username", pageQuery(page, pageSize))
}

// Employee fetches one employee by id.
func (c *Client) Employee(ctx context.Context, id int64) (*model.Employee, error) {
	var e model.Employee
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/funcionario/%d/procurar-por-id", id), nil, nil, &e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmployee registers an employee with their initial credentials.
func (c *Client) CreateEmployee(ctx context.Context, req model.EmployeeRequest) (*model.Employee, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	var e model.Employee
	_, err := c.do(ctx, http.MethodPost, "/funcionario/incluir", nil, req, &e)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEmployeeData changes an employee's basic data; the target's current
// password rides along for server-side authorization.
func (c *Client) UpdateEmployeeData(ctx context.Context, req model.EmployeeDataUpdate) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/funcionario/atualizar-dados-com-validacao", nil, req, nil)
	return err
}

// DeleteEmployee removes an employee. The target's password travels both in
// the body and in the X-Password header, as the backend demands.
func (c *Client) DeleteEmployee(ctx context.Context, req model.EmployeeDeleteRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	headers := map[string]string{"X-Password": req.TargetPassword}
	_, err := c.doHeaders(ctx, http.MethodDelete, "/funcionario/deletar", nil, headers, req, nil)
	return err
}

// UpdateEmployeeCredentials changes another employee's username/password.
func (c *Client) UpdateEmployeeCredentials(ctx context.Context, id int64, req model.CredentialsRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/funcionario/%d/atualizar-credenciais", id), nil, req, nil)
	return err
}

// ResetEmployeePassword resets an employee's password by username+CPF.
func (c *Client) ResetEmployeePassword(ctx context.Context, req model.RecoverPasswordRequest) error {
	if err := model.Validate(req); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, "/funcionario/redefinir-senha", nil, req, nil)
	return err
}
