package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/teletela/storefront/internal/model"
)

// Login authenticates against POST /auth. The bearer token travels in the
// Authorization response header; the profile is the body.
func (c *Client) Login(ctx context.Context, creds model.LoginRequest) (*model.Profile, string, error) {
	if err := model.Validate(creds); err != nil {
		return nil, "", fmt.Errorf("login: %w", err)
	}
	var profile model.Profile
	resp, err := c.do(ctx, http.MethodPost, authPath, nil, creds, &profile)
	if err != nil {
		return nil, "", err
	}
	token := strings.TrimSpace(strings.TrimPrefix(resp.Header.Get("Authorization"), "Bearer"))
	if token == "" {
		return nil, "", fmt.Errorf("login: backend sent no Authorization header")
	}
	return &profile, token, nil
}
