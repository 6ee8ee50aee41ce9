package logdnasdk

import (
	"context"
	"fmt"
	"net/http"
)

const (
	endpointRegister = "register"
	endpointLogin    = "login"
	endpointInfo     = "info"
)

// Register creates an account. The call is anonymous.
func (c *Client) Register(ctx context.Context, reg *RegisterRequest) (*RegisterResponse, error) {
	res, err := c.Call(ctx, &CallRequest{
		Method:   http.MethodPost,
		Endpoint: endpointRegister,
		Params: Params{
			{Key: "email", Value: reg.Email},
			{Key: "key", Value: reg.Key},
			{Key: "firstname", Value: reg.FirstName},
			{Key: "lastname", Value: reg.LastName},
			{Key: "company", Value: reg.Company},
		},
		Auth: Anonymous(),
	})
	if err != nil {
		return nil, err
	}

	var resp RegisterResponse
	if err := res.Decode(&resp); err != nil {
		return nil, fmt.Errorf("sdk: register: %w", err)
	}
	return &resp, nil
}

// Login exchanges email and password for a token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	res, err := c.Call(ctx, &CallRequest{
		Method:   http.MethodPost,
		Endpoint: endpointLogin,
		Auth:     BasicAuth(email, password),
	})
	if err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := res.Decode(&resp); err != nil {
		return nil, fmt.Errorf("sdk: login: %w", err)
	}
	return &resp, nil
}

// Info returns the account details for identity, JSON or plain text.
func (c *Client) Info(ctx context.Context, identity Identity) (*CallResponse, error) {
	return c.Call(ctx, &CallRequest{
		Method:   http.MethodGet,
		Endpoint: endpointInfo,
		Auth:     Signed(identity),
	})
}
