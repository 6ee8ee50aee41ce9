package logdnasdk

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"
)

// Auth decides how a call proves who it is.
type Auth interface {
	apply(c *Client, r *req.Request, params Params) (Params, error)
}

type anonymousAuth struct{}

func (anonymousAuth) apply(_ *Client, _ *req.Request, params Params) (Params, error) {
	return params, nil
}

type basicAuth struct {
	username string
	password string
}

func (a basicAuth) apply(_ *Client, r *req.Request, params Params) (Params, error) {
	r.SetBasicAuth(a.username, a.password)
	return params, nil
}

type signedAuth struct {
	identity Identity
}

func (a signedAuth) apply(c *Client, r *req.Request, params Params) (Params, error) {
	signed, err := c.signer.Sign(a.identity, nil)
	if err != nil {
		return nil, err
	}
	// a signature is single use, a retry would replay the same ts/hmac
	r.SetRetryCount(0)
	return append(params, signed...), nil
}

// Anonymous sends params without credentials.
func Anonymous() Auth { return anonymousAuth{} }

// BasicAuth sends email:password as HTTP basic auth.
func BasicAuth(email, password string) Auth { return basicAuth{username: email, password: password} }

// Signed merges a fresh HMAC parameter set for identity into the query.
func Signed(identity Identity) Auth { return signedAuth{identity: identity} }

// CallRequest is one REST call. Params are always sent in the query string,
// whatever the method.
type CallRequest struct {
	Method   string
	Endpoint string
	Params   Params
	Auth     Auth
}

// CallResponse is a successful (2xx) response.
type CallResponse struct {
	StatusCode int
	Body       []byte
}

// IsJSON reports whether the body is a JSON object.
func (r *CallResponse) IsJSON() bool {
	return len(r.Body) > 0 && r.Body[0] == '{'
}

// Decode unmarshals a JSON object body into v.
func (r *CallResponse) Decode(v any) error {
	if !r.IsJSON() {
		return fmt.Errorf("%w: %q", ErrUnexpectedResponse, truncate(string(r.Body), 64))
	}
	return jsonUnmarshal(r.Body, v)
}

// Text returns the body as is.
func (r *CallResponse) Text() string {
	return string(r.Body)
}

// Call performs one request. Non-2xx responses come back as *APIError, which
// also matches ErrCredentialRejected for 401 and 403.
func (c *Client) Call(ctx context.Context, call *CallRequest) (*CallResponse, error) {
	auth := call.Auth
	if auth == nil {
		auth = Anonymous()
	}

	method := strings.ToUpper(call.Method)
	if method == "" {
		method = http.MethodGet
	}

	r := c.http.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, uuid.NewString())

	// never replay account mutations
	if method != http.MethodGet {
		r.SetRetryCount(0)
	}

	params, err := auth.apply(c, r, call.Params)
	if err != nil {
		return nil, err
	}

	path := "/" + strings.TrimPrefix(call.Endpoint, "/")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	slog.Debug("api request", "method", method, "endpoint", call.Endpoint)

	resp, err := r.Send(method, path)
	if err != nil {
		return nil, fmt.Errorf("sdk: %s %s: %w", method, call.Endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: resp.String()}
	}

	return &CallResponse{StatusCode: resp.StatusCode, Body: resp.Bytes()}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
