package logdnasdk

import (
	"strings"

	"github.com/imroc/req/v3"
)

// Client talks to the log service: one-shot REST calls and the live tail.
type Client struct {
	apiURL string
	http   *req.Client
	signer *Signer
}

// New creates a Client for cfg.APIURL.
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	signer := cfg.Signer
	if signer == nil {
		signer = NewSigner()
	}

	apiURL := strings.TrimSuffix(cfg.APIURL, "/")

	return &Client{
		apiURL: apiURL,
		http:   NewHTTPClient().SetBaseURL(apiURL),
		signer: signer,
	}, nil
}

// APIURL returns the base URL the client was created with.
func (c *Client) APIURL() string {
	return c.apiURL
}
