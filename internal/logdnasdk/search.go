package logdnasdk

import (
	"context"
	"fmt"
	"net/http"
)

const endpointSearch = "search"

// SearchRange is the time span a search covered, epoch millis.
type SearchRange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

type SearchResponse struct {
	Range *SearchRange `json:"range,omitempty"`
	Lines []LogRecord  `json:"lines"`
}

// Search runs a point-in-time search with the given filter.
func (c *Client) Search(ctx context.Context, identity Identity, filter Filter) (*SearchResponse, error) {
	res, err := c.Call(ctx, &CallRequest{
		Method:   http.MethodGet,
		Endpoint: endpointSearch,
		Params:   filter.Params(),
		Auth:     Signed(identity),
	})
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := res.Decode(&resp); err != nil {
		return nil, fmt.Errorf("sdk: search: %w", err)
	}
	return &resp, nil
}
