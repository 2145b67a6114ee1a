package ecdc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/pkg/httputil"
	"github.com/wonny/covid-europe/pkg/logger"
)

// Client downloads COVID-19 datasets from the ECDC open-data endpoint
// ⭐ SSOT: ECDC 데이터 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new ECDC client. baseURL must end with "/".
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// URL returns the CSV download address of a category
func (c *Client) URL(category contracts.Category) string {
	return c.baseURL + string(category) + "/csv"
}

// Download fetches the raw CSV body of a category
func (c *Client) Download(ctx context.Context, category contracts.Category) ([]byte, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	url := c.URL(category)
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &ConnectivityError{URL: url, Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectivityError{URL: url, Reason: err.Error(), Err: err}
	}

	c.logger.WithFields(map[string]interface{}{
		"category": string(category),
		"bytes":    len(body),
	}).Debug("ECDC dataset downloaded")

	return body, nil
}
