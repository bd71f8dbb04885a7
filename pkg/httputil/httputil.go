package httputil

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

// Client is a thin wrapper around http.Client returning the status code and
// the body of the response as a string.
type Client struct {
	hc *http.Client
}

// NewClient returns a Client whose requests are bound by the given timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		hc: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request against the given url.
func (c *Client) Get(ctx context.Context, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	return c.do(req)
}

// Post performs a POST request against the given url with the given body and
// optional headers.
func (c *Client) Post(
	ctx context.Context, url, bodyString string, header map[string]string,
) (int, string, error) {
	body := strings.NewReader(bodyString)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return 0, "", err
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (int, string, error) {
	rs, err := c.hc.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := ioutil.ReadAll(rs.Body)
	if err != nil {
		return 0, "", err
	}

	return rs.StatusCode, string(bodyBytes), nil
}
