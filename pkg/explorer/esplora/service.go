package esplora

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/bitcli/bitcli/pkg/explorer"
	"github.com/bitcli/bitcli/pkg/httputil"
)

const requestsPerSecond = 10

type esplora struct {
	apiURL  string
	client  *httputil.Client
	limiter ratelimit.Limiter
	cb      *gobreaker.CircuitBreaker
}

// NewService returns a new esplora service as an explorer.Service interface.
// Every request is bound by the given timeout, paced by a rate limiter and
// guarded by a circuit breaker that trips when most requests keep failing.
func NewService(apiURL string, requestTimeout time.Duration) (explorer.Service, error) {
	service := &esplora{
		apiURL:  apiURL,
		client:  httputil.NewClient(requestTimeout),
		limiter: ratelimit.New(requestsPerSecond),
		cb:      newCircuitBreaker(),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "esplora",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests > 10 && ratio >= 0.6
		},
	})
}

func (e *esplora) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, resp, err := e.get(ctx, fmt.Sprintf("%s/blocks/tip/height", e.apiURL))
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s", resp)
	}
	return nil
}

type httpResponse struct {
	status int
	body   string
}

func (e *esplora) get(ctx context.Context, url string) (int, string, error) {
	e.limiter.Take()

	res, err := e.cb.Execute(func() (interface{}, error) {
		status, body, err := e.client.Get(ctx, url)
		if err != nil {
			return nil, err
		}
		return httpResponse{status, body}, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s", explorer.ErrNetworkUnavailable, err)
	}

	r := res.(httpResponse)
	return r.status, r.body, nil
}

func (e *esplora) post(
	ctx context.Context, url, body string, headers map[string]string,
) (int, string, error) {
	e.limiter.Take()

	res, err := e.cb.Execute(func() (interface{}, error) {
		status, respBody, err := e.client.Post(ctx, url, body, headers)
		if err != nil {
			return nil, err
		}
		return httpResponse{status, respBody}, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s", explorer.ErrNetworkUnavailable, err)
	}

	r := res.(httpResponse)
	return r.status, r.body, nil
}
