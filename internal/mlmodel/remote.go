package mlmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"agrishield/models"
)

// RemoteClient talks to a model-serving process over HTTP JSON. It implements
// both RiskClassifier and YieldRegressor. Individual calls are fail-fast: no
// per-request retries, and the circuit breaker rejects immediately while the
// server is known to be down.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

// RemoteOptions configures the client.
type RemoteOptions struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec int
}

// NewRemoteClient creates a rate-limited, circuit-broken model client.
func NewRemoteClient(opts RemoteOptions) *RemoteClient {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}

	logger := log.With().Str("component", "model_client").Logger()
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "model-server",
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &RemoteClient{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		breaker: breaker,
		logger:  logger,
	}
}

// WaitReady polls the server's health endpoint with exponential backoff. Used
// once at process start, mirroring the load-models-once lifecycle; request
// paths never retry.
func (c *RemoteClient) WaitReady(ctx context.Context) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("model server not ready: status %d", resp.StatusCode)
		}
		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = 60 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		return fmt.Errorf("waiting for model server: %w", err)
	}
	c.logger.Info().Str("base_url", c.baseURL).Msg("model server ready")
	return nil
}

type predictRequest struct {
	Features models.FeatureVector `json:"features"`
}

type classifyResponse struct {
	Probability float64 `json:"probability"`
}

type yieldResponse struct {
	Yield float64 `json:"yield"`
}

// ClassifyRisk asks the serving process for the at-risk probability.
func (c *RemoteClient) ClassifyRisk(ctx context.Context, features models.FeatureVector) (float64, error) {
	var out classifyResponse
	if err := c.post(ctx, "/v1/classify-risk", features, &out); err != nil {
		return 0, err
	}
	return out.Probability, nil
}

// PredictYield asks the serving process for the yield estimate.
func (c *RemoteClient) PredictYield(ctx context.Context, features models.FeatureVector) (float64, error) {
	var out yieldResponse
	if err := c.post(ctx, "/v1/predict-yield", features, &out); err != nil {
		return 0, err
	}
	return out.Yield, nil
}

func (c *RemoteClient) post(ctx context.Context, path string, features models.FeatureVector, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	payload, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("model server request: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			c.logger.Error().Int("status", resp.StatusCode).Str("path", path).Msg("model server error")
			return nil, fmt.Errorf("model server %s: status %d", path, resp.StatusCode)
		}
		return raw, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}
	return nil
}
