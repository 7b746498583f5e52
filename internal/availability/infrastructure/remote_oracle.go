package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// RemoteOracleConfig configures the remote availability client.
type RemoteOracleConfig struct {
	BaseURL          string
	RequestTimeout   time.Duration
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

// DefaultRemoteOracleConfig returns sensible client defaults.
func DefaultRemoteOracleConfig(baseURL string) RemoteOracleConfig {
	return RemoteOracleConfig{
		BaseURL:          baseURL,
		RequestTimeout:   5 * time.Second,
		FailureThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// RemoteOracle consults an external scheduling service over HTTP. Calls run
// behind a circuit breaker so a degraded scheduling service cannot stall
// every reschedule flow.
type RemoteOracle struct {
	client  *http.Client
	config  RemoteOracleConfig
	breaker *gobreaker.CircuitBreaker[bool]
	logger  *slog.Logger
}

// NewRemoteOracle creates a circuit-broken HTTP availability client.
func NewRemoteOracle(config RemoteOracleConfig, logger *slog.Logger) *RemoteOracle {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    "availability-oracle",
		Timeout: config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &RemoteOracle{
		client:  &http.Client{Timeout: config.RequestTimeout},
		config:  config,
		breaker: gobreaker.NewCircuitBreaker[bool](settings),
		logger:  logger,
	}
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// IsTutorAvailable asks the remote service whether the tutor is free.
func (o *RemoteOracle) IsTutorAvailable(ctx context.Context, tutorID uuid.UUID, start, end time.Time) (bool, error) {
	return o.breaker.Execute(func() (bool, error) {
		endpoint := fmt.Sprintf("%s/tutors/%s/availability?%s",
			o.config.BaseURL, tutorID, url.Values{
				"start": {start.UTC().Format(time.RFC3339)},
				"end":   {end.UTC().Format(time.RFC3339)},
			}.Encode())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return false, err
		}

		resp, err := o.client.Do(req)
		if err != nil {
			return false, fmt.Errorf("availability request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return false, fmt.Errorf("availability service returned status %d", resp.StatusCode)
		}

		var body availabilityResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false, fmt.Errorf("failed to decode availability response: %w", err)
		}

		return body.Available, nil
	})
}
