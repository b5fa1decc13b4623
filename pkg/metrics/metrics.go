package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/core"
	errs "github.com/LambdaTest/axon/pkg/errors"
	"github.com/LambdaTest/axon/pkg/lumber"
	"github.com/LambdaTest/axon/pkg/utils"
	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
)

type metricsSource struct {
	cfg      *config.Config
	requests core.Requests
	logger   lumber.Logger
}

// New returns a new MetricsSource.
func New(cfg *config.Config, requests core.Requests, logger lumber.Logger) core.MetricsSource {
	return &metricsSource{
		cfg:      cfg,
		requests: requests,
		logger:   logger,
	}
}

// Load reads the local metrics file. A missing file is not an error, every
// spec then falls back to the default duration.
func (m *metricsSource) Load(ctx context.Context) (core.TestMetrics, error) {
	raw, err := os.ReadFile(m.cfg.Metrics.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Warnf("metrics file %s not found, falling back to default spec durations", m.cfg.Metrics.FilePath)
			return core.TestMetrics{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read metrics file %s", m.cfg.Metrics.FilePath)
	}
	metrics := core.TestMetrics{}
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, errors.Wrapf(err, "failed to parse metrics file %s", m.cfg.Metrics.FilePath)
	}
	m.logger.Debugf("loaded durations for %d specs from %s", len(metrics), m.cfg.Metrics.FilePath)
	return metrics, nil
}

// Fetch downloads fresh metrics from the configured endpoint and persists
// them to the local metrics file.
func (m *metricsSource) Fetch(ctx context.Context) (core.TestMetrics, error) {
	if m.cfg.Metrics.Endpoint == "" {
		return nil, errs.ErrMissingMetricsEndpoint
	}
	var metrics core.TestMetrics
	requestID := utils.GenerateUUID()
	err := retry.Do(func() error {
		reqCtx, cancel := context.WithTimeout(ctx, m.cfg.Metrics.FetchTimeout)
		defer cancel()
		respBody, rerr := m.requests.MakeAPIRequest(reqCtx, http.MethodGet,
			m.cfg.Metrics.Endpoint, nil, m.cfg.Metrics.Token, requestID)
		if rerr != nil {
			return rerr
		}
		metrics = core.TestMetrics{}
		return json.Unmarshal(respBody, &metrics)
	}, retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(constants.MetricsFetchMaxRetries),
		retry.Delay(constants.MetricsFetchRetryDelay),
		retry.MaxJitter(constants.MetricsFetchRetryJitter),
		retry.OnRetry(func(n uint, err error) {
			m.logger.Errorf("error while fetching test metrics, retry %d, error: %+v", n, err)
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := m.persist(metrics); err != nil {
		return nil, err
	}
	m.logger.Infof("fetched durations for %d specs", len(metrics))
	return metrics, nil
}

// persist writes the metrics file atomically so a concurrent plan run never
// reads a half-written file.
func (m *metricsSource) persist(metrics core.TestMetrics) error {
	raw, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(m.cfg.Metrics.FilePath)
	tmp, err := os.CreateTemp(dir, ".metrics-*.json")
	if err != nil {
		return errors.Wrap(err, "failed to create temp metrics file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write temp metrics file")
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), m.cfg.Metrics.FilePath)
}
