package cimatrix

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/core"
	errs "github.com/LambdaTest/axon/pkg/errors"
	"github.com/LambdaTest/axon/pkg/lumber"
	"github.com/google/go-cmp/cmp"
)

func newTestLogger(t *testing.T) lumber.Logger {
	t.Helper()
	logger, err := lumber.NewLogger(&lumber.LoggingConfig{}, false, lumber.InstanceZapLogger)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	return logger
}

func newTestRenderer(t *testing.T, images map[string]string, startupCost int64) core.MatrixRenderer {
	t.Helper()
	cfg := &config.Config{}
	cfg.CI.Provider = constants.GitHubProvider
	cfg.CI.CapabilityImages = images
	cfg.CI.FixtureStartupCost = startupCost
	renderer, err := New(cfg, newTestLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return renderer
}

func TestNewUnsupportedProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.CI.Provider = "circleci"

	if _, err := New(cfg, newTestLogger(t)); err != errs.ErrUnsupportedCIProvider {
		t.Errorf("New() error = %v, want %v", err, errs.ErrUnsupportedCIProvider)
	}
}

func TestRenderBuildsMatrix(t *testing.T) {
	renderer := newTestRenderer(t, map[string]string{
		"email": "ghcr.io/acme/mailpit:v1",
		"pdf":   "ghcr.io/acme/gotenberg:v8",
	}, 30000)
	plan := &core.ShardPlan{
		Shards: []*core.ShardAssignment{
			{Shard: 1, Specs: []string{"tests/email-send.spec.ts"}, TestTime: 150000, Capabilities: []string{"email"}, FixtureCount: 1},
			{Shard: 2, Specs: []string{"tests/export.spec.ts", "tests/settings.spec.ts"}, TestTime: 120000, Capabilities: []string{"pdf"}, FixtureCount: 2},
		},
		TotalTestTime: 270000,
	}

	matrix, err := renderer.Render(plan)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := &core.JobMatrix{Include: []*core.MatrixJob{
		{Shard: 1, Specs: []string{"tests/email-send.spec.ts"}, Services: []string{"ghcr.io/acme/mailpit:v1"}, FixtureCount: 1, EstimatedTime: 180000},
		{Shard: 2, Specs: []string{"tests/export.spec.ts", "tests/settings.spec.ts"}, Services: []string{"ghcr.io/acme/gotenberg:v8"}, FixtureCount: 2, EstimatedTime: 180000},
	}}
	if diff := cmp.Diff(want, matrix); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderMissingCapabilityImage(t *testing.T) {
	renderer := newTestRenderer(t, map[string]string{}, 30000)
	plan := &core.ShardPlan{
		Shards: []*core.ShardAssignment{
			{Shard: 1, Specs: []string{"tests/email-send.spec.ts"}, TestTime: 60000, Capabilities: []string{"email"}, FixtureCount: 1},
		},
		TotalTestTime: 60000,
	}

	if _, err := renderer.Render(plan); err == nil {
		t.Error("Render() error = nil, want missing image error")
	}
}

func TestRenderEmptyPlan(t *testing.T) {
	renderer := newTestRenderer(t, nil, 0)

	if _, err := renderer.Render(&core.ShardPlan{Shards: []*core.ShardAssignment{}}); err != errs.ErrEmptyShardPlan {
		t.Errorf("Render() error = %v, want %v", err, errs.ErrEmptyShardPlan)
	}
}

func TestWriteRendersMatrixFile(t *testing.T) {
	renderer := newTestRenderer(t, map[string]string{"email": "ghcr.io/acme/mailpit:v1"}, 30000)
	plan := &core.ShardPlan{
		Shards: []*core.ShardAssignment{
			{Shard: 1, Specs: []string{"tests/email-send.spec.ts"}, TestTime: 60000, Capabilities: []string{"email"}, FixtureCount: 1},
		},
		TotalTestTime: 60000,
	}
	path := filepath.Join(t.TempDir(), "axon-matrix.json")

	if err := renderer.Write(path, plan); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	matrix := &core.JobMatrix{}
	if err := json.Unmarshal(raw, matrix); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := &core.JobMatrix{Include: []*core.MatrixJob{
		{Shard: 1, Specs: []string{"tests/email-send.spec.ts"}, Services: []string{"ghcr.io/acme/mailpit:v1"}, FixtureCount: 1, EstimatedTime: 90000},
	}}
	if diff := cmp.Diff(want, matrix); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}
}
