package cimatrix

import (
	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/core"
	errs "github.com/LambdaTest/axon/pkg/errors"
	"github.com/LambdaTest/axon/pkg/lumber"
)

// New returns the matrix renderer for the configured CI provider.
func New(cfg *config.Config, logger lumber.Logger) (core.MatrixRenderer, error) {
	switch cfg.CI.Provider {
	case constants.GitHubProvider:
		return newGitHubRenderer(cfg, logger), nil
	default:
		return nil, errs.ErrUnsupportedCIProvider
	}
}
