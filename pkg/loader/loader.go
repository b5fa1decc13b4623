package loader

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/core"
	errs "github.com/LambdaTest/axon/pkg/errors"
	"github.com/LambdaTest/axon/pkg/lumber"
	"github.com/LambdaTest/axon/pkg/utils"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"golang.org/x/sync/errgroup"
)

type projectLoader struct {
	cfg    *config.Config
	logger lumber.Logger
}

// New returns a new ProjectLoader.
func New(cfg *config.Config, logger lumber.Logger) core.ProjectLoader {
	return &projectLoader{cfg: cfg, logger: logger}
}

// Load globs the spec patterns under rootDir and parses every matched file.
// Unit paths are slash-separated and relative to rootDir, so they stay
// stable across machines and can be matched against recorded metrics.
func (l *projectLoader) Load(ctx context.Context, rootDir string, patterns []string) ([]*core.SourceUnit, error) {
	fsys := os.DirFS(rootDir)
	paths, err := l.matchSpecFiles(fsys, patterns)
	if err != nil {
		return nil, err
	}
	units := make([]*core.SourceUnit, len(paths))
	g, errCtx := errgroup.WithContext(ctx)
	g.SetLimit(utils.Max(1, l.cfg.Discovery.Concurrency))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			source, rerr := fs.ReadFile(fsys, path)
			if rerr != nil {
				return errors.Wrapf(rerr, "failed to read spec file %s", path)
			}
			tree, perr := ParseSource(errCtx, path, source)
			if perr != nil {
				return errors.Wrapf(perr, "failed to parse spec file %s", path)
			}
			units[i] = &core.SourceUnit{Path: path, Source: source, Tree: tree}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// release the trees parsed before the failure
		for _, unit := range units {
			if unit != nil {
				unit.Close()
			}
		}
		return nil, err
	}
	l.logger.Debugf("loaded %d spec files from %s", len(units), rootDir)
	return units, nil
}

func (l *projectLoader) matchSpecFiles(fsys fs.FS, patterns []string) ([]string, error) {
	seen := map[string]struct{}{}
	paths := []string{}
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			l.logger.Errorf("error while resolving spec pattern %s: %v", pattern, err)
			return nil, errs.InvalidSpecPatternErr(pattern)
		}
		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// ParseSource parses one spec file with the grammar matching its extension.
// The caller owns the returned tree and must close it.
func ParseSource(ctx context.Context, path string, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(languageFor(path))
	return parser.ParseCtx(ctx, nil, source)
}

func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	default:
		return typescript.GetLanguage()
	}
}
