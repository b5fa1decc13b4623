package core

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// SourceUnit is one spec file read from disk along with its parsed syntax tree.
type SourceUnit struct {
	Path   string
	Source []byte
	Tree   *sitter.Tree
}

// Close releases the parsed syntax tree.
func (u *SourceUnit) Close() {
	if u.Tree != nil {
		u.Tree.Close()
	}
}

// TestCallInfo classifies one recognized test call found in a spec file.
type TestCallInfo struct {
	// Skipped is true when the call will not execute, whether marked,
	// tagged or wrapped in a disabled scope.
	Skipped bool
	// IsGroup is true for group declarations, which never run on their own.
	IsGroup bool
	// Tags holds the title tags in order of appearance.
	Tags []string
}

// DiscoveredSpec is a spec file that contains at least one runnable test.
type DiscoveredSpec struct {
	Path         string   `json:"path"`
	Capabilities []string `json:"capabilities"`
}

// DiscoveryReport is the output of the discovery stage.
type DiscoveryReport struct {
	Specs    []*DiscoveredSpec `json:"specs"`
	SkipTags []string          `json:"skipTags"`
}

// ProjectLoader locates spec files under a project root and parses them.
type ProjectLoader interface {
	// Load globs the patterns under rootDir and returns a parsed unit per matched file.
	Load(ctx context.Context, rootDir string, patterns []string) ([]*SourceUnit, error)
}

// DiscoveryAnalyzer inspects parsed spec files for runnable tests.
type DiscoveryAnalyzer interface {
	// Discover returns the specs that contain at least one runnable test.
	// Units with no recognized calls or only skipped tests are dropped.
	Discover(units []*SourceUnit) *DiscoveryReport
}
