package discovery

import (
	"regexp"
	"sort"
	"strings"

	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/core"
	"github.com/LambdaTest/axon/pkg/lumber"
	sitter "github.com/smacker/go-tree-sitter"
)

// tagPattern matches title tags, an @ sign followed by a run of word
// characters, colons or hyphens, e.g. @wip or @capability:source-control.
var tagPattern = regexp.MustCompile(`@[\w:-]+`)

type analyzer struct {
	logger           lumber.Logger
	skipTags         []string
	skipTagSet       map[string]struct{}
	capabilityPrefix string
}

// New returns a new DiscoveryAnalyzer.
func New(cfg *config.Config, logger lumber.Logger) core.DiscoveryAnalyzer {
	skipTagSet := make(map[string]struct{}, len(cfg.Discovery.SkipTags))
	for _, tag := range cfg.Discovery.SkipTags {
		skipTagSet[tag] = struct{}{}
	}
	return &analyzer{
		logger:           logger,
		skipTags:         append([]string{}, cfg.Discovery.SkipTags...),
		skipTagSet:       skipTagSet,
		capabilityPrefix: cfg.Discovery.CapabilityPrefix,
	}
}

func (a *analyzer) Discover(units []*core.SourceUnit) *core.DiscoveryReport {
	specs := make([]*core.DiscoveredSpec, 0, len(units))
	for _, unit := range units {
		calls := a.analyzeSpecFile(unit)
		active := 0
		for _, call := range calls {
			if !call.IsGroup && !call.Skipped {
				active++
			}
		}
		if active == 0 {
			a.logger.Debugf("no runnable tests in %s, dropping file", unit.Path)
			continue
		}
		specs = append(specs, &core.DiscoveredSpec{
			Path:         unit.Path,
			Capabilities: a.extractCapabilities(calls),
		})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Path < specs[j].Path })
	return &core.DiscoveryReport{Specs: specs, SkipTags: append([]string{}, a.skipTags...)}
}

// analyzeSpecFile classifies every recognized test call in one spec file.
// Odd shapes never fail the analysis, a call that does not look like a
// titled test, group or disable marker is simply not a test.
func (a *analyzer) analyzeSpecFile(unit *core.SourceUnit) []*core.TestCallInfo {
	if unit.Tree == nil {
		return nil
	}
	calls := collectCalls(unit.Tree.RootNode())
	skippedScopes := collectSkippedScopes(calls, unit.Source)
	infos := make([]*core.TestCallInfo, 0, len(calls))
	for _, call := range calls {
		isGroup := false
		isDisable := false
		switch calleeName(call, unit.Source) {
		case constants.TestCall, constants.FocusTestCall:
		case constants.GroupCall:
			isGroup = true
		case constants.SkipTestCall, constants.FixmeTestCall:
			isDisable = true
		default:
			continue
		}
		title, ok := literalTitle(call, unit.Source)
		if !ok {
			// title-less calls are ignored, no-argument disable markers were
			// already folded into the skipped scopes
			continue
		}
		tags := tagPattern.FindAllString(title, -1)
		skipped := isDisable || a.hasSkipTag(tags) || insideSkippedScope(call, skippedScopes)
		infos = append(infos, &core.TestCallInfo{Skipped: skipped, IsGroup: isGroup, Tags: tags})
	}
	return infos
}

// collectSkippedScopes records the start offset of every block disabled by a
// marker call. Two source patterns qualify: a marker called with no arguments
// skips its enclosing block, a marker wrapping an inline function skips that
// function's body block.
func collectSkippedScopes(calls []*sitter.Node, source []byte) map[uint32]struct{} {
	scopes := map[uint32]struct{}{}
	for _, call := range calls {
		callee := calleeName(call, source)
		if callee != constants.SkipTestCall && callee != constants.FixmeTestCall {
			continue
		}
		args := callArguments(call)
		if len(args) == 0 {
			if block := enclosingBlock(call); block != nil {
				scopes[block.StartByte()] = struct{}{}
			}
			continue
		}
		if _, ok := literalTitle(call, source); !ok {
			continue
		}
		last := args[len(args)-1]
		if !isFunctionLiteral(last) {
			continue
		}
		if body := functionBody(last); body != nil {
			scopes[body.StartByte()] = struct{}{}
		}
	}
	return scopes
}

// insideSkippedScope walks the chain of enclosing blocks outward and reports
// whether any of them was recorded as skipped. Scope membership can only add
// a skip, never remove one.
func insideSkippedScope(call *sitter.Node, scopes map[uint32]struct{}) bool {
	if len(scopes) == 0 {
		return false
	}
	for anc := call.Parent(); anc != nil; anc = anc.Parent() {
		if anc.Type() != "statement_block" {
			continue
		}
		if _, ok := scopes[anc.StartByte()]; ok {
			return true
		}
	}
	return false
}

// extractCapabilities collects capability names from every tag seen in the
// file. Tags on skipped calls and on group declarations count too, a
// capability requirement is a property of the file, not of a single test.
func (a *analyzer) extractCapabilities(calls []*core.TestCallInfo) []string {
	set := map[string]struct{}{}
	for _, call := range calls {
		for _, tag := range call.Tags {
			if !strings.HasPrefix(tag, a.capabilityPrefix) {
				continue
			}
			capability := strings.TrimPrefix(tag, a.capabilityPrefix)
			if capability == "" {
				continue
			}
			set[capability] = struct{}{}
		}
	}
	capabilities := make([]string, 0, len(set))
	for capability := range set {
		capabilities = append(capabilities, capability)
	}
	sort.Strings(capabilities)
	return capabilities
}

func (a *analyzer) hasSkipTag(tags []string) bool {
	for _, tag := range tags {
		if _, ok := a.skipTagSet[tag]; ok {
			return true
		}
	}
	return false
}
