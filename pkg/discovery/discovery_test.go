package discovery

import (
	"context"
	"testing"

	"github.com/LambdaTest/axon/config"
	"github.com/LambdaTest/axon/pkg/constants"
	"github.com/LambdaTest/axon/pkg/core"
	"github.com/LambdaTest/axon/pkg/loader"
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

func newTestAnalyzer(t *testing.T, skipTags ...string) core.DiscoveryAnalyzer {
	t.Helper()
	cfg := &config.Config{}
	cfg.Discovery.SkipTags = skipTags
	cfg.Discovery.CapabilityPrefix = constants.DefaultCapabilityPrefix
	return New(cfg, newTestLogger(t))
}

func parseUnit(t *testing.T, path, source string) *core.SourceUnit {
	t.Helper()
	tree, err := loader.ParseSource(context.Background(), path, []byte(source))
	if err != nil {
		t.Fatalf("ParseSource(%s) error = %v", path, err)
	}
	t.Cleanup(tree.Close)
	return &core.SourceUnit{Path: path, Source: []byte(source), Tree: tree}
}

func TestDiscoverKeepsFilesWithRunnableTests(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	units := []*core.SourceUnit{
		parseUnit(t, "tests/checkout.spec.ts", `
import { test, expect } from '@playwright/test';

test('adds an item to the cart', async ({ page }) => {
  await page.goto('/cart');
});

test.only('applies a discount code', async ({ page }) => {
  await page.goto('/cart?code=SAVE10');
});
`),
		parseUnit(t, "tests/broken.spec.ts", `
import { test } from '@playwright/test';

test.fixme('legacy checkout flow', async ({ page }) => {
  await page.goto('/legacy');
});
`),
		parseUnit(t, "tests/helpers.spec.ts", `export const cartTotal = (items) => items.length * 10;`),
	}

	report := analyzer.Discover(units)

	want := &core.DiscoveryReport{
		Specs: []*core.DiscoveredSpec{
			{Path: "tests/checkout.spec.ts", Capabilities: []string{}},
		},
		SkipTags: []string{},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverSortsReportByPath(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	units := []*core.SourceUnit{
		parseUnit(t, "tests/b.spec.ts", `test('second suite', () => {});`),
		parseUnit(t, "tests/a.spec.ts", `test('first suite', () => {});`),
	}

	report := analyzer.Discover(units)

	got := make([]string, 0, len(report.Specs))
	for _, spec := range report.Specs {
		got = append(got, spec.Path)
	}
	if diff := cmp.Diff([]string{"tests/a.spec.ts", "tests/b.spec.ts"}, got); diff != "" {
		t.Errorf("Discover() path order mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverSkipTags(t *testing.T) {
	tests := []struct {
		name     string
		skipTags []string
		source   string
		want     int
	}{
		{
			name:     "tagged_test_skipped",
			skipTags: []string{"@wip"},
			source:   `test('new billing page @wip', () => {});`,
			want:     0,
		},
		{
			name:     "untagged_test_kept",
			skipTags: []string{"@wip"},
			source:   `test('billing page renders', () => {});`,
			want:     1,
		},
		{
			name:     "mixed_file_kept",
			skipTags: []string{"@wip", "@flaky"},
			source: `
test('billing page renders', () => {});
test('currency switch @flaky', () => {});
`,
			want: 1,
		},
		{
			name:     "tag_matches_whole_token_only",
			skipTags: []string{"@wip"},
			source:   `test('work in progress @wip2', () => {});`,
			want:     1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := newTestAnalyzer(t, tt.skipTags...)
			report := analyzer.Discover([]*core.SourceUnit{parseUnit(t, "tests/billing.spec.ts", tt.source)})
			if len(report.Specs) != tt.want {
				t.Errorf("Discover() specs = %d, want %d", len(report.Specs), tt.want)
			}
		})
	}
}

func TestDiscoverTitleShapes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{name: "plain_string", source: "test('plain login', () => {});", want: 1},
		{name: "template_without_substitution", source: "test(`template login`, () => {});", want: 1},
		{name: "template_with_substitution", source: "const n = 1; test(`login ${n}`, () => {});", want: 0},
		{name: "identifier_title", source: "const title = 'login'; test(title, () => {});", want: 0},
		{name: "no_arguments", source: "test();", want: 0},
		{name: "unrecognized_callee", source: "it('login', () => {});", want: 0},
		{name: "unrecognized_member_callee", source: "test.describe.serial('suite', () => { test('login', () => {}); });", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := newTestAnalyzer(t)
			report := analyzer.Discover([]*core.SourceUnit{parseUnit(t, "tests/login.spec.ts", tt.source)})
			if len(report.Specs) != tt.want {
				t.Errorf("Discover() specs = %d, want %d", len(report.Specs), tt.want)
			}
		})
	}
}

func TestDiscoverNoArgMarkerSkipsEnclosingBlock(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	unit := parseUnit(t, "tests/payments.spec.ts", `
import { test } from '@playwright/test';

test.describe('payments', () => {
  test.fixme();

  test('charges the card', async ({ page }) => {
    await page.goto('/pay');
  });
});
`)

	report := analyzer.Discover([]*core.SourceUnit{unit})

	if len(report.Specs) != 0 {
		t.Errorf("Discover() specs = %d, want 0", len(report.Specs))
	}
}

func TestDiscoverNoArgMarkerLeavesOuterScopeAlone(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	unit := parseUnit(t, "tests/receipts.spec.ts", `
import { test } from '@playwright/test';

test.describe('payments', () => {
  test.skip();

  test('charges the card', () => {});
});

test('shows the receipt', () => {});
`)

	report := analyzer.Discover([]*core.SourceUnit{unit})

	if len(report.Specs) != 1 {
		t.Fatalf("Discover() specs = %d, want 1", len(report.Specs))
	}
	if report.Specs[0].Path != "tests/receipts.spec.ts" {
		t.Errorf("Discover() path = %s, want tests/receipts.spec.ts", report.Specs[0].Path)
	}
}

func TestDiscoverWrapperDisableSkipsBody(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	unit := parseUnit(t, "tests/search.spec.ts", `
import { test } from '@playwright/test';

test.skip('flaky search suite', () => {
  test('finds by name', () => {});
  test('finds by sku', () => {});
});
`)

	report := analyzer.Discover([]*core.SourceUnit{unit})

	if len(report.Specs) != 0 {
		t.Errorf("Discover() specs = %d, want 0", len(report.Specs))
	}
}

func TestDiscoverConditionalSkipStaysRunnable(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	unit := parseUnit(t, "tests/upload.spec.ts", `
import { test } from '@playwright/test';

test('uploads on linux', async ({ page }) => {
  test.skip(process.platform === 'win32', 'no upload support on windows');
  await page.goto('/upload');
});
`)

	report := analyzer.Discover([]*core.SourceUnit{unit})

	if len(report.Specs) != 1 {
		t.Errorf("Discover() specs = %d, want 1", len(report.Specs))
	}
}

func TestDiscoverCapabilities(t *testing.T) {
	analyzer := newTestAnalyzer(t, "@wip")
	unit := parseUnit(t, "tests/notify.spec.ts", `
import { test } from '@playwright/test';

test.describe('notifications @capability:email', () => {
  test('sends a welcome mail @capability:smtp-relay', () => {});
  test.skip('sends a digest @capability:email @wip', () => {});
  test('renders the invoice @capability:pdf:a4', () => {});
  test('logs the delivery @capability:', () => {});
});
`)

	report := analyzer.Discover([]*core.SourceUnit{unit})

	if len(report.Specs) != 1 {
		t.Fatalf("Discover() specs = %d, want 1", len(report.Specs))
	}
	want := []string{"email", "pdf:a4", "smtp-relay"}
	if diff := cmp.Diff(want, report.Specs[0].Capabilities); diff != "" {
		t.Errorf("Discover() capabilities mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverGroupAloneIsNotRunnable(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	unit := parseUnit(t, "tests/suite.spec.ts", `
test.describe('empty suite @capability:email', () => {});
`)

	report := analyzer.Discover([]*core.SourceUnit{unit})

	if len(report.Specs) != 0 {
		t.Errorf("Discover() specs = %d, want 0", len(report.Specs))
	}
}

func TestDiscoverJavaScriptSpec(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	unit := parseUnit(t, "tests/smoke.spec.js", `
const { test } = require('@playwright/test');

test('homepage loads', async ({ page }) => {
  await page.goto('/');
});
`)

	report := analyzer.Discover([]*core.SourceUnit{unit})

	if len(report.Specs) != 1 {
		t.Errorf("Discover() specs = %d, want 1", len(report.Specs))
	}
}

func TestDiscoverReportEchoesSkipTags(t *testing.T) {
	analyzer := newTestAnalyzer(t, "@wip", "@quarantine")

	report := analyzer.Discover(nil)

	want := &core.DiscoveryReport{Specs: []*core.DiscoveredSpec{}, SkipTags: []string{"@wip", "@quarantine"}}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}
