package main

import (
	"strings"
	"testing"
)

func TestViolationReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		importer string
		imported string
		want     string
	}{
		{
			name:     "core on internal",
			importer: "ex-tgnorm/pkg/tgnorm",
			imported: "ex-tgnorm/internal/driver/telegram",
			want:     "pkg/* must not import internal/*",
		},
		{
			name:     "core on gotd",
			importer: "ex-tgnorm/pkg/tgnorm",
			imported: "github.com/gotd/td/tg",
			want:     "pkg/* must stay transport neutral",
		},
		{
			name:     "renderer on normalizer",
			importer: "ex-tgnorm/pkg/richtext",
			imported: "ex-tgnorm/pkg/tgnorm",
			want:     "pkg/richtext must not import pkg/tgnorm",
		},
		{
			name:     "driver on fixture",
			importer: "ex-tgnorm/internal/driver/telegram",
			imported: "ex-tgnorm/internal/fixture",
			want:     "internal/driver must not import internal/fixture",
		},
		{
			name:     "normalizer on renderer",
			importer: "ex-tgnorm/pkg/tgnorm",
			imported: "ex-tgnorm/pkg/richtext",
		},
		{
			name:     "fixture on driver",
			importer: "ex-tgnorm/internal/fixture",
			imported: "ex-tgnorm/internal/driver/telegram",
		},
		{
			name:     "driver on gotd",
			importer: "ex-tgnorm/internal/driver/telegram",
			imported: "github.com/gotd/td/tg",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := violationReason(testCase.importer, testCase.imported); got != testCase.want {
				t.Fatalf("reason = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestCollectViolationsDeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	packages := []listedPackage{
		{
			ImportPath:  "ex-tgnorm/pkg/tgnorm",
			Imports:     []string{"github.com/gotd/td/tg", "ex-tgnorm/pkg/richtext"},
			TestImports: []string{"github.com/gotd/td/tg"},
		},
		{
			ImportPath:   "ex-tgnorm/pkg/richtext",
			XTestImports: []string{"ex-tgnorm/internal/fixture"},
		},
	}

	violations := collectViolations(packages)
	if len(violations) != 2 {
		t.Fatalf("violations = %v, want 2 entries", violations)
	}
	if !strings.HasPrefix(violations[0], "ex-tgnorm/pkg/richtext -> ex-tgnorm/internal/fixture") {
		t.Fatalf("violations[0] = %q, want richtext entry first", violations[0])
	}
	if !strings.HasPrefix(violations[1], "ex-tgnorm/pkg/tgnorm -> github.com/gotd/td/tg") {
		t.Fatalf("violations[1] = %q, want tgnorm gotd entry", violations[1])
	}
}
