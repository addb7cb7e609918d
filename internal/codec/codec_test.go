package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/domain"
)

// generic parses YAML into plain maps and slices for structural comparison.
func generic(t *testing.T, text string) any {
	t.Helper()
	var v any
	require.NoError(t, yaml.Unmarshal([]byte(text), &v))
	return v
}

func firstRule(t *testing.T, text string) any {
	t.Helper()
	doc, ok := generic(t, text).(map[string]any)
	require.True(t, ok, "document is not a mapping")
	rules, ok := doc["rules"].([]any)
	require.True(t, ok, "rules is not a list")
	require.NotEmpty(t, rules)
	return rules[0]
}

func roundTrip(t *testing.T, text string) string {
	t.Helper()
	cfg, err := Decode(text)
	require.NoError(t, err)
	out, err := Encode(cfg)
	require.NoError(t, err)
	return out
}

const sortPDFs = `rules:
  - name: "Sort PDFs"
    locations: ~/Downloads
    filters:
      - extension: pdf
    actions:
      - move: "~/Documents/PDFs/"
`

func TestDecodeSortPDFs(t *testing.T) {
	cfg, err := Decode(sortPDFs)
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 1)

	rule := cfg.Rules[0]
	assert.Equal(t, "Sort PDFs", rule.Name)
	assert.True(t, rule.Enabled)
	assert.Equal(t, domain.TargetFiles, rule.Targets)
	require.Len(t, rule.Locations, 1)
	assert.Equal(t, "~/Downloads", rule.Locations[0].Path)
	assert.True(t, rule.Locations[0].IsSimple())

	require.Len(t, rule.Filters, 1)
	assert.Equal(t, "extension", rule.Filters[0].Type)
	assert.False(t, rule.Filters[0].Negated)
	exts, ok := rule.Filters[0].Config.Get("extensions")
	require.True(t, ok)
	assert.Equal(t, []any{"pdf"}, exts)

	require.Len(t, rule.Actions, 1)
	assert.Equal(t, "move", rule.Actions[0].Type)
	dest, _ := rule.Actions[0].Config.Get("dest")
	assert.Equal(t, "~/Documents/PDFs/", dest)
}

func TestEncodeSortPDFsKeepsShorthand(t *testing.T) {
	out := roundTrip(t, sortPDFs)

	if diff := cmp.Diff(generic(t, sortPDFs), generic(t, out)); diff != "" {
		t.Errorf("round trip changed structure (-want +got):\n%s", diff)
	}
	assert.Contains(t, out, "- extension: pdf")
	assert.Contains(t, out, "locations: ~/Downloads")
}

func TestRoundTripIsFixedPoint(t *testing.T) {
	docs := map[string]string{
		"sort pdfs": sortPDFs,
		"mixed forms": `rules:
  - name: Photos
    enabled: false
    targets: dirs
    locations:
      - ~/Pictures
      - path: ~/Camera
        max_depth: 2
        exclude_dirs: [.git]
        system_exclude_files: []
    subfolders: true
    filter_mode: any
    filters:
      - not empty
      - extension: [jpg, png]
      - name:
          startswith: IMG
          case_sensitive: false
      - regex: '^IMG_(?P<n>\d+)'
    actions:
      - echo: "Found: {path}"
      - copy:
          dest: ~/Backup/
          on_conflict: skip
      - trash
    tags: [photos, nightly]
`,
		"empty":      "",
		"no actions": "rules:\n  - locations: ~/x\n    actions: []\n",
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			once := roundTrip(t, doc)
			twice := roundTrip(t, once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestBareScalarEntries(t *testing.T) {
	cfg := domain.Config{Rules: []domain.Rule{{
		Enabled:   true,
		Locations: []domain.Location{{Path: "~/Downloads"}},
		Filters: []domain.Filter{
			{Type: "empty", Config: domain.NewParams("ignored", "", "also", nil, "list", []any{})},
		},
		Actions: []domain.Action{{Type: "trash"}},
	}}}

	out, err := Encode(cfg)
	require.NoError(t, err)

	want := map[string]any{
		"locations": "~/Downloads",
		"filters":   []any{"empty"},
		"actions":   []any{"trash"},
	}
	if diff := cmp.Diff(want, firstRule(t, out)); diff != "" {
		t.Errorf("unexpected rule (-want +got):\n%s", diff)
	}
	assert.NotContains(t, out, "{}")
}

func TestNegationRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		entry       string
		wantType    string
		wantNegated bool
		wantEntry   any
	}{
		{name: "bare negation", entry: "not empty", wantType: "empty", wantNegated: true, wantEntry: "not empty"},
		{name: "extra spaces are trimmed", entry: "'not   empty'", wantType: "empty", wantNegated: true, wantEntry: "not empty"},
		{name: "prefix is case sensitive", entry: "Not empty", wantType: "Not empty", wantEntry: "Not empty"},
		{name: "negated shorthand", entry: "'not extension': pdf", wantType: "extension", wantNegated: true, wantEntry: map[string]any{"not extension": "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "rules:\n  - locations: ~/x\n    filters:\n      - " + tt.entry + "\n    actions: [trash]\n"
			cfg, err := Decode(doc)
			require.NoError(t, err)

			f := cfg.Rules[0].Filters[0]
			assert.Equal(t, tt.wantType, f.Type)
			assert.Equal(t, tt.wantNegated, f.Negated)

			out, err := Encode(cfg)
			require.NoError(t, err)
			rule := firstRule(t, out).(map[string]any)
			assert.Equal(t, tt.wantEntry, rule["filters"].([]any)[0])
		})
	}
}

func TestActionsAreNeverNegated(t *testing.T) {
	cfg, err := Decode("rules:\n  - locations: ~/x\n    actions:\n      - not trash\n")
	require.NoError(t, err)
	assert.Equal(t, "not trash", cfg.Rules[0].Actions[0].Type)
}

func TestLocationCollapse(t *testing.T) {
	depth := 2
	tests := []struct {
		name string
		locs []domain.Location
		want any
	}{
		{
			name: "single path-only location is a bare string",
			locs: []domain.Location{{Path: "~/Downloads"}},
			want: "~/Downloads",
		},
		{
			name: "max depth forces a list of mappings",
			locs: []domain.Location{{Path: "~/Downloads", MaxDepth: &depth}},
			want: []any{map[string]any{"path": "~/Downloads", "max_depth": 2}},
		},
		{
			name: "several locations reduce independently",
			locs: []domain.Location{
				{Path: "~/a"},
				{Path: "~/b", Search: domain.SearchBreadth, ExcludeFiles: []string{"*.tmp"}},
				{Path: "~/c", Search: domain.SearchDepth, ExcludeDirs: []string{}},
			},
			want: []any{
				"~/a",
				map[string]any{"path": "~/b", "search": "breadth", "exclude_files": []any{"*.tmp"}},
				"~/c",
			},
		},
		{
			name: "explicit empty system excludes are kept",
			locs: []domain.Location{{Path: "~/a", SystemExcludeDirs: []string{}}},
			want: []any{map[string]any{"path": "~/a", "system_exclude_dirs": []any{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.Config{Rules: []domain.Rule{{Enabled: true, Locations: tt.locs}}}
			out, err := Encode(cfg)
			require.NoError(t, err)
			rule := firstRule(t, out).(map[string]any)
			if diff := cmp.Diff(tt.want, rule["locations"]); diff != "" {
				t.Errorf("locations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeRuleKeyOrder(t *testing.T) {
	rule := NewRule()
	rule.Name = "ordered"
	rule.Enabled = false
	rule.Targets = domain.TargetDirs
	rule.Subfolders = true
	rule.FilterMode = domain.FilterModeNone
	rule.Filters = []domain.Filter{NewFilter("empty")}
	rule.Tags = []string{"t"}

	out, err := Encode(domain.Config{Rules: []domain.Rule{rule}})
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	ruleNode := doc.Content[0].Content[1].Content[0]
	var keys []string
	for i := 0; i < len(ruleNode.Content); i += 2 {
		keys = append(keys, ruleNode.Content[i].Value)
	}
	want := []string{"name", "enabled", "targets", "locations", "subfolders", "filter_mode", "filters", "actions", "tags"}
	assert.Equal(t, want, keys)
}

func TestEncodeDefaultsAreOmitted(t *testing.T) {
	out, err := Encode(domain.Config{Rules: []domain.Rule{{
		Enabled:    true,
		Targets:    domain.TargetFiles,
		FilterMode: domain.FilterModeAll,
		Locations:  []domain.Location{{Path: "~/x"}},
	}}})
	require.NoError(t, err)

	want := map[string]any{"locations": "~/x", "actions": []any{}}
	if diff := cmp.Diff(want, firstRule(t, out)); diff != "" {
		t.Errorf("unexpected rule (-want +got):\n%s", diff)
	}
	assert.Contains(t, out, "actions: []")
}

func TestShorthandCollapse(t *testing.T) {
	tests := []struct {
		name   string
		action domain.Action
		want   any
	}{
		{
			name:   "allow-listed sole key",
			action: domain.Action{Type: "echo", Config: domain.NewParams("msg", "hi")},
			want:   map[string]any{"echo": "hi"},
		},
		{
			name:   "sole key not on the allow-list",
			action: domain.Action{Type: "write", Config: domain.NewParams("outfile", "out.txt")},
			want:   map[string]any{"write": map[string]any{"outfile": "out.txt"}},
		},
		{
			name:   "falsy defaults are meaningful",
			action: domain.Action{Type: "move", Config: domain.NewParams("dest", "~/x", "autodetect_folder", false)},
			want:   map[string]any{"move": map[string]any{"dest": "~/x", "autodetect_folder": false}},
		},
		{
			name:   "empty values are dropped before collapsing",
			action: domain.Action{Type: "move", Config: domain.NewParams("on_conflict", "", "dest", "~/x")},
			want:   map[string]any{"move": "~/x"},
		},
		{
			name:   "set values unwrap a single element",
			action: domain.Action{Type: "macos_tags", Config: domain.NewParams("tags", []any{"Work (red)"})},
			want:   map[string]any{"macos_tags": "Work (red)"},
		},
		{
			name:   "set values keep longer lists",
			action: domain.Action{Type: "macos_tags", Config: domain.NewParams("tags", []any{"a", "b"})},
			want:   map[string]any{"macos_tags": []any{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.Config{Rules: []domain.Rule{{
				Enabled:   true,
				Locations: []domain.Location{{Path: "~"}},
				Actions:   []domain.Action{tt.action},
			}}}
			out, err := Encode(cfg)
			require.NoError(t, err)
			rule := firstRule(t, out).(map[string]any)
			if diff := cmp.Diff(tt.want, rule["actions"].([]any)[0]); diff != "" {
				t.Errorf("action mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeShorthandExpansion(t *testing.T) {
	doc := `rules:
  - locations: ~/x
    filters:
      - extension: [pdf, jpg]
      - size: "> 1 MB"
      - mimetype: image
    actions:
      - rename: "{name}.pdf"
`
	cfg, err := Decode(doc)
	require.NoError(t, err)
	rule := cfg.Rules[0]

	exts, _ := rule.Filters[0].Config.Get("extensions")
	assert.Equal(t, []any{"pdf", "jpg"}, exts)
	cond, _ := rule.Filters[1].Config.Get("conditions")
	assert.Equal(t, "> 1 MB", cond)
	types, _ := rule.Filters[2].Config.Get("types")
	assert.Equal(t, []any{"image"}, types)
	name, _ := rule.Actions[0].Config.Get("name")
	assert.Equal(t, "{name}.pdf", name)
}

func TestOrderingPreserved(t *testing.T) {
	rule := NewRule()
	rule.Filters = []domain.Filter{NewFilter("empty"), NewFilter("duplicate"), NewFilter("hash")}
	rule.Actions = []domain.Action{NewAction("trash"), NewAction("delete")}

	out, err := Encode(domain.Config{Rules: []domain.Rule{rule}})
	require.NoError(t, err)
	cfg, err := Decode(out)
	require.NoError(t, err)

	var filters, actions []string
	for _, f := range cfg.Rules[0].Filters {
		filters = append(filters, f.Type)
	}
	for _, a := range cfg.Rules[0].Actions {
		actions = append(actions, a.Type)
	}
	assert.Equal(t, []string{"empty", "duplicate", "hash"}, filters)
	assert.Equal(t, []string{"trash", "delete"}, actions)
}

func TestParamKeyOrderPreserved(t *testing.T) {
	doc := "rules:\n  - locations: ~/x\n    actions:\n      - copy: {on_conflict: skip, dest: ~/b, rename_template: x}\n"
	cfg, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"on_conflict", "dest", "rename_template"}, cfg.Rules[0].Actions[0].Config.Keys())

	out, err := Encode(cfg)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "on_conflict"), strings.Index(out, "dest"))
	assert.Less(t, strings.Index(out, "dest"), strings.Index(out, "rename_template"))
}

func TestUnknownTypesSurvive(t *testing.T) {
	doc := `rules:
  - locations:
      - path: ~/x
        future_option: 3
    filters:
      - teleport:
          planet: mars
          speed: 3
          options:
            warp: true
      - beam: up
      - foo:
          value: x
      - not shimmer
    actions:
      - launch: [a, b]
      - dock:
          value: [a]
      - orbit
    schedule: daily
`
	out := roundTrip(t, doc)
	if diff := cmp.Diff(generic(t, doc), generic(t, out)); diff != "" {
		t.Errorf("unknown entries changed (-want +got):\n%s", diff)
	}
	assert.Contains(t, out, "- beam: up")
	assert.NotContains(t, out, "- foo: x")
}

func TestUnknownScalarSpellingIsTracked(t *testing.T) {
	cfg, err := Decode(`rules:
  - locations: ~/x
    filters:
      - beam: up
      - foo: {value: x}
    actions:
      - launch: [a, b]
      - move: ~/y
`)
	require.NoError(t, err)
	rule := cfg.Rules[0]

	assert.True(t, rule.Filters[0].Scalar)
	assert.False(t, rule.Filters[1].Scalar)
	assert.True(t, rule.Actions[0].Scalar)
	assert.False(t, rule.Actions[1].Scalar, "known shorthand types need no marker")

	clone := rule.Clone()
	assert.True(t, clone.Filters[0].Scalar)
}

func TestDecodeWriteShorthand(t *testing.T) {
	doc := `rules:
  - locations: ~/x
    actions:
      - write: out.txt
`
	cfg, err := Decode(doc)
	require.NoError(t, err)
	action := cfg.Rules[0].Actions[0]
	assert.Equal(t, []string{"outfile"}, action.Config.Keys())
	outfile, _ := action.Config.Get("outfile")
	assert.Equal(t, "out.txt", outfile)
	assert.False(t, action.Scalar)

	out, err := Encode(cfg)
	require.NoError(t, err)
	want := map[string]any{"write": map[string]any{"outfile": "out.txt"}}
	rule := firstRule(t, out).(map[string]any)
	if diff := cmp.Diff([]any{want}, rule["actions"]); diff != "" {
		t.Errorf("write is encoded in mapping form (-want +got):\n%s", diff)
	}
	assert.Equal(t, out, roundTrip(t, out))
}

func TestFloatsKeepTheirType(t *testing.T) {
	doc := `rules:
  - locations: ~/x
    filters:
      - created:
          days: 1.0
          ratio: 2.5
          big: 1e+21
`
	out := roundTrip(t, doc)
	assert.Contains(t, out, "days: 1.0")
	assert.Contains(t, out, "ratio: 2.5")

	cfg, err := Decode(out)
	require.NoError(t, err)
	config := cfg.Rules[0].Filters[0].Config
	for _, key := range []string{"days", "ratio", "big"} {
		v, _ := config.Get(key)
		assert.IsTypef(t, float64(0), v, "key %s", key)
	}
	days, _ := config.Get("days")
	assert.Equal(t, 1.0, days)
	big, _ := config.Get("big")
	assert.Equal(t, 1e21, big)
}

func TestDecodeEmptyDocuments(t *testing.T) {
	for _, doc := range []string{"", "   \n", "# only a comment\n", "~\n", "---\n"} {
		cfg, err := Decode(doc)
		require.NoErrorf(t, err, "document %q", doc)
		assert.NotNil(t, cfg.Rules)
		assert.Empty(t, cfg.Rules)
	}

	cfg, err := Decode("rules: []\n")
	require.NoError(t, err)
	assert.Empty(t, cfg.Rules)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantSyntax bool
	}{
		{name: "unterminated flow", doc: "rules: [", wantSyntax: true},
		{name: "unterminated quote", doc: "rules:\n  - name: 'open\n", wantSyntax: true},
		{name: "root is a list", doc: "- a\n"},
		{name: "missing rules", doc: "other: 1\n"},
		{name: "null rules", doc: "rules:\n"},
		{name: "rules not a list", doc: "rules: 5\n"},
		{name: "rule not a mapping", doc: "rules:\n  - just a string\n"},
		{name: "multi-key filter", doc: "rules:\n  - locations: ~\n    filters:\n      - {empty: null, hash: null}\n    actions: []\n"},
		{name: "numeric filter", doc: "rules:\n  - locations: ~\n    filters: [5]\n    actions: []\n"},
		{name: "nested list filter", doc: "rules:\n  - locations: ~\n    filters: [[a]]\n    actions: []\n"},
		{name: "empty negation", doc: "rules:\n  - locations: ~\n    filters: ['not ']\n    actions: []\n"},
		{name: "filters not a list", doc: "rules:\n  - locations: ~\n    filters: empty\n    actions: []\n"},
		{name: "enabled not a bool", doc: "rules:\n  - locations: ~\n    enabled: [x]\n    actions: []\n"},
		{name: "max depth not a number", doc: "rules:\n  - locations:\n      - path: ~\n        max_depth: deep\n    actions: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Decode(tt.doc)
			require.Error(t, err)
			assert.Nil(t, cfg.Rules, "no partial config on failure")

			var syntaxErr *domain.SyntaxError
			var schemaErr *domain.SchemaError
			if tt.wantSyntax {
				assert.True(t, errors.As(err, &syntaxErr), "want SyntaxError, got %T", err)
			} else {
				assert.True(t, errors.As(err, &schemaErr), "want SchemaError, got %T", err)
			}
		})
	}
}

func TestDecodeLocationForms(t *testing.T) {
	doc := `rules:
  - locations:
      path: ~/single
      min_depth: 1
      exclude_files: "*.part"
      system_exclude_dirs: []
      ignore_errors: true
    actions: []
`
	cfg, err := Decode(doc)
	require.NoError(t, err)
	require.Len(t, cfg.Rules[0].Locations, 1)

	loc := cfg.Rules[0].Locations[0]
	assert.Equal(t, "~/single", loc.Path)
	require.NotNil(t, loc.MinDepth)
	assert.Equal(t, 1, *loc.MinDepth)
	assert.Nil(t, loc.MaxDepth)
	assert.Equal(t, []string{"*.part"}, loc.ExcludeFiles)
	assert.NotNil(t, loc.SystemExcludeDirs)
	assert.Empty(t, loc.SystemExcludeDirs)
	assert.Nil(t, loc.SystemExcludeFiles)
	assert.True(t, loc.IgnoreErrors)
}

func TestDecodeAssignsFreshIDs(t *testing.T) {
	first, err := Decode(sortPDFs)
	require.NoError(t, err)
	second, err := Decode(sortPDFs)
	require.NoError(t, err)

	assert.NotEmpty(t, first.Rules[0].ID)
	assert.NotEqual(t, first.Rules[0].ID, second.Rules[0].ID)
	assert.NotEqual(t, first.Rules[0].Filters[0].ID, second.Rules[0].Filters[0].ID)
	assert.NotEqual(t, first.Rules[0].Filters[0].ID, first.Rules[0].Actions[0].ID)
}

func TestEncodeNeverWritesIDs(t *testing.T) {
	out, err := Encode(domain.Config{Rules: []domain.Rule{NewRule()}})
	require.NoError(t, err)
	assert.NotContains(t, out, "id:")
}
