package inspect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/domain"
)

func decode(t *testing.T, text string) domain.Config {
	t.Helper()
	cfg, err := codec.Decode(text)
	require.NoError(t, err)
	return cfg
}

func TestInspectCleanConfig(t *testing.T) {
	cfg := decode(t, `rules:
  - name: PDFs
    locations:
      - path: ~/Downloads
        exclude_files: ["*.part"]
        filter: ["*.pdf", "report-?.txt"]
    filters:
      - extension: pdf
      - not empty
    actions:
      - move: ~/Documents/PDFs/
`)
	diags := Inspect(cfg)
	assert.Empty(t, diags)
	assert.False(t, HasErrors(diags))
}

func TestInspectWriteShorthand(t *testing.T) {
	cfg := decode(t, `rules:
  - locations: ~/Downloads
    actions:
      - write: out.txt
`)
	diags := Inspect(cfg)
	require.Len(t, diags, 1)
	assert.Equal(t, "actions[0]", diags[0].Path)
	assert.Contains(t, diags[0].Message, `"text"`)
	assert.NotContains(t, diags[0].Message, "outfile")
}

func TestInspectFindings(t *testing.T) {
	cfg := decode(t, `rules:
  - name: Folders
    targets: dirs
    locations:
      - path: ~/Downloads
        exclude_dirs: ["[abc"]
    filters:
      - extension: zip
      - sparkle
    actions:
      - echo
      - move
`)
	diags := Inspect(cfg)
	require.True(t, HasErrors(diags))

	byPath := map[string][]domain.Diagnostic{}
	for _, d := range diags {
		assert.Equal(t, 0, d.Rule)
		byPath[d.Path] = append(byPath[d.Path], d)
	}

	require.Len(t, byPath["locations[0].exclude_dirs[0]"], 1)
	assert.Contains(t, byPath["locations[0].exclude_dirs[0]"][0].Message, "invalid glob")

	require.Len(t, byPath["filters[0]"], 1)
	assert.Contains(t, byPath["filters[0]"][0].Message, "does not apply to dirs")

	require.Len(t, byPath["filters[1]"], 1)
	unknown := byPath["filters[1]"][0]
	assert.Equal(t, domain.SeverityWarning, unknown.Severity)
	var unknownErr *domain.UnknownDefinitionError
	require.True(t, errors.As(unknown.Err, &unknownErr))
	assert.Equal(t, "sparkle", unknownErr.Name)

	require.Len(t, byPath["actions[0]"], 1)
	assert.Contains(t, byPath["actions[0]"][0].Message, `missing required property "msg"`)
	require.Len(t, byPath["actions[1]"], 1)
	assert.Contains(t, byPath["actions[1]"][0].Message, `"dest"`)
}

func TestInspectRuleShape(t *testing.T) {
	minDepth, maxDepth := 3, 1
	cfg := domain.Config{Rules: []domain.Rule{
		{Name: "ok"},
		{
			Name:       "bad",
			Targets:    "links",
			FilterMode: "some",
			Locations:  []domain.Location{{Path: "", MinDepth: &minDepth, MaxDepth: &maxDepth}},
			Actions:    []domain.Action{{Type: "trash"}},
		},
	}}

	diags := Inspect(cfg)
	var first, second []string
	for _, d := range diags {
		if d.Rule == 0 {
			first = append(first, d.Path)
		} else {
			second = append(second, d.Path)
		}
	}
	assert.Equal(t, []string{"locations", "actions"}, first)
	assert.Equal(t, []string{"targets", "filter_mode", "locations[0]", "locations[0]"}, second)
}
