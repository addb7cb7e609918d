package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/organize-desk/internal/domain"
)

func TestLookupKnownTypes(t *testing.T) {
	def, ok := LookupFilter("extension")
	require.True(t, ok)
	assert.Equal(t, domain.KindFilter, def.Kind)
	assert.True(t, def.SupportsFiles)
	assert.False(t, def.SupportsDirs)

	prop, ok := def.Property("extensions")
	require.True(t, ok)
	assert.Equal(t, domain.PropertyStringSet, prop.Kind)

	move, ok := LookupAction("move")
	require.True(t, ok)
	assert.Equal(t, domain.KindAction, move.Kind)
	dest, ok := move.Property("dest")
	require.True(t, ok)
	assert.True(t, dest.Required)
}

func TestLookupSeparatesCatalogs(t *testing.T) {
	_, ok := LookupAction("extension")
	assert.False(t, ok, "extension is a filter, not an action")

	py, ok := Lookup(domain.KindFilter, "python")
	require.True(t, ok)
	pyAction, ok := Lookup(domain.KindAction, "python")
	require.True(t, ok)
	assert.NotEqual(t, len(py.Properties), len(pyAction.Properties))
}

func TestRequireUnknown(t *testing.T) {
	_, err := Require(domain.KindFilter, "teleport")
	var unknown *domain.UnknownDefinitionError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "teleport", unknown.Name)
	assert.Equal(t, domain.KindFilter, unknown.Kind)
}

func TestCatalogSizesAndOrder(t *testing.T) {
	filters := Filters()
	actions := Actions()
	assert.Len(t, filters, 16)
	assert.Len(t, actions, 13)
	assert.Equal(t, "created", filters[0].Name)
	assert.Equal(t, "size", filters[len(filters)-1].Name)
	assert.Equal(t, "confirm", actions[0].Name)
	assert.Equal(t, "write", actions[len(actions)-1].Name)
}

func TestLookupReturnsCopies(t *testing.T) {
	def, ok := LookupFilter("hash")
	require.True(t, ok)
	def.Properties[0].Options[0].Value = "crc32"
	def.Properties[0].Name = "changed"

	again, _ := LookupFilter("hash")
	assert.Equal(t, "algorithm", again.Properties[0].Name)
	assert.Equal(t, "md5", again.Properties[0].Options[0].Value)
}

func TestSelectPropertiesHaveDefaultsInOptions(t *testing.T) {
	for _, def := range append(Filters(), Actions()...) {
		for _, p := range def.Properties {
			if p.Kind != domain.PropertySelect {
				continue
			}
			found := false
			for _, opt := range p.Options {
				if opt.Value == p.Default {
					found = true
				}
			}
			assert.Truef(t, found, "%s.%s default %v not among options", def.Name, p.Name, p.Default)
		}
	}
}
