package codec

import "github.com/doeshing/organize-desk/internal/domain"

// ValueKey is the config key used for scalar or sequence values of types that
// have no shorthand entry, so that `foo: bar` decodes and re-encodes unchanged.
const ValueKey = "value"

type shorthand struct {
	key string
	// set marks keys holding a list that the shorthand form accepts as a scalar.
	set bool
}

var filterShorthands = map[string]shorthand{
	"extension":   {key: "extensions", set: true},
	"size":        {key: "conditions"},
	"regex":       {key: "pattern"},
	"filecontent": {key: "pattern"},
	"python":      {key: "code"},
	"macos_tags":  {key: "tags", set: true},
	"mimetype":    {key: "types", set: true},
	"exif":        {key: "tags"},
}

var actionShorthands = map[string]shorthand{
	"move":       {key: "dest"},
	"copy":       {key: "dest"},
	"rename":     {key: "name"},
	"echo":       {key: "msg"},
	"confirm":    {key: "msg"},
	"shell":      {key: "command"},
	"python":     {key: "code"},
	"macos_tags": {key: "tags", set: true},
	"hardlink":   {key: "dest"},
	"symlink":    {key: "dest"},
}

func lookupShorthand(kind domain.DefinitionKind, typ string) (shorthand, bool) {
	if kind == domain.KindAction {
		sh, ok := actionShorthands[typ]
		return sh, ok
	}
	sh, ok := filterShorthands[typ]
	return sh, ok
}

// ShorthandKey returns the config key a `type: value` entry expands into.
func ShorthandKey(kind domain.DefinitionKind, typ string) (string, bool) {
	sh, ok := lookupShorthand(kind, typ)
	return sh.key, ok
}

// decodeOnlyShorthands expand `type: value` on read but are always written
// out in mapping form.
var decodeOnlyShorthands = map[string]shorthand{
	"write": {key: "outfile"},
}

// collapsible reports whether key may be written as the sole value of the type.
// Types without a shorthand key collapse only when the entry was read in that
// spelling.
func collapsible(kind domain.DefinitionKind, typ, key string, scalar bool) (shorthand, bool) {
	if sh, ok := lookupShorthand(kind, typ); ok {
		return sh, sh.key == key
	}
	return shorthand{key: ValueKey}, scalar && key == ValueKey
}

// expansionKey is the inverse of collapsible for decoding. It reports false
// when the type has no expansion and the value lands under ValueKey.
func expansionKey(kind domain.DefinitionKind, typ string) (shorthand, bool) {
	if sh, ok := lookupShorthand(kind, typ); ok {
		return sh, true
	}
	if kind == domain.KindAction {
		if sh, ok := decodeOnlyShorthands[typ]; ok {
			return sh, true
		}
	}
	return shorthand{key: ValueKey}, false
}
