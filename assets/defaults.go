package assets

import (
	_ "embed"
)

// StarterConfigYAML is the document a new config file starts from.
//
//go:embed defaults/organize.yaml
var StarterConfigYAML []byte
