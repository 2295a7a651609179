package embedded

import (
	_ "embed"
)

// Embed the built-in chord diagram manifest
//
//go:embed data/catalog.yaml
var CatalogManifestYAML []byte
