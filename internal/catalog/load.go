package catalog

import (
	"encoding/json"
	"os"
)

// Load reads the catalog file at path.
//
// A missing or unparseable file yields an empty catalog, not an error: the
// catalog is reconstructible by scanning, so a corrupt copy is recoverable
// and must never block startup.
func Load(path string) Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		return New()
	}
	return Parse(data)
}

// Parse decodes JSON bytes into a catalog. Malformed input yields an empty
// catalog under the same recoverability contract as Load.
func Parse(data []byte) Catalog {
	if len(data) == 0 {
		return New()
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return New()
	}
	if c == nil {
		return New()
	}
	return c
}
