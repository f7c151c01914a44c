package quadfall

import (
	"github.com/vovakirdan/quadfall/internal/games/quadfall/field"
	"github.com/vovakirdan/quadfall/internal/registry"
)

// DefaultCatalog is the catalog used when none is selected.
const DefaultCatalog = "classic"

func init() {
	registry.Register("classic", "Classic (7 tetrominoes)", field.Classic)
	registry.Register("mini", "Mini (dominoes and trominoes)", field.Mini)
}
