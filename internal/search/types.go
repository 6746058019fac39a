package search

import "github.com/kamusis/fibula-cli/internal/catalog"

// Result represents one matched item.
type Result struct {
	Item catalog.Item
	// Why names the first field that matched: name, variant, npc or location.
	Why string
}
