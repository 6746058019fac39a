package index

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

// CanonicalText returns the text of an item that the index depends on.
func CanonicalText(it catalog.Item) string {
	var b strings.Builder
	b.WriteString(it.Ref().String())
	for _, o := range it.Offers {
		b.WriteString("\n")
		b.WriteString(o.Merchant)
		b.WriteString("|")
		b.WriteString(o.Location)
		b.WriteString("|")
		b.WriteString(strconv.Itoa(o.Price))
	}
	return b.String()
}

// SourceHash returns a sha256 hash (hex) over the canonical text of every
// item, in order. An exported index whose hash differs is stale.
func SourceHash(groups ...[]catalog.Item) string {
	h := sha256.New()
	for _, items := range groups {
		for _, it := range items {
			h.Write([]byte(CanonicalText(it)))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
