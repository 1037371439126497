// Package mode enumerates the supported search modes.
package mode

// Mode selects the retrieval strategy.
type Mode string

// Supported search modes.
const (
	Semantic Mode = "semantic"
	Keyword  Mode = "keyword"
	Hybrid   Mode = "hybrid"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case Semantic, Keyword, Hybrid:
		return true
	}
	return false
}
