package skills

import (
	"sort"

	"github.com/spigell/hh-matcher/internal/terms"
)

// SkillMap maps a canonical skill key to the surface spellings found in a text.
// Spellings are kept exactly as written, deduplicated and sorted.
type SkillMap map[string][]string

// Keys returns the canonical keys of the map, sorted.
func (m SkillMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the canonical key was found.
func (m SkillMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Extractor finds known terms in free text.
type Extractor struct {
	table *terms.Table
}

func NewExtractor(table *terms.Table) *Extractor {
	return &Extractor{table: table}
}

// Extract scans text for every registered surface form. A text with no known
// terms yields an empty, non-nil map.
func (e *Extractor) Extract(text string) SkillMap {
	found := make(map[string]map[string]struct{})

	if text != "" {
		for _, entry := range e.table.Entries() {
			for _, loc := range entry.FindAll(text) {
				surfaces, ok := found[entry.Key]
				if !ok {
					surfaces = make(map[string]struct{})
					found[entry.Key] = surfaces
				}
				surfaces[text[loc[0]:loc[1]]] = struct{}{}
			}
		}
	}

	result := make(SkillMap, len(found))
	for key, surfaces := range found {
		list := make([]string, 0, len(surfaces))
		for surface := range surfaces {
			list = append(list, surface)
		}
		sort.Strings(list)
		result[key] = list
	}

	return result
}
