package skills

import "sort"

// Comparison holds the coverage of vacancy requirements by a resume.
// Both lists contain sorted canonical keys taken from the vacancy side only.
type Comparison struct {
	Matched   []string
	Unmatched []string
}

// Compare splits the vacancy keys into the ones present in the resume and the
// ones missing from it. Keys found only in the resume are not reported.
func Compare(vacancy, resume SkillMap) Comparison {
	cmp := Comparison{
		Matched:   []string{},
		Unmatched: []string{},
	}

	for _, key := range vacancy.Keys() {
		if resume.Has(key) {
			cmp.Matched = append(cmp.Matched, key)
			continue
		}
		cmp.Unmatched = append(cmp.Unmatched, key)
	}

	return cmp
}

// SurfaceForms projects canonical keys onto the spellings recorded in m.
// Keys missing from m are skipped. The result is sorted and deduplicated.
func SurfaceForms(m SkillMap, keys []string) []string {
	seen := make(map[string]struct{})
	forms := []string{}

	for _, key := range keys {
		for _, surface := range m[key] {
			if _, ok := seen[surface]; ok {
				continue
			}
			seen[surface] = struct{}{}
			forms = append(forms, surface)
		}
	}

	sort.Strings(forms)
	return forms
}
