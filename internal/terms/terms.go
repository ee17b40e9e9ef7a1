package terms

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Group registers a canonical skill key together with every surface spelling
// that should resolve to it. The key itself is always treated as an alias.
type Group struct {
	Key     string   `mapstructure:"key"`
	Aliases []string `mapstructure:"aliases"`
}

// Entry is a single surface form bound to its canonical key.
type Entry struct {
	Surface string
	Key     string

	pattern   *regexp.Regexp
	wordStart bool
	wordEnd   bool
}

// Table is an immutable dictionary of known terms. It is safe for concurrent use.
type Table struct {
	entries []*Entry
	index   map[string]string
}

// New builds a table from the provided groups. An alias registered under two
// different keys is rejected; repeating an alias under the same key is allowed.
func New(groups ...Group) (*Table, error) {
	t := &Table{index: make(map[string]string)}

	for _, group := range groups {
		key := normalize(group.Key)
		if key == "" {
			return nil, fmt.Errorf("group with aliases %v has an empty key", group.Aliases)
		}

		aliases := append([]string{key}, group.Aliases...)
		for _, alias := range aliases {
			surface := normalize(alias)
			if surface == "" {
				continue
			}

			if existing, ok := t.index[surface]; ok {
				if existing != key {
					return nil, fmt.Errorf("term %q is registered for both %q and %q", surface, existing, key)
				}
				continue
			}

			entry, err := compile(surface, key)
			if err != nil {
				return nil, err
			}

			t.index[surface] = key
			t.entries = append(t.entries, entry)
		}
	}

	return t, nil
}

// Default returns the built-in dictionary extended with the provided groups.
func Default(extra ...Group) (*Table, error) {
	groups := make([]Group, 0, len(builtin)+len(extra))
	groups = append(groups, builtin...)
	groups = append(groups, extra...)
	return New(groups...)
}

// Canonicalize resolves a surface term to its canonical key.
func (t *Table) Canonicalize(surface string) (string, bool) {
	if t == nil {
		return "", false
	}
	key, ok := t.index[normalize(surface)]
	return key, ok
}

// Entries returns the registered entries in registration order.
func (t *Table) Entries() []*Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Len reports the number of registered surface forms.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns the sorted set of canonical keys.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(t.entries))
	keys := make([]string, 0, len(t.entries))
	for _, key := range t.index {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Aliases returns every surface form registered for key, sorted.
func (t *Table) Aliases(key string) []string {
	if t == nil {
		return nil
	}

	key = normalize(key)
	var aliases []string
	for surface, k := range t.index {
		if k == key {
			aliases = append(aliases, surface)
		}
	}
	sort.Strings(aliases)
	return aliases
}

// FindAll returns every occurrence of the entry's surface form in text as
// [start, end) byte offsets, honouring word boundaries.
func (e *Entry) FindAll(text string) [][2]int {
	var found [][2]int

	pos := 0
	for pos <= len(text) {
		loc := e.pattern.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}

		start, end := pos+loc[0], pos+loc[1]
		if e.bounded(text, start, end) {
			found = append(found, [2]int{start, end})
			pos = end
			continue
		}

		// Retry one rune later; an overlapping match may still be bounded.
		pos = start + runeLen(text[start:])
	}

	return found
}

func (e *Entry) bounded(text string, start, end int) bool {
	if e.wordStart && start > 0 && isWordRune(lastRune(text[:start])) {
		return false
	}
	if e.wordEnd && end < len(text) && isWordRune(firstRune(text[end:])) {
		return false
	}
	return true
}

func compile(surface, key string) (*Entry, error) {
	parts := strings.Fields(surface)
	quoted := make([]string, 0, len(parts))
	for _, part := range parts {
		quoted = append(quoted, regexp.QuoteMeta(part))
	}

	pattern, err := regexp.Compile(`(?i)` + strings.Join(quoted, `\s+`))
	if err != nil {
		return nil, fmt.Errorf("compile pattern for %q: %w", surface, err)
	}

	return &Entry{
		Surface:   surface,
		Key:       key,
		pattern:   pattern,
		wordStart: isWordRune(firstRune(surface)),
		wordEnd:   isWordRune(lastRune(surface)),
	}, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
