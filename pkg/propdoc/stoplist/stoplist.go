// Package stoplist holds the stopword set consulted by the keyword
// ranker. The default list covers procurement boilerplate on top of
// common English function words.
package stoplist

import "strings"

// Manager answers stopword membership queries.
type Manager struct {
	stops map[string]struct{}
}

// defaultStops keeps ranked keywords from being dominated by function
// words and the filler every solicitation shares.
var defaultStops = []string{
	"a", "an", "and", "are", "as", "at", "be", "been", "by", "for",
	"from", "has", "have", "in", "is", "it", "its", "may", "must",
	"no", "not", "of", "on", "or", "shall", "that", "the", "their",
	"these", "this", "to", "was", "were", "will", "with",
	"all", "any", "each", "other", "such", "which", "who",
	"pursuant", "herein", "hereby", "thereof",
}

// NewManager builds a manager from an explicit list.
func NewManager(stops []string) *Manager {
	m := &Manager{stops: make(map[string]struct{}, len(stops))}
	for _, s := range stops {
		m.stops[strings.ToLower(s)] = struct{}{}
	}
	return m
}

// Default returns a manager with the built-in list.
func Default() *Manager {
	return NewManager(defaultStops)
}

// IsStop checks if a token is a stopword.
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a word to the stoplist.
func (m *Manager) Add(word string) {
	m.stops[strings.ToLower(word)] = struct{}{}
}

// Remove removes a word from the stoplist.
func (m *Manager) Remove(word string) {
	delete(m.stops, strings.ToLower(word))
}

// All returns the stopwords in unspecified order.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	return result
}
