package locality

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// minContainedLen is the shortest folded entry allowed in any "contained in" or fuzzy
	// check. Shorter entries (Itá) resolve only through an exact, accent-sensitive match.
	minContainedLen = 4
	// containmentRatio is the minimum share of an entry a forward substring must cover.
	containmentRatio = 0.70
	// similarityCutoff is the minimum edit-distance similarity accepted.
	similarityCutoff = 0.80
	// minTokenLen is the shortest token considered by the token matcher.
	minTokenLen = 4
	// maxProcessedLen caps the processed text, in runes.
	maxProcessedLen = 50
	// maxFreeTextLen caps unresolved city text kept as free text, in runes.
	maxFreeTextLen = 120
	// migratedFreeTextLen caps unresolved city text rewritten by the migration tool.
	migratedFreeTextLen = 100
)

// OtherCities is stored when a city answer is empty or cannot be kept.
const OtherCities = "Outras cidades do Brasil"

// conversationalPrefixes are stripped from the start of the text, longest first.
var conversationalPrefixes = []string{
	"eu sou de", "eu sou da", "eu sou do", "eu moro em", "eu moro no", "eu moro na",
	"moro em", "moro no", "moro na", "sou de", "sou da", "sou do", "sou",
	"falo de", "falo da", "falo do", "falo",
	"cidade de", "cidade", "município de", "municipio de", "município", "municipio",
	"resido em", "vivo em", "estou em", "de", "em",
}

func init() {
	sort.SliceStable(conversationalPrefixes, func(i, j int) bool {
		return len(conversationalPrefixes[i]) > len(conversationalPrefixes[j])
	})
}

// Normalizer resolves free-form Portuguese text to an official gazetteer entry.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	gazetteer    *Gazetteer
	equivalences Equivalences
}

// New builds a normalizer. Every equivalence value must be a gazetteer entry.
func New(g *Gazetteer, eq Equivalences) (*Normalizer, error) {
	if g == nil {
		return nil, fmt.Errorf("locality: nil gazetteer")
	}
	if eq == nil {
		eq = Equivalences{}
	}
	if err := eq.Validate(g); err != nil {
		return nil, fmt.Errorf("locality: %w", err)
	}
	return &Normalizer{gazetteer: g, equivalences: eq}, nil
}

// Default returns a normalizer over the Santa Catarina gazetteer and built-in equivalences.
func Default() *Normalizer {
	n, err := New(SantaCatarina(), DefaultEquivalences())
	if err != nil {
		panic(err)
	}
	return n
}

// Gazetteer returns the gazetteer backing n.
func (n *Normalizer) Gazetteer() *Gazetteer { return n.gazetteer }

// Normalize resolves text to an official name, or returns an unresolved result.
func (n *Normalizer) Normalize(text string) Result {
	// Raw whole-word pass on the untruncated text, before prefixes and commas are cut.
	raw := collapseSpaces(Fold(text))
	if raw == "" {
		return unresolved()
	}
	if name, ok := n.longestWordMatch(raw); ok {
		return resolved(name, MethodRawWord)
	}

	processed, ok := preprocess(text)
	if !ok {
		return unresolved()
	}
	folded := Fold(processed)

	if name, ok := n.equivalences[folded]; ok && n.gazetteer.Contains(name) {
		return resolved(name, MethodEquivalence)
	}

	if utf8.RuneCountInString(folded) < minContainedLen {
		nfc := norm.NFC.String(processed)
		for _, name := range n.gazetteer.names {
			if strings.ToLower(name) == nfc {
				return resolved(name, MethodShortExact)
			}
		}
		return unresolved()
	}

	if name, ok := n.gazetteer.lookup(folded); ok {
		return resolved(name, MethodExact)
	}
	if name, ok := n.forwardContainment(folded); ok {
		return resolved(name, MethodContainment)
	}
	if name, ok := n.longestWordMatch(folded); ok {
		return resolved(name, MethodReverseWord)
	}
	if name, ok := n.approximate(folded); ok {
		return resolved(name, MethodApproximate)
	}
	if name, ok := n.tokenMatch(folded); ok {
		return resolved(name, MethodToken)
	}
	return unresolved()
}

// CityOrFallback returns the official name for text, else the trimmed text capped at
// maxRunes, else OtherCities when nothing usable is left.
func (n *Normalizer) CityOrFallback(text string, maxRunes int) string {
	if r := n.Normalize(text); r.OK() {
		return r.Name()
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return OtherCities
	}
	return truncateRunes(trimmed, maxRunes)
}

// FreeText is CityOrFallback with the limit used for live answers.
func (n *Normalizer) FreeText(text string) string {
	return n.CityOrFallback(text, maxFreeTextLen)
}

// Migrated is CityOrFallback with the limit used when rewriting stored leads.
func (n *Normalizer) Migrated(text string) string {
	return n.CityOrFallback(text, migratedFreeTextLen)
}

// preprocess lowercases text, strips conversational prefixes and trailing state suffixes.
// It reports false when fewer than two characters remain.
func preprocess(text string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = stripPrefixes(s)

	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	if !strings.HasPrefix(s, "são") && !strings.HasPrefix(s, "sao") {
		if i := strings.LastIndex(s, "-"); i >= 0 {
			suffix := strings.TrimSpace(s[i+1:])
			if utf8.RuneCountInString(suffix) <= 3 {
				s = s[:i]
			}
		}
	}

	s = collapseSpaces(s)
	if utf8.RuneCountInString(s) < 2 {
		return "", false
	}
	return truncateRunes(s, maxProcessedLen), true
}

func stripPrefixes(s string) string {
	for {
		stripped := false
		for _, p := range conversationalPrefixes {
			if strings.HasPrefix(s, p+" ") {
				s = strings.TrimSpace(s[len(p):])
				stripped = true
				break
			}
		}
		if !stripped {
			return s
		}
	}
}

// longestWordMatch finds the longest entry occurring as a whole word in folded text.
// Length alone settles the choice between different cities in one text, so a street named
// after a city can win: "rua blumenau 10, palhoca" yields Blumenau.
func (n *Normalizer) longestWordMatch(folded string) (string, bool) {
	best := -1
	for i, entry := range n.gazetteer.stripped {
		if utf8.RuneCountInString(entry) < minContainedLen {
			continue
		}
		if !containsWord(folded, entry) {
			continue
		}
		if best < 0 || len(entry) > len(n.gazetteer.stripped[best]) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return n.gazetteer.names[best], true
}

// forwardContainment accepts folded as a word-aligned part of an entry when it covers at
// least containmentRatio of the entry, or is its leading or trailing word run.
func (n *Normalizer) forwardContainment(folded string) (string, bool) {
	textLen := utf8.RuneCountInString(folded)
	best, bestRatio := -1, 0.0
	for i, entry := range n.gazetteer.stripped {
		entryLen := utf8.RuneCountInString(entry)
		if entryLen < minContainedLen || !containsWord(entry, folded) {
			continue
		}
		ratio := float64(textLen) / float64(entryLen)
		prefix := strings.HasPrefix(entry, folded+" ")
		suffix := strings.HasSuffix(entry, " "+folded)
		if ratio < containmentRatio && !prefix && !suffix {
			continue
		}
		if ratio > bestRatio {
			best, bestRatio = i, ratio
		}
	}
	if best < 0 {
		return "", false
	}
	return n.gazetteer.names[best], true
}

// approximate returns the entry most similar to the whole text, if similar enough.
func (n *Normalizer) approximate(folded string) (string, bool) {
	i, score := n.mostSimilar(folded)
	if i < 0 || score < similarityCutoff {
		return "", false
	}
	return n.gazetteer.names[i], true
}

// tokenMatch tries each token of at least minTokenLen runes in order and returns the best
// entry for the first token that clears the cutoff.
func (n *Normalizer) tokenMatch(folded string) (string, bool) {
	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return r == ' ' || r == '-' || r == ',' || r == '\t'
	})
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minTokenLen {
			continue
		}
		if i, score := n.mostSimilar(tok); i >= 0 && score >= similarityCutoff {
			return n.gazetteer.names[i], true
		}
	}
	return "", false
}

func (n *Normalizer) mostSimilar(folded string) (int, float64) {
	best, bestScore := -1, 0.0
	for i, entry := range n.gazetteer.stripped {
		if utf8.RuneCountInString(entry) < minContainedLen {
			continue
		}
		if score := Similarity(folded, entry); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
