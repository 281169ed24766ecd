package lead

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"jpchat/internal/locality"
)

// brazilianStates maps each UF code to the state's full name.
var brazilianStates = map[string]string{
	"AC": "Acre",
	"AL": "Alagoas",
	"AP": "Amapá",
	"AM": "Amazonas",
	"BA": "Bahia",
	"CE": "Ceará",
	"DF": "Distrito Federal",
	"ES": "Espírito Santo",
	"GO": "Goiás",
	"MA": "Maranhão",
	"MT": "Mato Grosso",
	"MS": "Mato Grosso do Sul",
	"MG": "Minas Gerais",
	"PA": "Pará",
	"PB": "Paraíba",
	"PR": "Paraná",
	"PE": "Pernambuco",
	"PI": "Piauí",
	"RJ": "Rio de Janeiro",
	"RN": "Rio Grande do Norte",
	"RS": "Rio Grande do Sul",
	"RO": "Rondônia",
	"RR": "Roraima",
	"SC": "Santa Catarina",
	"SP": "São Paulo",
	"SE": "Sergipe",
	"TO": "Tocantins",
}

type stateName struct {
	key      string // folded words: "mato grosso do sul"
	squashed string // folded, space-free: "matogrossodosul"
	code     string
	// wholeOnly names are also everyday words and count only as the entire answer.
	wholeOnly bool
}

// stateNamesByLength holds the state names longest first, so that "mato grosso do sul" is
// tried before "mato grosso".
var stateNamesByLength = func() []stateName {
	out := make([]stateName, 0, len(brazilianStates))
	for code, name := range brazilianStates {
		out = append(out, stateName{
			key:       locality.Fold(name),
			squashed:  squash(name),
			code:      code,
			wholeOnly: code == "PA",
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].squashed) != len(out[j].squashed) {
			return len(out[i].squashed) > len(out[j].squashed)
		}
		return out[i].code < out[j].code
	})
	return out
}()

// wordCodes are UF codes that are also common Portuguese words ("se", "tô", "es", "pa",
// "ma"). Inside a sentence they count only when written in capitals.
var wordCodes = map[string]bool{"SE": true, "TO": true, "ES": true, "PA": true, "MA": true}

var (
	letterRun = regexp.MustCompile(`[a-z]+`)
	wordRun   = regexp.MustCompile(`\p{L}+`)
)

// squash folds s and drops every space.
func squash(s string) string {
	return strings.ReplaceAll(locality.Fold(s), " ", "")
}

// StateName returns the full name for a UF code.
func StateName(code string) (string, bool) {
	name, ok := brazilianStates[strings.ToUpper(code)]
	return name, ok
}

// matchState resolves text to a UF code. In order: a bare code as the whole answer, a full
// state name as whole words (longest first), then a code standing alone as a token.
func matchState(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) == 2 {
		code := strings.ToUpper(locality.Fold(trimmed))
		if _, ok := brazilianStates[code]; ok {
			return code, true
		}
	}

	words := letterRun.FindAllString(locality.Fold(trimmed), -1)
	if len(words) == 0 {
		return "", false
	}
	padded := " " + strings.Join(words, " ") + " "
	squashed := strings.Join(words, "")
	for _, s := range stateNamesByLength {
		if squashed == s.squashed {
			return s.code, true
		}
		if !s.wholeOnly && strings.Contains(padded, " "+s.key+" ") {
			return s.code, true
		}
	}

	for _, tok := range wordRun.FindAllString(trimmed, -1) {
		if utf8.RuneCountInString(tok) != 2 {
			continue
		}
		code := strings.ToUpper(locality.Fold(tok))
		if _, ok := brazilianStates[code]; !ok {
			continue
		}
		if wordCodes[code] && tok != strings.ToUpper(tok) {
			continue
		}
		return code, true
	}
	return "", false
}
