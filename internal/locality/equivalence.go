package locality

import "fmt"

// defaultEquivalences maps folded spellings seen in real conversations to the official name.
// Keys are lowercase and accent-free.
var defaultEquivalences = map[string]string{
	"palhoca":                "Palhoça",
	"palhoca sc":             "Palhoça",
	"floripa":                "Florianópolis",
	"fpolis":                 "Florianópolis",
	"florianopolis":          "Florianópolis",
	"floripa sc":             "Florianópolis",
	"itajai":                 "Itajaí",
	"sao jose":               "São José",
	"sao jose sc":            "São José",
	"chapeco":                "Chapecó",
	"criciuma":               "Criciúma",
	"jaragua":                "Jaraguá do Sul",
	"jaragua do sul":         "Jaraguá do Sul",
	"balneario":              "Balneário Camboriú",
	"bal camboriu":           "Balneário Camboriú",
	"bal. camboriu":          "Balneário Camboriú",
	"balneario camboriu":     "Balneário Camboriú",
	"picarras":               "Balneário Piçarras",
	"barra do sul":           "Balneário Barra do Sul",
	"arroio do silva":        "Balneário Arroio do Silva",
	"rincao":                 "Balneário Rincão",
	"gaivota":                "Balneário Gaivota",
	"herval do oeste":        "Herval d'Oeste",
	"herval doeste":          "Herval d'Oeste",
	"herval d oeste":         "Herval d'Oeste",
	"grao para":              "Grão-Pará",
	"sao miguel d'oeste":     "São Miguel do Oeste",
	"sao miguel doeste":      "São Miguel do Oeste",
	"sao chico":              "São Francisco do Sul",
	"santo amaro":            "Santo Amaro da Imperatriz",
	"lauro muller":           "Lauro Müller",
	"lauro muler":            "Lauro Müller",
	"presidente castelo":     "Presidente Castello Branco",
	"castello branco":        "Presidente Castello Branco",
	"dona ema":               "Dona Emma",
	"witmarsun":              "Witmarsum",
	"xanxere":                "Xanxerê",
	"joacaba":                "Joaçaba",
	"icara":                  "Içara",
	"biguacu":                "Biguaçu",
	"cacador":                "Caçador",
	"tubarao":                "Tubarão",
	"ararangua":              "Araranguá",
	"concordia":              "Concórdia",
	"sao bento":              "São Bento do Sul",
	"sao joao batista":       "São João Batista",
	"santo amaro imperatriz": "Santo Amaro da Imperatriz",

	// truncations and abbreviations that word-aligned containment does not reach
	"joinvil": "Joinville",
	"joinvi":  "Joinville",
	"jlle":    "Joinville",
	"blumen":  "Blumenau",
	"bnu":     "Blumenau",
	"florian": "Florianópolis",
	"criciu":  "Criciúma",
}

// Equivalences is a folded-spelling to official-name override table.
type Equivalences map[string]string

// DefaultEquivalences returns a copy of the built-in override table.
func DefaultEquivalences() Equivalences {
	out := make(Equivalences, len(defaultEquivalences))
	for k, v := range defaultEquivalences {
		out[k] = v
	}
	return out
}

// Validate checks that every key is folded and every value is a gazetteer entry.
func (e Equivalences) Validate(g *Gazetteer) error {
	for k, v := range e {
		if Fold(k) != k {
			return fmt.Errorf("equivalence key %q is not folded", k)
		}
		if !g.Contains(v) {
			return fmt.Errorf("equivalence %q maps to %q, which is not in the gazetteer", k, v)
		}
	}
	return nil
}
