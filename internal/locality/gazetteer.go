package locality

import (
	"fmt"
	"unicode/utf8"
)

// santaCatarina lists the official municipality names of Santa Catarina.
var santaCatarina = []string{
	"Abdon Batista", "Abelardo Luz", "Agrolândia", "Agronômica", "Água Doce",
	"Águas de Chapecó", "Águas Frias", "Águas Mornas", "Alfredo Wagner", "Alto Bela Vista",
	"Anchieta", "Angelina", "Anita Garibaldi", "Anitápolis", "Antônio Carlos",
	"Apiúna", "Arabutã", "Araquari", "Araranguá", "Armazém",
	"Arroio Trinta", "Arvoredo", "Ascurra", "Atalanta", "Aurora",
	"Balneário Arroio do Silva", "Balneário Barra do Sul", "Balneário Camboriú", "Balneário Gaivota", "Balneário Piçarras",
	"Balneário Rincão", "Bandeirante", "Barra Bonita", "Barra Velha", "Bela Vista do Toldo",
	"Belmonte", "Benedito Novo", "Biguaçu", "Blumenau", "Bocaina do Sul",
	"Bom Jardim da Serra", "Bom Jesus", "Bom Jesus do Oeste", "Bom Retiro", "Bombinhas",
	"Botuverá", "Braço do Norte", "Braço do Trombudo", "Brunópolis", "Brusque",
	"Caçador", "Caibi", "Calmon", "Camboriú", "Campo Alegre",
	"Campo Belo do Sul", "Campo Erê", "Campos Novos", "Canelinha", "Canoinhas",
	"Capão Alto", "Capinzal", "Capivari de Baixo", "Catanduvas", "Caxambu do Sul",
	"Celso Ramos", "Cerro Negro", "Chapadão do Lageado", "Chapecó", "Cocal do Sul",
	"Concórdia", "Cordilheira Alta", "Coronel Freitas", "Coronel Martins", "Correia Pinto",
	"Corupá", "Criciúma", "Cunha Porã", "Cunhataí", "Curitibanos",
	"Descanso", "Dionísio Cerqueira", "Dona Emma", "Doutor Pedrinho", "Entre Rios",
	"Ermo", "Erval Velho", "Faxinal dos Guedes", "Flor do Sertão", "Florianópolis",
	"Formosa do Sul", "Forquilhinha", "Fraiburgo", "Frei Rogério", "Galvão",
	"Garopaba", "Garuva", "Gaspar", "Governador Celso Ramos", "Grão-Pará",
	"Gravatal", "Guabiruba", "Guaraciaba", "Guaramirim", "Guarujá do Sul",
	"Guatambu", "Herval d'Oeste", "Ibiam", "Ibicaré", "Ibirama",
	"Içara", "Ilhota", "Imaruí", "Imbituba", "Imbuia",
	"Indaial", "Iomerê", "Ipira", "Iporã do Oeste", "Ipuaçu",
	"Ipumirim", "Iraceminha", "Irani", "Irati", "Irineópolis",
	"Itá", "Itaiópolis", "Itajaí", "Itapema", "Itapiranga",
	"Itapoá", "Ituporanga", "Jaborá", "Jacinto Machado", "Jaguaruna",
	"Jaraguá do Sul", "Jardinópolis", "Joaçaba", "Joinville", "José Boiteux",
	"Jupiá", "Lacerdópolis", "Lages", "Laguna", "Lajeado Grande",
	"Laurentino", "Lauro Müller", "Lebon Régis", "Leoberto Leal", "Lindóia do Sul",
	"Lontras", "Luiz Alves", "Luzerna", "Macieira", "Mafra",
	"Major Gercino", "Major Vieira", "Maracajá", "Maravilha", "Marema",
	"Massaranduba", "Matos Costa", "Meleiro", "Mirim Doce", "Modelo",
	"Mondaí", "Monte Carlo", "Monte Castelo", "Morro da Fumaça", "Morro Grande",
	"Navegantes", "Nova Erechim", "Nova Itaberaba", "Nova Trento", "Nova Veneza",
	"Novo Horizonte", "Orleans", "Otacílio Costa", "Ouro", "Ouro Verde",
	"Paial", "Painel", "Palhoça", "Palma Sola", "Palmeira",
	"Palmitos", "Papanduva", "Paraíso", "Passo de Torres", "Passos Maia",
	"Paulo Lopes", "Pedras Grandes", "Penha", "Peritiba", "Pescaria Brava",
	"Petrolândia", "Pinhalzinho", "Pinheiro Preto", "Piratuba", "Planalto Alegre",
	"Pomerode", "Ponte Alta", "Ponte Alta do Norte", "Ponte Serrada", "Porto Belo",
	"Porto União", "Pouso Redondo", "Praia Grande", "Presidente Castello Branco", "Presidente Getúlio",
	"Presidente Nereu", "Princesa", "Quilombo", "Rancho Queimado", "Rio das Antas",
	"Rio do Campo", "Rio do Oeste", "Rio do Sul", "Rio dos Cedros", "Rio Fortuna",
	"Rio Negrinho", "Rio Rufino", "Riqueza", "Rodeio", "Romelândia",
	"Salete", "Saltinho", "Salto Veloso", "Sangão", "Santa Cecília",
	"Santa Helena", "Santa Rosa de Lima", "Santa Rosa do Sul", "Santa Terezinha", "Santa Terezinha do Progresso",
	"Santiago do Sul", "Santo Amaro da Imperatriz", "São Bento do Sul", "São Bernardino", "São Bonifácio",
	"São Carlos", "São Cristóvão do Sul", "São Domingos", "São Francisco do Sul", "São João Batista",
	"São João do Itaperiú", "São João do Oeste", "São João do Sul", "São Joaquim", "São José",
	"São José do Cedro", "São José do Cerrito", "São Lourenço do Oeste", "São Ludgero", "São Martinho",
	"São Miguel da Boa Vista", "São Miguel do Oeste", "São Pedro de Alcântara", "Saudades", "Schroeder",
	"Seara", "Serra Alta", "Siderópolis", "Sombrio", "Sul Brasil",
	"Taió", "Tangará", "Tigrinhos", "Tijucas", "Timbé do Sul",
	"Timbó", "Timbó Grande", "Três Barras", "Treviso", "Treze de Maio",
	"Treze Tílias", "Trombudo Central", "Tubarão", "Tunápolis", "Turvo",
	"União do Oeste", "Urubici", "Urupema", "Urussanga", "Vargeão",
	"Vargem", "Vargem Bonita", "Vidal Ramos", "Videira", "Vitor Meireles",
	"Witmarsum", "Xanxerê", "Xavantina", "Xaxim", "Zortéa",
}

// Gazetteer is the read-only set of official municipality names used as ground truth.
type Gazetteer struct {
	names    []string
	stripped []string
	index    map[string]int
}

// NewGazetteer builds a gazetteer from a literal list. Names shorter than two runes and
// duplicates (after accent folding) are rejected.
func NewGazetteer(names []string) (*Gazetteer, error) {
	g := &Gazetteer{
		names:    make([]string, 0, len(names)),
		stripped: make([]string, 0, len(names)),
		index:    make(map[string]int, len(names)),
	}
	for _, n := range names {
		if utf8.RuneCountInString(n) < 2 {
			return nil, fmt.Errorf("gazetteer: name %q is shorter than 2 characters", n)
		}
		key := Fold(n)
		if _, dup := g.index[key]; dup {
			return nil, fmt.Errorf("gazetteer: duplicate name %q", n)
		}
		g.index[key] = len(g.names)
		g.names = append(g.names, n)
		g.stripped = append(g.stripped, key)
	}
	return g, nil
}

// SantaCatarina returns the gazetteer of the 295 Santa Catarina municipalities.
func SantaCatarina() *Gazetteer {
	g, err := NewGazetteer(santaCatarina)
	if err != nil {
		panic(err)
	}
	return g
}

// Contains reports whether name is an official entry, spelled exactly.
func (g *Gazetteer) Contains(name string) bool {
	i, ok := g.index[Fold(name)]
	return ok && g.names[i] == name
}

// All returns the official names in gazetteer order.
func (g *Gazetteer) All() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Len returns the number of entries.
func (g *Gazetteer) Len() int { return len(g.names) }

// lookup returns the official entry whose folded form equals key.
func (g *Gazetteer) lookup(key string) (string, bool) {
	i, ok := g.index[key]
	if !ok {
		return "", false
	}
	return g.names[i], true
}
