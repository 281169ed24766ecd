package chat

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

const maxPromptNews = 5

type NewsItem struct {
	Titulo        string `json:"titulo"`
	Link          string `json:"link"`
	TextoCompleto string `json:"texto_completo,omitempty"`
	Resumo        string `json:"resumo,omitempty"`
	Data          string `json:"data,omitempty"`
}

type Organization struct {
	Nome string `json:"nome"`
}

// Knowledge mirrors the scraped dados.json knowledge base.
type Knowledge struct {
	Sobre        string            `json:"sobre"`
	Duvidas      map[string]string `json:"duvidas"`
	Noticias     []NewsItem        `json:"noticias"`
	SerProfessor struct {
		VagasAbertas struct {
			Texto string `json:"texto"`
			Link  string `json:"link"`
		} `json:"vagas_abertas"`
		RegistrarInteresse struct {
			Texto      string `json:"texto"`
			LinkPagina string `json:"link_pagina"`
		} `json:"registrar_interesse"`
	} `json:"ser_professor"`
	Hackathon struct {
		Descricao string     `json:"descricao"`
		LinkVideo string     `json:"link_video"`
		Noticias  []NewsItem `json:"noticias"`
	} `json:"hackathon"`
	RedesSociais   map[string]string `json:"redes_sociais"`
	Apoiadores     []Organization    `json:"apoiadores"`
	Patrocinadores []Organization    `json:"patrocinadores"`
	Parceiros      []Organization    `json:"parceiros"`
	LinksAcesso    struct {
		Aluno   string `json:"aluno"`
		Empresa string `json:"empresa"`
	} `json:"links_acesso"`
}

func LoadKnowledge(path string) (*Knowledge, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}
	var k Knowledge
	if err := sonic.Unmarshal(b, &k); err != nil {
		return nil, fmt.Errorf("decode knowledge file: %w", err)
	}
	return &k, nil
}

// SystemPrompt renders the assistant instructions. Missing sections get a fallback line.
func SystemPrompt(k *Knowledge) string {
	if k == nil {
		k = &Knowledge{}
	}
	var sb strings.Builder

	sb.WriteString(`Você é um assistente virtual chamado "leo" ou "leozin" especialista no programa Jovem Programador.
Sua única e exclusiva função é responder perguntas sobre este programa.
Sua personalidade é amigável, prestativa e você usa emojis de forma leve e ocasional 😊.
Evite repetir saudações como "Olá" ou "Oi" em todas as respostas.

Use APENAS as informações oficiais fornecidas abaixo. NÃO invente informações e NÃO use conhecimento externo.

--- INFORMAÇÕES OFICIAIS ---
`)

	section(&sb, "SOBRE O PROGRAMA", or(k.Sobre, "Informação não disponível."))
	section(&sb, "DÚVIDAS FREQUENTES", faqText(k.Duvidas))
	section(&sb, "ÚLTIMAS NOTÍCIAS", newsText(k.Noticias))
	section(&sb, "SOBRE O BLOG", "A seção 'Blog' e a seção 'ÚLTIMAS NOTÍCIAS' do site apresentam o mesmo conteúdo.")
	section(&sb, "COMO SER PROFESSOR", professorText(k))
	section(&sb, "SOBRE O HACKATHON", hackathonText(k))
	section(&sb, "REDES SOCIAIS", socialText(k.RedesSociais))
	section(&sb, "APOIADORES", orgText("O programa conta com o apoio de: ", k.Apoiadores, "Não encontrei a lista de empresas apoiadoras."))
	section(&sb, "PATROCINADORES", orgText("O programa é patrocinado por: ", k.Patrocinadores, "Não encontrei a lista de empresas patrocinadoras."))
	section(&sb, "PARCEIROS", orgText("Os parceiros do programa são: ", k.Parceiros, "Não encontrei a lista de parceiros do programa."))
	section(&sb, "PORTAIS DE ACESSO", accessText(k))

	sb.WriteString(`
--- REGRAS DE COMPORTAMENTO ---
1. Se a pergunta não tiver relação com o programa Jovem Programador, recuse educadamente: "Minha especialidade é apenas o programa Jovem Programador. Posso ajudar com algo sobre isso? 😉"
2. Mantenha as respostas claras e diretas.
3. Seja sempre simpático e profissional.
`)
	return sb.String()
}

func section(sb *strings.Builder, title, body string) {
	sb.WriteString("\n" + title + ":\n" + strings.TrimRight(body, "\n") + "\n")
}

func or(v, d string) string {
	if strings.TrimSpace(v) == "" {
		return d
	}
	return v
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func faqText(faq map[string]string) string {
	if len(faq) == 0 {
		return "Nenhuma dúvida frequente cadastrada."
	}
	var sb strings.Builder
	for _, q := range sortedKeys(faq) {
		fmt.Fprintf(&sb, "• %s: %s\n", q, faq[q])
	}
	return sb.String()
}

func newsText(news []NewsItem) string {
	if len(news) == 0 {
		return "Nenhuma notícia recente disponível."
	}
	if len(news) > maxPromptNews {
		news = news[:maxPromptNews]
	}
	var sb strings.Builder
	for _, n := range news {
		fmt.Fprintf(&sb, "• Título: %s\n  Texto Completo: %s\n  Link: %s\n\n", n.Titulo, n.TextoCompleto, n.Link)
	}
	return sb.String()
}

func professorText(k *Knowledge) string {
	p := k.SerProfessor
	if p.VagasAbertas.Texto == "" && p.VagasAbertas.Link == "" {
		return "Informação sobre como se tornar professor não foi encontrada."
	}
	return fmt.Sprintf("Existem duas maneiras de se candidatar:\n"+
		"1. Para Vagas Abertas: %s O link do portal é: %s\n"+
		"2. Para Registrar Interesse: %s A página para isso é: %s",
		p.VagasAbertas.Texto, p.VagasAbertas.Link,
		p.RegistrarInteresse.Texto, p.RegistrarInteresse.LinkPagina)
}

func hackathonText(k *Knowledge) string {
	h := k.Hackathon
	var parts []string
	if h.Descricao != "" {
		parts = append(parts, h.Descricao)
	}
	if h.LinkVideo != "" {
		parts = append(parts, "Para saber mais, assista ao vídeo principal: "+h.LinkVideo)
	}
	if len(h.Noticias) > 0 {
		var sb strings.Builder
		sb.WriteString("ÚLTIMAS NOTÍCIAS SOBRE O HACKATHON:\n")
		for _, n := range h.Noticias {
			fmt.Fprintf(&sb, "- Título: %s\n  Resumo: %s\n  Leia mais em: %s\n", n.Titulo, n.Resumo, n.Link)
		}
		parts = append(parts, sb.String())
	}
	if len(parts) == 0 {
		return "Informação sobre o Hackathon não foi encontrada."
	}
	return strings.Join(parts, "\n\n")
}

func socialText(redes map[string]string) string {
	if len(redes) == 0 {
		return "Não encontrei informações sobre as redes sociais oficiais do programa."
	}
	lines := []string{"Você pode encontrar e seguir o Jovem Programador nas seguintes redes sociais:"}
	for _, name := range sortedKeys(redes) {
		lines = append(lines, "- "+name+": "+redes[name])
	}
	return strings.Join(lines, "\n")
}

func orgText(lead string, orgs []Organization, fallback string) string {
	if len(orgs) == 0 {
		return fallback
	}
	names := make([]string, 0, len(orgs))
	for _, o := range orgs {
		names = append(names, o.Nome)
	}
	return lead + strings.Join(names, ", ") + "."
}

func accessText(k *Knowledge) string {
	a := k.LinksAcesso
	if a.Aluno == "" && a.Empresa == "" {
		return "Não encontrei os links para as áreas de acesso."
	}
	return fmt.Sprintf("O link para a Área do Aluno é: %s. O link para a Área da Empresa é: %s.",
		or(a.Aluno, "Link não disponível"), or(a.Empresa, "Link não disponível"))
}
