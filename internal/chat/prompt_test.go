package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPrompt_Fallbacks(t *testing.T) {
	p := SystemPrompt(nil)
	assert.Contains(t, p, "Informação não disponível.")
	assert.Contains(t, p, "Nenhuma notícia recente disponível.")
	assert.Contains(t, p, "Não encontrei os links para as áreas de acesso.")
}

func TestLoadKnowledge(t *testing.T) {
	var news string
	for i := 1; i <= 7; i++ {
		if i > 1 {
			news += ","
		}
		news += fmt.Sprintf(`{"titulo":"Notícia %d","link":"https://x/%d","texto_completo":"texto %d"}`, i, i, i)
	}
	data := `{
		"sobre": "Programa de capacitação.",
		"duvidas": {"Quem pode participar?": "Jovens a partir de 16 anos."},
		"noticias": [` + news + `],
		"hackathon": {"descricao": "Maratona de programação."},
		"apoiadores": [{"nome": "ACATE"}, {"nome": "SEPROSC"}],
		"links_acesso": {"aluno": "https://aluno"}
	}`
	path := filepath.Join(t.TempDir(), "dados.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	k, err := LoadKnowledge(path)
	require.NoError(t, err)

	p := SystemPrompt(k)
	assert.Contains(t, p, "Programa de capacitação.")
	assert.Contains(t, p, "• Quem pode participar?: Jovens a partir de 16 anos.")
	assert.Contains(t, p, "Notícia 5")
	assert.NotContains(t, p, "Notícia 6")
	assert.Contains(t, p, "Maratona de programação.")
	assert.Contains(t, p, "O programa conta com o apoio de: ACATE, SEPROSC.")
	assert.Contains(t, p, "Área do Aluno é: https://aluno. O link para a Área da Empresa é: Link não disponível.")
}

func TestLoadKnowledge_Errors(t *testing.T) {
	_, err := LoadKnowledge(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadKnowledge(path)
	assert.Error(t, err)
}
