package lead

import (
	"strings"
	"unicode"

	"jpchat/internal/locality"
)

// Command is a user instruction that overrides field collection.
type Command int

const (
	CommandNone Command = iota
	// CommandDeleteData wipes the lead and restarts the conversation.
	CommandDeleteData
	// CommandSkipFlow ends registration, keeping whatever was collected.
	CommandSkipFlow
	// CommandSkipField skips only the field currently being asked.
	CommandSkipField
)

// Phrases are matched against folded text with punctuation removed.
var (
	deletePhrases = []string{
		"apagar dados", "apagar meus dados", "apague meus dados", "apaga meus dados",
		"excluir dados", "excluir meus dados", "exclua meus dados",
		"deletar dados", "deletar meus dados", "delete meus dados",
		"remover meus dados", "esquecer meus dados", "esqueca meus dados",
	}
	skipFlowPhrases = []string{
		"pular cadastro", "pular o cadastro", "pular registro", "pular o registro",
		"pular tudo", "nao quero me cadastrar", "nao quero cadastrar", "nao quero fazer cadastro",
		"nao quero fazer o cadastro", "sem cadastro", "cancelar cadastro", "cancelar o cadastro",
	}
	skipFieldPhrases = []string{
		"pular", "pula", "pule", "proximo", "proxima", "passar", "passo",
		"prefiro nao informar", "prefiro nao dizer", "prefiro nao responder",
		"nao quero informar", "nao quero dizer", "nao quero responder", "nao informar",
		"skip",
	}
)

// cleanCommand folds text and keeps only letters, digits and single spaces.
func cleanCommand(text string) string {
	folded := locality.Fold(text)
	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// DetectCommand classifies text. Global commands match anywhere in the message; a field
// skip must be the whole message.
func DetectCommand(text string) Command {
	clean := cleanCommand(text)
	if clean == "" {
		return CommandNone
	}
	padded := " " + clean + " "
	for _, p := range deletePhrases {
		if strings.Contains(padded, " "+p+" ") {
			return CommandDeleteData
		}
	}
	for _, p := range skipFlowPhrases {
		if strings.Contains(padded, " "+p+" ") {
			return CommandSkipFlow
		}
	}
	for _, p := range skipFieldPhrases {
		if clean == p {
			return CommandSkipField
		}
	}
	return CommandNone
}
