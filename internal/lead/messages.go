package lead

import (
	"fmt"
	"strings"

	"jpchat/internal/model"
)

// MessageComposer supplies the user-facing texts of the capture dialog.
type MessageComposer interface {
	Welcome() string
	Prompt(field model.Field) string
	Retry(field model.Field) string
	Completed(lead model.Lead) string
	DataDeleted() string
	FlowSkipped() string
}

// PortugueseMessages is the default pt-BR composer.
type PortugueseMessages struct{}

func (PortugueseMessages) Welcome() string {
	return "Olá! 👋 Eu sou o Leozin, assistente do programa Jovem Programador. Antes de começarmos, quero te conhecer melhor."
}

func (PortugueseMessages) Prompt(field model.Field) string {
	switch field {
	case model.FieldName:
		return "Qual é o seu nome?"
	case model.FieldInterest:
		return "Qual é o seu interesse no programa? (ex.: ser aluno, ser professor, empresa parceira)"
	case model.FieldCity:
		return "Em qual cidade você mora?"
	case model.FieldState:
		return "E em qual estado? Pode ser a sigla, como SC."
	case model.FieldAge:
		return "Quantos anos você tem?"
	case model.FieldEmail:
		return "Qual é o seu e-mail? Se preferir, digite \"pular\"."
	}
	return "Pode me contar um pouco mais?"
}

func (PortugueseMessages) Retry(field model.Field) string {
	switch field {
	case model.FieldName:
		return "Não entendi seu nome. 😅 Pode digitar novamente?"
	case model.FieldInterest:
		return "Pode me contar qual é o seu interesse no programa?"
	case model.FieldCity:
		return "Não consegui entender a cidade. Pode digitar novamente?"
	case model.FieldState:
		return "Não reconheci o estado. Digite a sigla (ex.: SC) ou o nome completo (ex.: Santa Catarina)."
	case model.FieldAge:
		return "Informe sua idade apenas com números, entre 10 e 110 anos."
	case model.FieldEmail:
		return "Esse e-mail parece inválido. Pode digitar novamente?"
	}
	return "Não entendi. Pode tentar de novo?"
}

func (PortugueseMessages) Completed(lead model.Lead) string {
	if lead.Name != "" {
		first := strings.Fields(lead.Name)[0]
		return fmt.Sprintf("Obrigado, %s! 🎉 Cadastro concluído. Agora pode me perguntar o que quiser sobre o Jovem Programador.", first)
	}
	return "Obrigado! 🎉 Cadastro concluído. Agora pode me perguntar o que quiser sobre o Jovem Programador."
}

func (PortugueseMessages) DataDeleted() string {
	return "Pronto, seus dados foram apagados. 🗑️ Se quiser recomeçar, é só mandar uma mensagem."
}

func (PortugueseMessages) FlowSkipped() string {
	return "Tudo bem, vamos pular o cadastro. 😉 Como posso te ajudar com o Jovem Programador?"
}
