package services

import (
	"strings"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
)

// FeedbackValidacao é o pacote de retorno visual/acessível montado a partir
// dos erros de validação do wizard. O coordenador não contém regra de
// negócio: apenas traduz a lista de erros em instruções de apresentação
// (toast, destaque de campos, rolagem e anúncio para leitores de tela).
type FeedbackValidacao struct {
	Mensagem         string   `json:"mensagem"`
	Severidade       string   `json:"severidade"`
	DuracaoMs        int      `json:"duracao_ms"`
	CamposDestacados []string `json:"campos_destacados"`
	PrimeiroCampo    string   `json:"primeiro_campo,omitempty"`
	Anuncio          string   `json:"anuncio"`
}

const (
	severidadeAviso   = "warning"
	duracaoToastMs    = 5000
	duracaoDestaqueMs = 3000
)

// DuracaoDestaqueMs é quanto tempo o destaque dos campos inválidos permanece
func DuracaoDestaqueMs() int {
	return duracaoDestaqueMs
}

// MontarFeedback monta o retorno para o clique no botão Continuar
// desabilitado. Retorna nil quando não há erros.
func MontarFeedback(erros []models.ErroValidacao) *FeedbackValidacao {
	if len(erros) == 0 {
		return nil
	}

	mensagens := make([]string, len(erros))
	for i, erro := range erros {
		mensagens[i] = erro.Mensagem
	}

	mensagem := mensagens[0]
	if len(mensagens) > 1 {
		mensagem = "Campos obrigatórios: " + strings.Join(mensagens, "; ")
	}

	var campos []string
	for _, erro := range erros {
		if erro.ElementoID != "" {
			campos = append(campos, erro.ElementoID)
		}
	}

	primeiro := ""
	if len(campos) > 0 {
		primeiro = campos[0]
	}

	return &FeedbackValidacao{
		Mensagem:         mensagem,
		Severidade:       severidadeAviso,
		DuracaoMs:        duracaoToastMs,
		CamposDestacados: campos,
		PrimeiroCampo:    primeiro,
		Anuncio:          mensagem,
	}
}
