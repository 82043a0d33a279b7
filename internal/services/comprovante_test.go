package services

import (
	"strings"
	"testing"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
)

func estadoExemplo() models.EstadoFormulario {
	return models.EstadoFormulario{
		EtapaAtual: models.EtapaProtocolo,
		Tipo:       models.TipoReclamacao,
		Categoria:  models.CategoriaSaude,
		Texto:      "a UBS da minha região está sem pediatra há meses",
		Midia: []models.ArquivoMidia{
			{ID: "m1", Tipo: models.CanalImagem, Nome: "fila.jpg"},
			{ID: "m2", Tipo: models.CanalAudio, Nome: "relato.webm"},
		},
		Usuario: &models.DadosUsuario{Nome: "Ana Lima", Email: "ana@exemplo.com"},
	}
}

func protocoloExemplo() models.Protocolo {
	return models.Protocolo{
		Completo:   "DF-20250315-00042-RCI",
		Data:       "20250315",
		Sequencia:  "00042",
		CodigoTipo: "RCI",
	}
}

func TestComprovanteMarkdown(t *testing.T) {
	md := ComprovanteMarkdown(estadoExemplo(), protocoloExemplo())

	wants := []string{
		"**DF-20250315-00042-RCI**",
		"**Data:** 15/03/2025",
		"**Tipo:** Reclamação",
		"**Categoria:** Saúde",
		"**Identificação:** Ana Lima",
		"**Conteúdo:** Texto + 2 arquivo(s)",
		"enviada para **ana@exemplo.com**",
		"162",
		"participa.df.gov.br",
	}
	for _, want := range wants {
		if !strings.Contains(md, want) {
			t.Errorf("comprovante sem trecho %q\n%s", want, md)
		}
	}
}

func TestComprovanteMarkdownAnonimo(t *testing.T) {
	estado := estadoExemplo()
	estado.Anonima = true

	md := ComprovanteMarkdown(estado, protocoloExemplo())

	if !strings.Contains(md, "**Identificação:** Anônima") {
		t.Errorf("comprovante anônimo sem identificação anônima\n%s", md)
	}
	if strings.Contains(md, "ana@exemplo.com") {
		t.Error("comprovante anônimo vazou o e-mail do usuário")
	}
}

func TestComprovanteMarkdownSoTexto(t *testing.T) {
	estado := estadoExemplo()
	estado.Midia = nil

	md := ComprovanteMarkdown(estado, protocoloExemplo())

	if !strings.Contains(md, "**Conteúdo:** Texto\n") {
		t.Errorf("comprovante só-texto com conteúdo errado\n%s", md)
	}
	if strings.Contains(md, "arquivo(s)") {
		t.Error("comprovante só-texto menciona arquivos")
	}
}

func TestComprovanteHTML(t *testing.T) {
	html := ComprovanteHTML(estadoExemplo(), protocoloExemplo())

	if !strings.Contains(html, "<h1") {
		t.Errorf("HTML sem cabeçalho\n%s", html)
	}
	if !strings.Contains(html, "<strong>DF-20250315-00042-RCI</strong>") {
		t.Errorf("HTML sem o protocolo em destaque\n%s", html)
	}
}

func TestComprovanteTexto(t *testing.T) {
	texto := ComprovanteTexto(estadoExemplo(), protocoloExemplo())

	if strings.Contains(texto, "**") || strings.Contains(texto, "#") {
		t.Errorf("texto puro ainda carrega marcação\n%s", texto)
	}
	if !strings.Contains(texto, "DF-20250315-00042-RCI") {
		t.Errorf("texto puro sem o protocolo\n%s", texto)
	}
}
