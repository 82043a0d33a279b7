package services

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/constants"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/protocol"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/utils"
)

// ComprovanteMarkdown monta o comprovante da manifestação em markdown, com o
// protocolo em destaque e o resumo exibido na etapa final
func ComprovanteMarkdown(estado models.EstadoFormulario, protocolo models.Protocolo) string {
	var b strings.Builder

	b.WriteString("# Manifestação Registrada\n\n")
	b.WriteString("Sua manifestação foi registrada com sucesso no sistema Participa DF.\n\n")
	b.WriteString("## Número do Protocolo\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", protocolo.Completo)

	fmt.Fprintf(&b, "- **Data:** %s\n", protocol.FormatarDataExibicao(protocolo.Data))
	if rotulo, ok := constants.RotulosTipo[estado.Tipo]; ok {
		fmt.Fprintf(&b, "- **Tipo:** %s\n", rotulo)
	}
	if rotulo, ok := constants.RotulosCategoria[estado.Categoria]; ok {
		fmt.Fprintf(&b, "- **Categoria:** %s\n", rotulo)
	}

	identificacao := "Identificada"
	if estado.Anonima {
		identificacao = "Anônima"
	} else if estado.Usuario != nil && estado.Usuario.Nome != "" {
		identificacao = estado.Usuario.Nome
	}
	fmt.Fprintf(&b, "- **Identificação:** %s\n", identificacao)

	conteudo := make([]string, 0, 2)
	if estado.Texto != "" {
		conteudo = append(conteudo, "Texto")
	}
	if len(estado.Midia) > 0 {
		conteudo = append(conteudo, fmt.Sprintf("%d arquivo(s)", len(estado.Midia)))
	}
	if len(conteudo) > 0 {
		fmt.Fprintf(&b, "- **Conteúdo:** %s\n", strings.Join(conteudo, " + "))
	}

	b.WriteString("\n## Importante: guarde este número\n\n")
	b.WriteString("O número do protocolo é necessário para acompanhar o andamento da sua manifestação.\n")

	if !estado.Anonima && estado.Usuario != nil && estado.Usuario.Email != "" {
		fmt.Fprintf(&b, "\nUma cópia do protocolo foi enviada para **%s**.\n", estado.Usuario.Email)
	}

	b.WriteString("\nDúvidas? Entre em contato pelo **162** ou acesse participa.df.gov.br\n")

	return b.String()
}

// ComprovanteHTML renderiza o comprovante para exibição/impressão
func ComprovanteHTML(estado models.EstadoFormulario, protocolo models.Protocolo) string {
	md := ComprovanteMarkdown(estado, protocolo)

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	return string(markdown.ToHTML([]byte(md), p, renderer))
}

// ComprovanteTexto produz a versão em texto puro, usada no anúncio acessível
// e no compartilhamento
func ComprovanteTexto(estado models.EstadoFormulario, protocolo models.Protocolo) string {
	return utils.StripMarkdown(ComprovanteMarkdown(estado, protocolo))
}
