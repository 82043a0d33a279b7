package utils

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
)

// StripMarkdown remove a formatação markdown e devolve texto puro, usado nos
// anúncios acessíveis e na versão de compartilhamento do comprovante
func StripMarkdown(texto string) string {
	if texto == "" {
		return ""
	}

	doc := markdown.Parse([]byte(texto), nil)

	var buf bytes.Buffer
	extrairTexto(doc, &buf)

	resultado := strings.TrimSpace(buf.String())
	resultado = strings.ReplaceAll(resultado, "\n\n\n", "\n\n")

	return resultado
}

// extrairTexto percorre a AST acumulando apenas o conteúdo textual
func extrairTexto(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Literal)
		return

	case *ast.Code:
		buf.Write(n.Literal)
		return

	case *ast.CodeBlock:
		buf.Write(n.Literal)
		return

	case *ast.Hardbreak:
		buf.WriteString("\n")
		return

	case *ast.Softbreak:
		buf.WriteString(" ")
		return

	case *ast.HTMLBlock, *ast.HTMLSpan:
		return
	}

	container := node.AsContainer()
	if container == nil {
		return
	}

	if _, ok := node.(*ast.ListItem); ok {
		buf.WriteString("- ")
	}

	for _, filho := range container.Children {
		extrairTexto(filho, buf)
	}

	switch node.(type) {
	case *ast.Paragraph, *ast.Heading:
		buf.WriteString("\n\n")
	case *ast.List, *ast.BlockQuote:
		buf.WriteString("\n")
	case *ast.ListItem:
		buf.WriteString("\n")
	}
}
