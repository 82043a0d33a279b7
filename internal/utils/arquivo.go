package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxNomeBase limita o tamanho da base do nome de arquivo sanitizado
	MaxNomeBase = 50
)

var caracteresInvalidos = regexp.MustCompile(`[^a-z0-9]+`)

// NomeArquivoSeguro sanitiza o nome de exibição de um anexo enviado pelo
// cidadão, preservando a extensão.
// Exemplo: "Relatório Água (final).PDF" -> "relatorio-agua-final.pdf"
func NomeArquivoSeguro(nome string) string {
	if nome == "" {
		return ""
	}

	extensao := strings.ToLower(filepath.Ext(nome))
	base := strings.TrimSuffix(nome, filepath.Ext(nome))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalizada, _, _ := transform.String(t, base)
	normalizada = strings.ToLower(normalizada)

	segura := caracteresInvalidos.ReplaceAllString(normalizada, "-")
	segura = strings.Trim(segura, "-")

	if len(segura) > MaxNomeBase {
		segura = segura[:MaxNomeBase]
		if ultimoHifen := strings.LastIndex(segura, "-"); ultimoHifen > 0 {
			segura = segura[:ultimoHifen]
		}
	}

	if segura == "" {
		segura = "anexo"
	}

	return segura + extensao
}
