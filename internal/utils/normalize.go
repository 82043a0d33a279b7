package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizarCategoria converte um rótulo de categoria para o valor interno
// usado pelo sistema. Exemplo: "Saúde" -> "saude",
// "Assistência Social" -> "assistencia_social"
func NormalizarCategoria(categoria string) string {
	if categoria == "" {
		return categoria
	}

	// Remove acentos e diacríticos
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalizada, _, _ := transform.String(t, categoria)

	normalizada = strings.ToLower(strings.TrimSpace(normalizada))
	normalizada = strings.ReplaceAll(normalizada, " ", "_")

	return normalizada
}

// DesnormalizarCategoria encontra o rótulo original a partir do valor
// normalizado e de uma lista de rótulos válidos. Sem correspondência,
// devolve o valor normalizado mesmo.
func DesnormalizarCategoria(categoriaNormalizada string, rotulosValidos []string) string {
	for _, rotulo := range rotulosValidos {
		if NormalizarCategoria(rotulo) == categoriaNormalizada {
			return rotulo
		}
	}
	return categoriaNormalizada
}
