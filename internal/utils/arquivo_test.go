package utils

import (
	"strings"
	"testing"
)

func TestNomeArquivoSeguro(t *testing.T) {
	tests := []struct {
		name     string
		entrada  string
		esperado string
	}{
		{"Nome simples", "foto.jpg", "foto.jpg"},
		{"Acentos e parênteses", "Relatório Água (final).PDF", "relatorio-agua-final.pdf"},
		{"Espaços viram hífen", "minha foto da rua.png", "minha-foto-da-rua.png"},
		{"Extensão em maiúsculas", "AUDIO.WEBM", "audio.webm"},
		{"Sem extensão", "gravação de áudio", "gravacao-de-audio"},
		{"Só caracteres inválidos", "!!!???.png", "anexo.png"},
		{"Vazio", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NomeArquivoSeguro(tt.entrada); got != tt.esperado {
				t.Errorf("NomeArquivoSeguro(%q) = %q, want %q", tt.entrada, got, tt.esperado)
			}
		})
	}
}

func TestNomeArquivoSeguroTruncaNomesLongos(t *testing.T) {
	longo := strings.Repeat("palavra-", 20) + "fim.jpg"

	got := NomeArquivoSeguro(longo)

	if !strings.HasSuffix(got, ".jpg") {
		t.Errorf("extensão perdida: %q", got)
	}
	base := strings.TrimSuffix(got, ".jpg")
	if len(base) > MaxNomeBase {
		t.Errorf("base com %d caracteres, máximo %d", len(base), MaxNomeBase)
	}
	if strings.HasSuffix(base, "-") {
		t.Errorf("base truncada terminou em hífen: %q", base)
	}
}
