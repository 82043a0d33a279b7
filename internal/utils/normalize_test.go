package utils

import "testing"

func TestNormalizarCategoria(t *testing.T) {
	tests := []struct {
		name     string
		entrada  string
		esperado string
	}{
		{"Acentuação simples", "Saúde", "saude"},
		{"Nome composto", "Assistência Social", "assistencia_social"},
		{"Nome com qualificador", "Segurança Pública", "seguranca_publica"},
		{"Sem acentos", "Transporte", "transporte"},
		{"Espaços nas bordas", "  Meio Ambiente  ", "meio_ambiente"},
		{"Já normalizada", "infraestrutura", "infraestrutura"},
		{"Vazia", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizarCategoria(tt.entrada); got != tt.esperado {
				t.Errorf("NormalizarCategoria(%q) = %q, want %q", tt.entrada, got, tt.esperado)
			}
		})
	}
}

func TestDesnormalizarCategoria(t *testing.T) {
	rotulos := []string{"Saúde", "Educação", "Meio Ambiente"}

	tests := []struct {
		name     string
		entrada  string
		esperado string
	}{
		{"Encontra o rótulo original", "saude", "Saúde"},
		{"Rótulo composto", "meio_ambiente", "Meio Ambiente"},
		{"Sem correspondência devolve a entrada", "esporte", "esporte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DesnormalizarCategoria(tt.entrada, rotulos); got != tt.esperado {
				t.Errorf("DesnormalizarCategoria(%q) = %q, want %q", tt.entrada, got, tt.esperado)
			}
		})
	}
}
