package constants

import (
	"testing"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
)

func TestCategoriaPorEntrada(t *testing.T) {
	tests := []struct {
		name    string
		entrada string
		want    models.CategoriaManifestacao
		wantOk  bool
	}{
		{"Valor interno", "meio_ambiente", models.CategoriaMeioAmbiente, true},
		{"Rótulo com acento", "Saúde", models.CategoriaSaude, true},
		{"Rótulo composto", "Assistência Social", models.CategoriaAssistenciaSocial, true},
		{"Rótulo com qualificador", "Segurança Pública", models.CategoriaSeguranca, true},
		{"Rótulo sem acento", "saude", models.CategoriaSaude, true},
		{"Categoria desconhecida", "astronomia", "", false},
		{"Entrada vazia", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CategoriaPorEntrada(tt.entrada)
			if ok != tt.wantOk {
				t.Fatalf("CategoriaPorEntrada(%q) ok = %v, want %v", tt.entrada, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("CategoriaPorEntrada(%q) = %q, want %q", tt.entrada, got, tt.want)
			}
		})
	}
}

func TestTipoPorEntrada(t *testing.T) {
	tests := []struct {
		name    string
		entrada string
		want    models.TipoManifestacao
		wantOk  bool
	}{
		{"Valor interno", "reclamacao", models.TipoReclamacao, true},
		{"Rótulo com acento", "Denúncia", models.TipoDenuncia, true},
		{"Rótulo composto", "Pedido de Informação", models.TipoInformacao, true},
		{"Tipo desconhecido", "peticao", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TipoPorEntrada(tt.entrada)
			if ok != tt.wantOk {
				t.Fatalf("TipoPorEntrada(%q) ok = %v, want %v", tt.entrada, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("TipoPorEntrada(%q) = %q, want %q", tt.entrada, got, tt.want)
			}
		})
	}
}
