package utils

import (
	"strings"
	"testing"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name      string
		entrada   string
		contem    []string
		semMarcas bool
	}{
		{
			name:    "Texto vazio",
			entrada: "",
		},
		{
			name:      "Negrito e cabeçalho",
			entrada:   "# Protocolo\n\nGuarde o número **DF-20250315-00001-RCT**.",
			contem:    []string{"Protocolo", "DF-20250315-00001-RCT"},
			semMarcas: true,
		},
		{
			name:      "Lista vira marcadores simples",
			entrada:   "- **Data:** 15/03/2025\n- **Tipo:** Reclamação\n",
			contem:    []string{"- Data: 15/03/2025", "- Tipo: Reclamação"},
			semMarcas: true,
		},
		{
			name:      "Link mantém só o texto",
			entrada:   "acesse [o portal](https://participa.df.gov.br) hoje",
			contem:    []string{"acesse o portal hoje"},
			semMarcas: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripMarkdown(tt.entrada)

			for _, trecho := range tt.contem {
				if !strings.Contains(got, trecho) {
					t.Errorf("resultado sem trecho %q:\n%s", trecho, got)
				}
			}
			if tt.semMarcas {
				if strings.Contains(got, "**") || strings.Contains(got, "# ") {
					t.Errorf("resultado ainda carrega marcação:\n%s", got)
				}
			}
		})
	}
}
