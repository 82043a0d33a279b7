package protocol

import (
	"errors"
	"testing"
	"time"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
)

func relogioFixo(t *testing.T) func() time.Time {
	t.Helper()
	instante := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return instante }
}

// alocadorFalho simula o armazenamento durável indisponível
type alocadorFalho struct{}

func (alocadorFalho) ProximaSequencia(string) (int, error) {
	return 0, errors.New("banco indisponível")
}

func TestGerar(t *testing.T) {
	tests := []struct {
		name         string
		tipo         models.TipoManifestacao
		canal        models.CanalEntrada
		wantCompleto string
		wantErr      bool
	}{
		{
			name:         "Reclamação por texto",
			tipo:         models.TipoReclamacao,
			canal:        models.CanalTexto,
			wantCompleto: "DF-20250315-00001-RCT",
		},
		{
			name:         "Denúncia por vídeo",
			tipo:         models.TipoDenuncia,
			canal:        models.CanalVideo,
			wantCompleto: "DF-20250315-00001-DNV",
		},
		{
			name:         "Elogio por áudio",
			tipo:         models.TipoElogio,
			canal:        models.CanalAudio,
			wantCompleto: "DF-20250315-00001-ELA",
		},
		{
			name:    "Tipo desconhecido",
			tipo:    models.TipoManifestacao("abaixo_assinado"),
			canal:   models.CanalTexto,
			wantErr: true,
		},
		{
			name:    "Canal desconhecido",
			tipo:    models.TipoSugestao,
			canal:   models.CanalEntrada("fax"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServiceComRelogio(NewAlocadorMemoria(), relogioFixo(t))

			protocolo, err := s.Gerar(tt.tipo, tt.canal)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Gerar() = %v, want erro", protocolo)
				}
				return
			}
			if err != nil {
				t.Fatalf("Gerar() erro inesperado: %v", err)
			}

			if protocolo.Completo != tt.wantCompleto {
				t.Errorf("Completo = %q, want %q", protocolo.Completo, tt.wantCompleto)
			}
			if !Validar(protocolo.Completo) {
				t.Errorf("protocolo emitido %q não passa na própria validação", protocolo.Completo)
			}
			if protocolo.Data != "20250315" {
				t.Errorf("Data = %q, want %q", protocolo.Data, "20250315")
			}
		})
	}
}

func TestGerarSequenciaIncrementa(t *testing.T) {
	s := NewServiceComRelogio(NewAlocadorMemoria(), relogioFixo(t))

	primeiro, err := s.Gerar(models.TipoReclamacao, models.CanalTexto)
	if err != nil {
		t.Fatalf("primeira emissão: %v", err)
	}
	segundo, err := s.Gerar(models.TipoSolicitacao, models.CanalImagem)
	if err != nil {
		t.Fatalf("segunda emissão: %v", err)
	}

	if primeiro.Sequencia != "00001" {
		t.Errorf("primeira Sequencia = %q, want %q", primeiro.Sequencia, "00001")
	}
	if segundo.Sequencia != "00002" {
		t.Errorf("segunda Sequencia = %q, want %q", segundo.Sequencia, "00002")
	}
	if primeiro.Completo == segundo.Completo {
		t.Errorf("protocolos do mesmo dia colidiram: %q", primeiro.Completo)
	}
}

func TestGerarComAlocadorIndisponivel(t *testing.T) {
	// A emissão nunca bloqueia por falha do armazenamento: cai para o
	// contador em memória
	s := NewServiceComRelogio(alocadorFalho{}, relogioFixo(t))

	protocolo, err := s.Gerar(models.TipoInformacao, models.CanalTexto)
	if err != nil {
		t.Fatalf("Gerar() erro inesperado: %v", err)
	}
	if protocolo.Completo != "DF-20250315-00001-IFT" {
		t.Errorf("Completo = %q, want %q", protocolo.Completo, "DF-20250315-00001-IFT")
	}
}

func TestCanalPrincipal(t *testing.T) {
	duracao := 12.5

	tests := []struct {
		name  string
		midia []models.ArquivoMidia
		want  models.CanalEntrada
	}{
		{
			name: "Sem mídia é texto",
			want: models.CanalTexto,
		},
		{
			name: "Só imagem",
			midia: []models.ArquivoMidia{
				{ID: "a", Tipo: models.CanalImagem},
			},
			want: models.CanalImagem,
		},
		{
			name: "Vídeo tem precedência sobre áudio e imagem",
			midia: []models.ArquivoMidia{
				{ID: "a", Tipo: models.CanalImagem},
				{ID: "b", Tipo: models.CanalAudio, DuracaoSegundos: &duracao},
				{ID: "c", Tipo: models.CanalVideo},
			},
			want: models.CanalVideo,
		},
		{
			name: "Áudio tem precedência sobre imagem",
			midia: []models.ArquivoMidia{
				{ID: "a", Tipo: models.CanalImagem},
				{ID: "b", Tipo: models.CanalAudio},
			},
			want: models.CanalAudio,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanalPrincipal(tt.midia); got != tt.want {
				t.Errorf("CanalPrincipal() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidarEAnalisar(t *testing.T) {
	tests := []struct {
		name      string
		protocolo string
		valido    bool
	}{
		{"Protocolo bem formado", "DF-20250315-00042-RCT", true},
		{"Código de dois caracteres", "DF-20250315-00042-RC", true},
		{"String vazia", "", false},
		{"Prefixo errado", "RJ-20250315-00042-RCT", false},
		{"Data curta", "DF-2025031-00042-RCT", false},
		{"Sequencial curto", "DF-20250315-0042-RCT", false},
		{"Código minúsculo", "DF-20250315-00042-rct", false},
		{"Lixo arbitrário", "protocolo-qualquer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validar(tt.protocolo); got != tt.valido {
				t.Errorf("Validar(%q) = %v, want %v", tt.protocolo, got, tt.valido)
			}

			analisado, ok := Analisar(tt.protocolo)
			if ok != tt.valido {
				t.Fatalf("Analisar(%q) ok = %v, want %v", tt.protocolo, ok, tt.valido)
			}
			if !ok {
				return
			}
			if analisado.Completo != tt.protocolo {
				t.Errorf("Completo = %q, want %q", analisado.Completo, tt.protocolo)
			}
			if analisado.Data != "20250315" {
				t.Errorf("Data = %q, want %q", analisado.Data, "20250315")
			}
			if analisado.Sequencia != "00042" {
				t.Errorf("Sequencia = %q, want %q", analisado.Sequencia, "00042")
			}
		})
	}
}

func TestDataProtocolo(t *testing.T) {
	data, ok := DataProtocolo("DF-20250315-00001-SGT")
	if !ok {
		t.Fatal("DataProtocolo() ok = false, want true")
	}
	want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !data.Equal(want) {
		t.Errorf("data = %v, want %v", data, want)
	}

	if _, ok := DataProtocolo("DF-20251345-00001-SGT"); ok {
		t.Error("DataProtocolo() aceitou data de calendário inválida")
	}
}

func TestFormatarDataExibicao(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"Data do protocolo", "20250315", "15/03/2025"},
		{"Virada de ano", "20241231", "31/12/2024"},
		{"Tamanho inesperado passa intacto", "2025", "2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatarDataExibicao(tt.data); got != tt.want {
				t.Errorf("FormatarDataExibicao(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}
