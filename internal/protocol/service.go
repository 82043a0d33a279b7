// Package protocol gera e interpreta números de protocolo de manifestação.
//
// Formato: DF-YYYYMMDD-SSSSS-TC
//
// Onde:
//   - DF: jurisdição (Distrito Federal)
//   - YYYYMMDD: data de emissão
//   - SSSSS: sequencial do dia, com zeros à esquerda (00001-99999)
//   - TC: código do tipo de manifestação (2 letras) + canal de entrada (1 letra)
package protocol

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
)

// codigosTipo mapeia tipos de manifestação para o código de 2 letras
var codigosTipo = map[models.TipoManifestacao]string{
	models.TipoDenuncia:    "DN",
	models.TipoReclamacao:  "RC",
	models.TipoSugestao:    "SG",
	models.TipoElogio:      "EL",
	models.TipoSolicitacao: "SL",
	models.TipoInformacao:  "IF",
}

// codigosCanal mapeia canais de entrada para o sufixo de 1 letra
var codigosCanal = map[models.CanalEntrada]string{
	models.CanalTexto:  "T",
	models.CanalAudio:  "A",
	models.CanalImagem: "I",
	models.CanalVideo:  "V",
}

var padraoProtocolo = regexp.MustCompile(`^DF-\d{8}-\d{5}-[A-Z]{2,3}$`)

// AlocadorSequencia entrega o próximo sequencial do dia informado (YYYYMMDD).
//
// A implementação padrão é um contador local sem coordenação entre instâncias:
// a unicidade vale apenas dentro de um mesmo armazenamento, sob a premissa de
// escritor único. Uma implantação real substitui este contrato por um
// sequencial emitido pelo servidor.
type AlocadorSequencia interface {
	ProximaSequencia(dia string) (int, error)
}

// AlocadorMemoria é um alocador em memória, usado em testes e como degradação
// quando o armazenamento durável está indisponível
type AlocadorMemoria struct {
	mu         sync.Mutex
	contadores map[string]int
}

// NewAlocadorMemoria cria um alocador de sequência volátil
func NewAlocadorMemoria() *AlocadorMemoria {
	return &AlocadorMemoria{contadores: make(map[string]int)}
}

// ProximaSequencia incrementa e retorna o contador do dia
func (a *AlocadorMemoria) ProximaSequencia(dia string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.contadores[dia]++
	return a.contadores[dia], nil
}

// Service emite protocolos usando um alocador de sequência configurável
type Service struct {
	alocador AlocadorSequencia
	reserva  *AlocadorMemoria
	agora    func() time.Time
}

// NewService cria o serviço de protocolos. O alocador pode ser trocado por
// uma implementação servida pelo backend sem mudar o formato emitido.
func NewService(alocador AlocadorSequencia) *Service {
	return &Service{
		alocador: alocador,
		reserva:  NewAlocadorMemoria(),
		agora:    time.Now,
	}
}

// NewServiceComRelogio cria o serviço com relógio injetado, para testes
func NewServiceComRelogio(alocador AlocadorSequencia, agora func() time.Time) *Service {
	s := NewService(alocador)
	s.agora = agora
	return s
}

// Gerar emite um novo protocolo para o tipo e canal informados.
// Deve ser chamado exatamente uma vez por manifestação, na entrada da etapa
// final; o protocolo emitido nunca é regenerado.
func (s *Service) Gerar(tipo models.TipoManifestacao, canal models.CanalEntrada) (models.Protocolo, error) {
	codigoTipo, ok := codigosTipo[tipo]
	if !ok {
		return models.Protocolo{}, fmt.Errorf("tipo de manifestação desconhecido: %q", tipo)
	}
	codigoCanal, ok := codigosCanal[canal]
	if !ok {
		return models.Protocolo{}, fmt.Errorf("canal de entrada desconhecido: %q", canal)
	}

	dia := s.agora().Format("20060102")

	sequencia, err := s.alocador.ProximaSequencia(dia)
	if err != nil {
		// Armazenamento indisponível não bloqueia a emissão: cai para o
		// contador em memória e registra a degradação.
		log.Printf("Alocador de sequência indisponível, usando contador em memória: %v", err)
		sequencia, _ = s.reserva.ProximaSequencia(dia)
	}

	codigo := codigoTipo + codigoCanal
	completo := fmt.Sprintf("DF-%s-%05d-%s", dia, sequencia, codigo)

	return models.Protocolo{
		Completo:   completo,
		Data:       dia,
		Sequencia:  fmt.Sprintf("%05d", sequencia),
		CodigoTipo: codigo,
	}, nil
}

// CanalPrincipal determina o canal do conteúdo principal da manifestação.
// Quando há mídia de mais de um tipo, a precedência é
// vídeo > áudio > imagem > texto.
func CanalPrincipal(midia []models.ArquivoMidia) models.CanalEntrada {
	prioridade := []models.CanalEntrada{models.CanalVideo, models.CanalAudio, models.CanalImagem}
	for _, canal := range prioridade {
		for _, m := range midia {
			if m.Tipo == canal {
				return canal
			}
		}
	}
	return models.CanalTexto
}

// Validar verifica se a string está no formato exato de protocolo
func Validar(protocolo string) bool {
	return padraoProtocolo.MatchString(protocolo)
}

// Analisar decompõe um protocolo em seus campos. Retorna ok=false quando a
// string não está no formato esperado; nunca gera pânico.
func Analisar(protocolo string) (models.Protocolo, bool) {
	if !Validar(protocolo) {
		return models.Protocolo{}, false
	}

	partes := strings.Split(protocolo, "-")
	return models.Protocolo{
		Completo:   protocolo,
		Data:       partes[1],
		Sequencia:  partes[2],
		CodigoTipo: partes[3],
	}, true
}

// DataProtocolo extrai a data de emissão embutida no protocolo
func DataProtocolo(protocolo string) (time.Time, bool) {
	analisado, ok := Analisar(protocolo)
	if !ok {
		return time.Time{}, false
	}

	data, err := time.Parse("20060102", analisado.Data)
	if err != nil {
		return time.Time{}, false
	}
	return data, true
}

// FormatarDataExibicao converte a data YYYYMMDD do protocolo para DD/MM/YYYY
func FormatarDataExibicao(data string) string {
	if len(data) != 8 {
		return data
	}
	return data[6:8] + "/" + data[4:6] + "/" + data[0:4]
}
