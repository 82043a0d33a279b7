package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/protocol"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/services"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/storage"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/wizard"
)

// ProtocoloHandler emite, consulta e decompõe protocolos de manifestação
type ProtocoloHandler struct {
	sessoes       *wizard.Manager
	protocolos    *protocol.Service
	armazenamento *storage.Store
}

func NewProtocoloHandler(sessoes *wizard.Manager, protocolos *protocol.Service, armazenamento *storage.Store) *ProtocoloHandler {
	return &ProtocoloHandler{
		sessoes:       sessoes,
		protocolos:    protocolos,
		armazenamento: armazenamento,
	}
}

// ProtocoloResponse é a visão do protocolo emitido
type ProtocoloResponse struct {
	Protocolo      models.Protocolo    `json:"protocolo"`
	DataExibicao   string              `json:"data_exibicao"`
	CanalPrincipal models.CanalEntrada `json:"canal_principal"`
	Reemitido      bool                `json:"reemitido"`
}

// EmitirProtocolo godoc
// @Summary Emite o protocolo da manifestação
// @Description Emite o protocolo no máximo uma vez por sessão, na entrada da etapa final; chamadas repetidas devolvem o protocolo já emitido. O canal principal segue a precedência vídeo > áudio > imagem > texto.
// @Tags protocolos
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} ProtocoloResponse
// @Success 201 {object} ProtocoloResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/sessoes/{id}/protocolo [post]
func (h *ProtocoloHandler) EmitirProtocolo(c *gin.Context) {
	sessao, ok := h.sessoes.Obter(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sessão não encontrada"})
		return
	}

	estado := sessao.Wizard.Estado()
	if estado.EtapaAtual != models.EtapaProtocolo {
		c.JSON(http.StatusConflict, gin.H{"error": "Protocolo só é emitido na etapa final"})
		return
	}
	if estado.Tipo == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Manifestação sem tipo definido"})
		return
	}

	canal := protocol.CanalPrincipal(estado.Midia)

	protocolo, reemitido, err := sessao.EmitirProtocolo(func(estado models.EstadoFormulario) (models.Protocolo, error) {
		return h.protocolos.Gerar(estado.Tipo, canal)
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if !reemitido {
		h.registrarManifestacao(estado, protocolo)
	}

	status := http.StatusCreated
	if reemitido {
		status = http.StatusOK
	}
	c.JSON(status, ProtocoloResponse{
		Protocolo:      protocolo,
		DataExibicao:   protocol.FormatarDataExibicao(protocolo.Data),
		CanalPrincipal: canal,
		Reemitido:      reemitido,
	})
}

// registrarManifestacao monta e grava o registro final, melhor-esforço
func (h *ProtocoloHandler) registrarManifestacao(estado models.EstadoFormulario, protocolo models.Protocolo) {
	if h.armazenamento == nil {
		return
	}

	manifestacao := models.Manifestacao{
		ID:        uuid.NewString(),
		Tipo:      estado.Tipo,
		Categoria: estado.Categoria,
		Anonima:   estado.Anonima,
		Usuario:   estado.Usuario,
		Texto:     estado.Texto,
		Midia:     estado.Midia,
		CriadaEm:  time.Now(),
		Protocolo: protocolo.Completo,
	}

	if err := h.armazenamento.SalvarManifestacao(manifestacao); err != nil {
		log.Printf("Falha ao gravar registro da manifestação %s: %v", manifestacao.ID, err)
	}
}

// ConsultarProtocolo godoc
// @Summary Valida e decompõe um número de protocolo
// @Description Strings fora do formato DF-YYYYMMDD-SSSSS-TC resultam em protocolo inválido, nunca em erro interno
// @Tags protocolos
// @Produce json
// @Param numero path string true "Número do protocolo"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/protocolos/{numero} [get]
func (h *ProtocoloHandler) ConsultarProtocolo(c *gin.Context) {
	numero := c.Param("numero")

	protocolo, ok := protocol.Analisar(numero)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"valido": false,
			"error":  "Não é um protocolo válido",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valido":        true,
		"protocolo":     protocolo,
		"data_exibicao": protocol.FormatarDataExibicao(protocolo.Data),
	})
}

// Comprovante godoc
// @Summary Gera o comprovante da manifestação
// @Description Disponível após a emissão do protocolo, nos formatos html, markdown e texto
// @Tags protocolos
// @Produce json
// @Param id path string true "ID da sessão"
// @Param formato query string false "Formato: html, markdown ou texto" default(html)
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/comprovante [get]
func (h *ProtocoloHandler) Comprovante(c *gin.Context) {
	sessao, ok := h.sessoes.Obter(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sessão não encontrada"})
		return
	}

	protocolo, emitido := sessao.Protocolo()
	if !emitido {
		c.JSON(http.StatusNotFound, gin.H{"error": "Protocolo ainda não emitido para esta sessão"})
		return
	}

	estado := sessao.Wizard.Estado()

	switch c.DefaultQuery("formato", "html") {
	case "markdown":
		c.JSON(http.StatusOK, gin.H{"formato": "markdown", "conteudo": services.ComprovanteMarkdown(estado, protocolo)})
	case "texto":
		c.JSON(http.StatusOK, gin.H{"formato": "texto", "conteudo": services.ComprovanteTexto(estado, protocolo)})
	default:
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, services.ComprovanteHTML(estado, protocolo))
	}
}
