package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/storage"
)

// ManifestacaoHandler consulta os registros locais de manifestações
// concluídas. Os registros são um histórico do dispositivo, não um backend
// de registro.
type ManifestacaoHandler struct {
	armazenamento *storage.Store
}

func NewManifestacaoHandler(armazenamento *storage.Store) *ManifestacaoHandler {
	return &ManifestacaoHandler{armazenamento: armazenamento}
}

func (h *ManifestacaoHandler) semArmazenamento(c *gin.Context) bool {
	if h.armazenamento == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Armazenamento local indisponível"})
		return true
	}
	return false
}

// Listar godoc
// @Summary Lista as manifestações concluídas neste dispositivo
// @Tags manifestacoes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/manifestacoes [get]
func (h *ManifestacaoHandler) Listar(c *gin.Context) {
	if h.semArmazenamento(c) {
		return
	}

	manifestacoes, err := h.armazenamento.ListarManifestacoes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar manifestações: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":         len(manifestacoes),
		"manifestacoes": manifestacoes,
	})
}

// Buscar godoc
// @Summary Busca uma manifestação pelo ID
// @Tags manifestacoes
// @Produce json
// @Param id path string true "ID da manifestação"
// @Success 200 {object} models.Manifestacao
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/manifestacoes/{id} [get]
func (h *ManifestacaoHandler) Buscar(c *gin.Context) {
	if h.semArmazenamento(c) {
		return
	}

	manifestacao, existe, err := h.armazenamento.BuscarManifestacao(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar manifestação: " + err.Error()})
		return
	}
	if !existe {
		c.JSON(http.StatusNotFound, gin.H{"error": "Manifestação não encontrada"})
		return
	}

	c.JSON(http.StatusOK, manifestacao)
}

// Remover godoc
// @Summary Remove uma manifestação do histórico local
// @Description Apaga o registro e os conteúdos de mídia associados
// @Tags manifestacoes
// @Produce json
// @Param id path string true "ID da manifestação"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/manifestacoes/{id} [delete]
func (h *ManifestacaoHandler) Remover(c *gin.Context) {
	if h.semArmazenamento(c) {
		return
	}

	manifestacao, existe, err := h.armazenamento.BuscarManifestacao(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar manifestação: " + err.Error()})
		return
	}
	if !existe {
		c.JSON(http.StatusNotFound, gin.H{"error": "Manifestação não encontrada"})
		return
	}

	ids := make([]string, 0, len(manifestacao.Midia))
	for _, m := range manifestacao.Midia {
		ids = append(ids, m.ID)
	}
	if err := h.armazenamento.RemoverMidiaDaManifestacao(ids); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover mídia: " + err.Error()})
		return
	}

	if err := h.armazenamento.RemoverManifestacao(manifestacao.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover manifestação: " + err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
