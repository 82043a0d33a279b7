package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/storage"
)

// HealthHandler gerencia os endpoints de health check
type HealthHandler struct {
	armazenamento *storage.Store
}

// NewHealthHandler cria um novo handler de health check
func NewHealthHandler(armazenamento *storage.Store) *HealthHandler {
	return &HealthHandler{
		armazenamento: armazenamento,
	}
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Verifica se a aplicação está viva (sem checagem de dependências externas)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	// Liveness apenas confirma que o app está rodando
	// Sem checagens de dependências externas
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description Verifica se a aplicação está pronta para receber tráfego (valida o armazenamento local)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	// O fluxo do assistente funciona sem armazenamento; a checagem só
	// reprova quando o banco foi aberto e parou de responder
	if h.armazenamento == nil {
		response.Checks["armazenamento"] = "desabilitado"
	} else if err := h.armazenamento.Ping(ctx); err != nil {
		response.Checks["armazenamento"] = "failed"
		response.Status = "not_ready"
		response.Error = "Armazenamento local não disponível"
	} else {
		response.Checks["armazenamento"] = "ok"
	}

	statusCode := http.StatusOK
	if response.Status == "not_ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Health godoc
// @Summary Comprehensive health check endpoint
// @Description Verifica a saúde completa da aplicação (para monitoramento externo de uptime)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	if h.armazenamento == nil {
		response.Checks["armazenamento"] = "desabilitado"
	} else if err := h.armazenamento.Ping(ctx); err != nil {
		response.Checks["armazenamento"] = "failed"
		response.Status = "unhealthy"
		response.Error = "Falha na checagem do armazenamento local"
	} else {
		response.Checks["armazenamento"] = "ok"
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}
