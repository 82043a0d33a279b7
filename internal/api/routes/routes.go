package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/api/handlers"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/config"
	middlewares "github.com/prefeitura-df/app-participa-ouvidoria/internal/middleware"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/protocol"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/storage"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/wizard"
)

func SetupRouter(cfg *config.Config, sessoes *wizard.Manager, protocolos *protocol.Service, armazenamento *storage.Store) *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(middlewares.RequestTiming())

	wizardHandler := handlers.NewWizardHandler(sessoes, armazenamento, cfg)
	protocoloHandler := handlers.NewProtocoloHandler(sessoes, protocolos, armazenamento)
	manifestacaoHandler := handlers.NewManifestacaoHandler(armazenamento)
	healthHandler := handlers.NewHealthHandler(armazenamento)

	api := r.Group("/api/v1")
	{
		api.POST("/sessoes", wizardHandler.CriarSessao)
		api.GET("/sessoes/:id", wizardHandler.ObterSessao)
		api.POST("/sessoes/:id/avancar", wizardHandler.Avancar)
		api.POST("/sessoes/:id/voltar", wizardHandler.Voltar)
		api.PUT("/sessoes/:id/etapa", wizardHandler.DefinirEtapa)
		api.PUT("/sessoes/:id/relato", wizardHandler.DefinirRelato)
		api.PUT("/sessoes/:id/assunto", wizardHandler.DefinirAssunto)
		api.PUT("/sessoes/:id/identificacao", wizardHandler.DefinirIdentificacao)
		api.POST("/sessoes/:id/pii/dispensar", wizardHandler.DispensarAvisoPII)
		api.POST("/sessoes/:id/reset", wizardHandler.Reset)

		api.POST("/sessoes/:id/anexos", wizardHandler.AdicionarAnexo)
		api.PATCH("/sessoes/:id/anexos/:midiaId", wizardHandler.AtualizarAnexo)
		api.DELETE("/sessoes/:id/anexos/:midiaId", wizardHandler.RemoverAnexo)

		api.POST("/sessoes/:id/protocolo", protocoloHandler.EmitirProtocolo)
		api.GET("/sessoes/:id/comprovante", protocoloHandler.Comprovante)
		api.GET("/protocolos/:numero", protocoloHandler.ConsultarProtocolo)

		api.GET("/manifestacoes", manifestacaoHandler.Listar)
		api.GET("/manifestacoes/:id", manifestacaoHandler.Buscar)
		api.DELETE("/manifestacoes/:id", manifestacaoHandler.Remover)
	}

	r.GET("/health", healthHandler.Health)
	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
