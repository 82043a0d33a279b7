package main

import (
	"log"

	_ "github.com/prefeitura-df/app-participa-ouvidoria/docs"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/api/routes"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/config"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/observability"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/protocol"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/storage"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/wizard"
)

// @title           Participa DF API
// @version         1.0
// @description     API do assistente de manifestações da ouvidoria: fluxo em etapas com validação por etapa, triagem de dados pessoais e emissão de protocolo
// @termsOfService  http://swagger.io/terms/

// @contact.name   Governo do Distrito Federal
// @contact.url    https://participa.df.gov.br
// @contact.email  ouvidoria@df.gov.br

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080

func main() {

	cfg := config.LoadConfig()

	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	var armazenamento *storage.Store
	if cfg.StorageDisabled {
		log.Println("Armazenamento local desabilitado; rascunhos e histórico ficam só em memória")
	} else {
		var err error
		armazenamento, err = storage.Open(cfg.StoragePath)
		if err != nil {
			// O assistente continua funcional sem persistência
			log.Printf("Falha ao abrir armazenamento local em %s: %v", cfg.StoragePath, err)
			armazenamento = nil
		}
	}

	var rascunhos wizard.RascunhoStore
	var alocador protocol.AlocadorSequencia = protocol.NewAlocadorMemoria()
	if armazenamento != nil {
		rascunhos = armazenamento
		alocador = armazenamento
	}

	sessoes := wizard.NewManager(rascunhos)
	protocolos := protocol.NewService(alocador)

	r := routes.SetupRouter(cfg, sessoes, protocolos, armazenamento)

	log.Printf("Servidor iniciado na porta %s", cfg.ServerPort)
	err := r.Run(":" + cfg.ServerPort)
	if err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}
}
