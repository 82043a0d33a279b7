// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta do servidor HTTP (default: 8080)
//
// ## Armazenamento local
//   - STORAGE_PATH: Caminho do banco SQLite local (default: participa-df.db)
//   - STORAGE_DISABLED: Desativa o armazenamento durável; o wizard opera só em memória (default: false)
//
// ## Wizard
//   - MAX_TEXTO_RELATO: Teto de caracteres do relato imposto pela interface (default: 5000)
//   - MAX_UPLOAD_SIZE_MB: Tamanho máximo de anexo em MB (default: 25)
//
// ## Tracing
//   - TRACING_ENABLED: Habilita o exportador OTLP (default: false)
//   - TRACING_ENDPOINT: Endpoint do coletor OTLP gRPC (default: localhost:4317)
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// Armazenamento local
	StoragePath     string
	StorageDisabled bool

	// Limites do formulário
	MaxTextoRelato  int
	MaxUploadSizeMB int

	// Tracing
	TracingEnabled  bool
	TracingEndpoint string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		StoragePath:     getEnv("STORAGE_PATH", "participa-df.db"),
		StorageDisabled: getEnv("STORAGE_DISABLED", "false") == "true",

		MaxTextoRelato:  getEnvInt("MAX_TEXTO_RELATO", 5000),
		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 25),

		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
