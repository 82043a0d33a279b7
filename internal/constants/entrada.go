package constants

import (
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/utils"
)

// CategoriaPorEntrada resolve uma categoria a partir do valor interno
// ("meio_ambiente") ou do rótulo em português ("Meio Ambiente"), aceitando
// variações de acentuação e caixa
func CategoriaPorEntrada(entrada string) (models.CategoriaManifestacao, bool) {
	candidata := models.CategoriaManifestacao(entrada)
	if CategoriaValida(candidata) {
		return candidata, true
	}

	normalizada := utils.NormalizarCategoria(entrada)
	if CategoriaValida(models.CategoriaManifestacao(normalizada)) {
		return models.CategoriaManifestacao(normalizada), true
	}

	for categoria, rotulo := range RotulosCategoria {
		if utils.NormalizarCategoria(rotulo) == normalizada {
			return categoria, true
		}
	}
	return "", false
}

// TipoPorEntrada resolve um tipo a partir do valor interno ("reclamacao") ou
// do rótulo em português ("Reclamação")
func TipoPorEntrada(entrada string) (models.TipoManifestacao, bool) {
	candidato := models.TipoManifestacao(entrada)
	if TipoValido(candidato) {
		return candidato, true
	}

	normalizada := utils.NormalizarCategoria(entrada)
	if TipoValido(models.TipoManifestacao(normalizada)) {
		return models.TipoManifestacao(normalizada), true
	}

	for tipo, rotulo := range RotulosTipo {
		if utils.NormalizarCategoria(rotulo) == normalizada {
			return tipo, true
		}
	}
	return "", false
}
