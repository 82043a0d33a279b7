package constants

import "github.com/prefeitura-df/app-participa-ouvidoria/internal/models"

// TiposValidos contém todos os tipos de manifestação aceitos pelo sistema
var TiposValidos = []models.TipoManifestacao{
	models.TipoDenuncia,
	models.TipoReclamacao,
	models.TipoSugestao,
	models.TipoElogio,
	models.TipoSolicitacao,
	models.TipoInformacao,
}

// CategoriasValidas contém todas as categorias disponíveis no sistema
var CategoriasValidas = []models.CategoriaManifestacao{
	models.CategoriaSaude,
	models.CategoriaEducacao,
	models.CategoriaSeguranca,
	models.CategoriaTransporte,
	models.CategoriaAssistenciaSocial,
	models.CategoriaMeioAmbiente,
	models.CategoriaInfraestrutura,
	models.CategoriaCultura,
	models.CategoriaEsporte,
	models.CategoriaOutros,
}

// RotulosTipo são os rótulos em português para os tipos de manifestação
var RotulosTipo = map[models.TipoManifestacao]string{
	models.TipoDenuncia:    "Denúncia",
	models.TipoReclamacao:  "Reclamação",
	models.TipoSugestao:    "Sugestão",
	models.TipoElogio:      "Elogio",
	models.TipoSolicitacao: "Solicitação",
	models.TipoInformacao:  "Pedido de Informação",
}

// DescricoesTipo descrevem cada tipo de manifestação para a tela de seleção
var DescricoesTipo = map[models.TipoManifestacao]string{
	models.TipoDenuncia:    "Comunicar irregularidades ou condutas ilegais",
	models.TipoReclamacao:  "Relatar insatisfação com serviço público",
	models.TipoSugestao:    "Propor melhorias nos serviços",
	models.TipoElogio:      "Reconhecer um bom atendimento",
	models.TipoSolicitacao: "Solicitar um serviço ou providência",
	models.TipoInformacao:  "Solicitar informações sobre serviços",
}

// RotulosCategoria são os rótulos em português para as categorias
var RotulosCategoria = map[models.CategoriaManifestacao]string{
	models.CategoriaSaude:             "Saúde",
	models.CategoriaEducacao:          "Educação",
	models.CategoriaSeguranca:         "Segurança Pública",
	models.CategoriaTransporte:        "Transporte",
	models.CategoriaAssistenciaSocial: "Assistência Social",
	models.CategoriaMeioAmbiente:      "Meio Ambiente",
	models.CategoriaInfraestrutura:    "Infraestrutura",
	models.CategoriaCultura:           "Cultura",
	models.CategoriaEsporte:           "Esporte e Lazer",
	models.CategoriaOutros:            "Outros",
}

// RotulosCanal são os rótulos para os canais de entrada
var RotulosCanal = map[models.CanalEntrada]string{
	models.CanalTexto:  "Texto",
	models.CanalAudio:  "Áudio",
	models.CanalImagem: "Imagem",
	models.CanalVideo:  "Vídeo",
}

// RotulosEtapa são os rótulos das etapas do wizard
var RotulosEtapa = map[models.EtapaWizard]string{
	models.EtapaRelato:        "Relato",
	models.EtapaAssunto:       "Assunto",
	models.EtapaResumo:        "Resumo",
	models.EtapaIdentificacao: "Identificação",
	models.EtapaAnexos:        "Anexos",
	models.EtapaProtocolo:     "Protocolo",
}

// TipoValido verifica se o tipo informado pertence ao conjunto aceito
func TipoValido(tipo models.TipoManifestacao) bool {
	for _, t := range TiposValidos {
		if t == tipo {
			return true
		}
	}
	return false
}

// CategoriaValida verifica se a categoria informada pertence ao conjunto aceito
func CategoriaValida(categoria models.CategoriaManifestacao) bool {
	for _, c := range CategoriasValidas {
		if c == categoria {
			return true
		}
	}
	return false
}
