package models

import "time"

// TipoManifestacao identifica a natureza da manifestação registrada pelo cidadão
type TipoManifestacao string

const (
	TipoDenuncia    TipoManifestacao = "denuncia"
	TipoReclamacao  TipoManifestacao = "reclamacao"
	TipoSugestao    TipoManifestacao = "sugestao"
	TipoElogio      TipoManifestacao = "elogio"
	TipoSolicitacao TipoManifestacao = "solicitacao"
	TipoInformacao  TipoManifestacao = "informacao"
)

// CategoriaManifestacao é a área/assunto da manifestação
type CategoriaManifestacao string

const (
	CategoriaSaude             CategoriaManifestacao = "saude"
	CategoriaEducacao          CategoriaManifestacao = "educacao"
	CategoriaSeguranca         CategoriaManifestacao = "seguranca"
	CategoriaTransporte        CategoriaManifestacao = "transporte"
	CategoriaAssistenciaSocial CategoriaManifestacao = "assistencia_social"
	CategoriaMeioAmbiente      CategoriaManifestacao = "meio_ambiente"
	CategoriaInfraestrutura    CategoriaManifestacao = "infraestrutura"
	CategoriaCultura           CategoriaManifestacao = "cultura"
	CategoriaEsporte           CategoriaManifestacao = "esporte"
	CategoriaOutros            CategoriaManifestacao = "outros"
)

// CanalEntrada é o meio do conteúdo principal da manifestação (multicanalidade)
type CanalEntrada string

const (
	CanalTexto  CanalEntrada = "text"
	CanalAudio  CanalEntrada = "audio"
	CanalImagem CanalEntrada = "image"
	CanalVideo  CanalEntrada = "video"
)

// EtapaWizard é uma etapa do fluxo de registro
type EtapaWizard string

const (
	EtapaRelato        EtapaWizard = "relato"
	EtapaAssunto       EtapaWizard = "assunto"
	EtapaResumo        EtapaWizard = "resumo"
	EtapaIdentificacao EtapaWizard = "identificacao"
	EtapaAnexos        EtapaWizard = "anexos"
	EtapaProtocolo     EtapaWizard = "protocolo"
)

// EtapasOrdenadas define a ordem fixa das etapas do wizard.
// A navegação avança/retrocede sempre por índices adjacentes desta lista.
var EtapasOrdenadas = []EtapaWizard{
	EtapaRelato,
	EtapaAssunto,
	EtapaResumo,
	EtapaIdentificacao,
	EtapaAnexos,
	EtapaProtocolo,
}

// IndiceEtapa retorna a posição da etapa na ordem fixa, ou -1 se desconhecida
func IndiceEtapa(etapa EtapaWizard) int {
	for i, e := range EtapasOrdenadas {
		if e == etapa {
			return i
		}
	}
	return -1
}

// StatusMidia é o ciclo de vida de um anexo
type StatusMidia string

const (
	MidiaOciosa      StatusMidia = "idle"
	MidiaGravando    StatusMidia = "recording"
	MidiaProcessando StatusMidia = "processing"
	MidiaPronta      StatusMidia = "ready"
	MidiaErro        StatusMidia = "error"
)

// ArquivoMidia representa um arquivo anexado à manifestação.
// A lista de mídia do formulário é a dona exclusiva destas entradas; a ordem
// de inserção é a ordem de exibição.
type ArquivoMidia struct {
	ID              string       `json:"id"`
	Tipo            CanalEntrada `json:"tipo"`
	Conteudo        []byte       `json:"-"`
	PreviewURL      string       `json:"preview_url,omitempty"`
	Thumbnail       string       `json:"thumbnail,omitempty"`
	Nome            string       `json:"nome"`
	Tamanho         int64        `json:"tamanho"`
	MimeType        string       `json:"mime_type"`
	DuracaoSegundos *float64     `json:"duracao_segundos,omitempty"`
	Status          StatusMidia  `json:"status"`
	Erro            string       `json:"erro,omitempty"`
}

// AtualizacaoMidia é o patch aplicável a um ArquivoMidia existente.
// Campos nulos não são tocados pelo merge.
type AtualizacaoMidia struct {
	Nome            *string      `json:"nome,omitempty"`
	Tamanho         *int64       `json:"tamanho,omitempty"`
	MimeType        *string      `json:"mime_type,omitempty"`
	PreviewURL      *string      `json:"preview_url,omitempty"`
	Thumbnail       *string      `json:"thumbnail,omitempty"`
	DuracaoSegundos *float64     `json:"duracao_segundos,omitempty"`
	Status          *StatusMidia `json:"status,omitempty"`
	Erro            *string      `json:"erro,omitempty"`
}

// Aplicar faz o merge do patch sobre o arquivo
func (a AtualizacaoMidia) Aplicar(m *ArquivoMidia) {
	if a.Nome != nil {
		m.Nome = *a.Nome
	}
	if a.Tamanho != nil {
		m.Tamanho = *a.Tamanho
	}
	if a.MimeType != nil {
		m.MimeType = *a.MimeType
	}
	if a.PreviewURL != nil {
		m.PreviewURL = *a.PreviewURL
	}
	if a.Thumbnail != nil {
		m.Thumbnail = *a.Thumbnail
	}
	if a.DuracaoSegundos != nil {
		m.DuracaoSegundos = a.DuracaoSegundos
	}
	if a.Status != nil {
		m.Status = *a.Status
	}
	if a.Erro != nil {
		m.Erro = *a.Erro
	}
}

// DadosUsuario são os dados do cidadão quando a manifestação é identificada.
// Nome e e-mail são obrigatórios apenas quando a manifestação não é anônima;
// CPF e telefone são sempre opcionais.
type DadosUsuario struct {
	Nome     string `json:"nome" validate:"required,min=3"`
	CPF      string `json:"cpf,omitempty" validate:"omitempty,cpf"`
	Email    string `json:"email" validate:"required,email"`
	Telefone string `json:"telefone,omitempty"`
}

// EstadoFormulario é o agregado mutável único do wizard
type EstadoFormulario struct {
	EtapaAtual         EtapaWizard           `json:"etapa_atual"`
	Tipo               TipoManifestacao      `json:"tipo,omitempty"`
	Categoria          CategoriaManifestacao `json:"categoria,omitempty"`
	Anonima            bool                  `json:"anonima"`
	Texto              string                `json:"texto"`
	Midia              []ArquivoMidia        `json:"midia"`
	Usuario            *DadosUsuario         `json:"usuario,omitempty"`
	TemPII             bool                  `json:"tem_pii"`
	AvisoPIIDispensado bool                  `json:"aviso_pii_dispensado"`
}

// RascunhoFormulario é o recorte do estado persistido entre sessões.
// Mídia e flags de PII ficam de fora: anexos são grandes/transientes e a
// detecção de PII é refeita a cada sessão.
type RascunhoFormulario struct {
	EtapaAtual EtapaWizard           `json:"etapa_atual"`
	Tipo       TipoManifestacao      `json:"tipo,omitempty"`
	Categoria  CategoriaManifestacao `json:"categoria,omitempty"`
	Anonima    bool                  `json:"anonima"`
	Texto      string                `json:"texto"`
	Usuario    *DadosUsuario         `json:"usuario,omitempty"`
}

// ErroValidacao descreve por que o avanço de etapa está bloqueado
type ErroValidacao struct {
	Campo      string `json:"campo"`
	Mensagem   string `json:"mensagem"`
	ElementoID string `json:"elemento_id,omitempty"`
}

// Protocolo é o código de acompanhamento emitido na etapa final.
// Formato: DF-YYYYMMDD-SSSSS-TC, imutável após a emissão.
type Protocolo struct {
	Completo   string `json:"completo"`
	Data       string `json:"data"`
	Sequencia  string `json:"sequencia"`
	CodigoTipo string `json:"codigo_tipo"`
}

// Manifestacao é o registro final montado na emissão do protocolo
type Manifestacao struct {
	ID        string                `json:"id"`
	Tipo      TipoManifestacao      `json:"tipo"`
	Categoria CategoriaManifestacao `json:"categoria"`
	Anonima   bool                  `json:"anonima"`
	Usuario   *DadosUsuario         `json:"usuario,omitempty"`
	Texto     string                `json:"texto,omitempty"`
	Midia     []ArquivoMidia        `json:"midia,omitempty"`
	CriadaEm  time.Time             `json:"criada_em"`
	Protocolo string                `json:"protocolo,omitempty"`
}
