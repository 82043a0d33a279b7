package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/config"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/constants"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/pii"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/services"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/storage"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/utils"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/wizard"
)

// WizardHandler expõe a máquina de estados do wizard como colaborador de
// apresentação: toda decisão de trava e toda mensagem de validação vem do
// núcleo, nunca do handler.
type WizardHandler struct {
	sessoes       *wizard.Manager
	armazenamento *storage.Store
	validador     *validator.Validate
	maxTexto      int
	maxUpload     int64
}

func NewWizardHandler(sessoes *wizard.Manager, armazenamento *storage.Store, cfg *config.Config) *WizardHandler {
	validador := validator.New()
	registrarValidacaoCPF(validador)

	if armazenamento != nil {
		sessoes.AoRemoverMidia(func(arquivo models.ArquivoMidia) {
			if err := armazenamento.RemoverMidia(arquivo.ID); err != nil {
				log.Printf("Falha ao remover mídia %s do armazenamento: %v", arquivo.ID, err)
			}
		})
	}

	return &WizardHandler{
		sessoes:       sessoes,
		armazenamento: armazenamento,
		validador:     validador,
		maxTexto:      cfg.MaxTextoRelato,
		maxUpload:     int64(cfg.MaxUploadSizeMB) << 20,
	}
}

// EstadoSessaoResponse é a visão da sessão consumida pelas telas do wizard
type EstadoSessaoResponse struct {
	SessaoID       string                      `json:"sessao_id"`
	Estado         models.EstadoFormulario     `json:"estado"`
	RotuloEtapa    string                      `json:"rotulo_etapa"`
	PodeAvancar    bool                        `json:"pode_avancar"`
	PodeVoltar     bool                        `json:"pode_voltar"`
	Erros          []models.ErroValidacao      `json:"erros"`
	Feedback       *services.FeedbackValidacao `json:"feedback,omitempty"`
	ExibirAvisoPII bool                        `json:"exibir_aviso_pii"`
	EntidadesPII   []pii.Entidade              `json:"entidades_pii,omitempty"`
}

func (h *WizardHandler) visaoSessao(sessao *wizard.Sessao) EstadoSessaoResponse {
	w := sessao.Wizard
	estado := w.Estado()
	erros := w.ErrosValidacao()

	return EstadoSessaoResponse{
		SessaoID:       sessao.ID,
		Estado:         estado,
		RotuloEtapa:    constants.RotulosEtapa[estado.EtapaAtual],
		PodeAvancar:    w.PodeAvancar(),
		PodeVoltar:     w.PodeVoltar(),
		Erros:          erros,
		Feedback:       services.MontarFeedback(erros),
		ExibirAvisoPII: w.DeveExibirAvisoPII(),
		EntidadesPII:   w.EntidadesDetectadas(),
	}
}

// obterSessao resolve a sessão do path
func (h *WizardHandler) obterSessao(c *gin.Context) (*wizard.Sessao, bool) {
	sessao, ok := h.sessoes.Obter(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sessão não encontrada"})
		return nil, false
	}
	return sessao, true
}

type criarSessaoRequest struct {
	SessaoID string `json:"sessao_id,omitempty"`
}

// CriarSessao godoc
// @Summary Cria ou restaura uma sessão do wizard
// @Description Abre uma sessão nova, ou restaura uma sessão existente a partir do rascunho persistido quando sessao_id é informado
// @Tags sessoes
// @Accept json
// @Produce json
// @Param sessao body criarSessaoRequest false "ID de sessão para restaurar"
// @Success 201 {object} EstadoSessaoResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes [post]
func (h *WizardHandler) CriarSessao(c *gin.Context) {
	var req criarSessaoRequest
	_ = c.ShouldBindJSON(&req)

	var sessao *wizard.Sessao
	if req.SessaoID != "" {
		restaurada, err := h.sessoes.Restaurar(req.SessaoID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sessão não encontrada para restauração"})
			return
		}
		sessao = restaurada
	} else {
		sessao = h.sessoes.Criar()
	}

	c.JSON(http.StatusCreated, h.visaoSessao(sessao))
}

// ObterSessao godoc
// @Summary Consulta o estado da sessão
// @Description Retorna o estado do formulário, travas de navegação, erros de validação e o pacote de feedback da etapa atual
// @Tags sessoes
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id} [get]
func (h *WizardHandler) ObterSessao(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

// Avancar godoc
// @Summary Avança para a próxima etapa
// @Description Avança quando a trava da etapa atual permite; caso contrário retorna os erros itemizados e o feedback de apresentação
// @Tags sessoes
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} EstadoSessaoResponse
// @Router /api/v1/sessoes/{id}/avancar [post]
func (h *WizardHandler) Avancar(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	if !sessao.Wizard.PodeAvancar() {
		c.JSON(http.StatusUnprocessableEntity, h.visaoSessao(sessao))
		return
	}

	sessao.Wizard.Avancar()
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

// Voltar godoc
// @Summary Retorna para a etapa anterior
// @Tags sessoes
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/voltar [post]
func (h *WizardHandler) Voltar(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	sessao.Wizard.Voltar()
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

type definirEtapaRequest struct {
	Etapa models.EtapaWizard `json:"etapa" binding:"required"`
}

// DefinirEtapa godoc
// @Summary Salta para uma etapa arbitrária
// @Description Usado nos atalhos "editar resposta anterior"; não valida travas de avanço
// @Tags sessoes
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param etapa body definirEtapaRequest true "Etapa de destino"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/etapa [put]
func (h *WizardHandler) DefinirEtapa(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	var req definirEtapaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}
	if models.IndiceEtapa(req.Etapa) < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Etapa desconhecida"})
		return
	}

	sessao.Wizard.DefinirEtapa(req.Etapa)
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

type definirRelatoRequest struct {
	Texto string `json:"texto"`
}

// DefinirRelato godoc
// @Summary Atualiza o texto do relato
// @Description Com anonimato ligado, a varredura de PII roda de novo a cada mudança de texto
// @Tags sessoes
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param relato body definirRelatoRequest true "Texto do relato"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/relato [put]
func (h *WizardHandler) DefinirRelato(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	var req definirRelatoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}
	if utf8.RuneCountInString(req.Texto) > h.maxTexto {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Relato excede o tamanho máximo permitido"})
		return
	}

	sessao.Wizard.DefinirTexto(req.Texto)
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

type definirAssuntoRequest struct {
	Tipo      string `json:"tipo,omitempty"`
	Categoria string `json:"categoria,omitempty"`
}

// DefinirAssunto godoc
// @Summary Define o tipo e a categoria da manifestação
// @Description Aceita o valor interno ("reclamacao") ou o rótulo em português ("Reclamação")
// @Tags sessoes
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param assunto body definirAssuntoRequest true "Tipo e/ou categoria"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/assunto [put]
func (h *WizardHandler) DefinirAssunto(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	var req definirAssuntoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	if req.Tipo != "" {
		tipo, valido := constants.TipoPorEntrada(req.Tipo)
		if !valido {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de manifestação desconhecido"})
			return
		}
		sessao.Wizard.DefinirTipo(tipo)
	}

	if req.Categoria != "" {
		categoria, valida := constants.CategoriaPorEntrada(req.Categoria)
		if !valida {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria desconhecida"})
			return
		}
		sessao.Wizard.DefinirCategoria(categoria)
	}

	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

type definirIdentificacaoRequest struct {
	Anonima bool                 `json:"anonima"`
	Usuario *models.DadosUsuario `json:"usuario,omitempty"`
}

// DefinirIdentificacao godoc
// @Summary Define o anonimato e os dados do cidadão
// @Description Com anonimato ligado os dados do usuário são descartados e a varredura de PII roda sobre o relato. Com anonimato desligado, os dados passam pela validação de formato (nome, e-mail, CPF opcional).
// @Tags sessoes
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param identificacao body definirIdentificacaoRequest true "Anonimato e dados do cidadão"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/identificacao [put]
func (h *WizardHandler) DefinirIdentificacao(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	var req definirIdentificacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	if req.Anonima {
		sessao.Wizard.DefinirAnonimato(true)
		sessao.Wizard.DefinirUsuario(nil)
		c.JSON(http.StatusOK, h.visaoSessao(sessao))
		return
	}

	sessao.Wizard.DefinirAnonimato(false)

	if req.Usuario != nil {
		if err := h.validador.Struct(req.Usuario); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Validação falhou",
				"erros": errosValidacaoUsuario(err),
			})
			return
		}
		sessao.Wizard.DefinirUsuario(req.Usuario)
	}

	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

// DispensarAvisoPII godoc
// @Summary Dispensa o aviso de dados pessoais
// @Description A dispensa vale para a sessão inteira: o aviso não é reexibido mesmo que o anonimato seja desligado e religado
// @Tags sessoes
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/pii/dispensar [post]
func (h *WizardHandler) DispensarAvisoPII(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	sessao.Wizard.DispensarAvisoPII()
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

// Reset godoc
// @Summary Inicia uma nova manifestação
// @Description Restaura o formulário aos padrões, descarta o rascunho persistido e o protocolo emitido
// @Tags sessoes
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/reset [post]
func (h *WizardHandler) Reset(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	sessao.Wizard.Reset()
	sessao.LimparProtocolo()
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

// AdicionarAnexo godoc
// @Summary Anexa um arquivo de mídia
// @Description Recebe o arquivo já finalizado (gravação concluída, compressão feita pelo cliente); o núcleo nunca vê progresso parcial
// @Tags anexos
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID da sessão"
// @Param arquivo formData file true "Arquivo de mídia"
// @Param tipo formData string true "Canal do anexo: audio, image ou video"
// @Success 201 {object} models.ArquivoMidia
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/anexos [post]
func (h *WizardHandler) AdicionarAnexo(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	arquivoForm, err := c.FormFile("arquivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo é obrigatório"})
		return
	}
	if arquivoForm.Size > h.maxUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo excede o tamanho máximo permitido"})
		return
	}

	tipo := models.CanalEntrada(c.PostForm("tipo"))
	switch tipo {
	case models.CanalAudio, models.CanalImagem, models.CanalVideo:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de anexo desconhecido"})
		return
	}

	aberto, err := arquivoForm.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falha ao ler arquivo: " + err.Error()})
		return
	}
	defer aberto.Close()

	conteudo, err := io.ReadAll(aberto)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falha ao ler arquivo: " + err.Error()})
		return
	}

	arquivo := models.ArquivoMidia{
		ID:       uuid.NewString(),
		Tipo:     tipo,
		Conteudo: conteudo,
		Nome:     utils.NomeArquivoSeguro(arquivoForm.Filename),
		Tamanho:  arquivoForm.Size,
		MimeType: arquivoForm.Header.Get("Content-Type"),
		Status:   models.MidiaPronta,
	}

	if h.armazenamento != nil {
		if err := h.armazenamento.SalvarMidia(arquivo.ID, conteudo); err != nil {
			log.Printf("Falha ao gravar mídia %s no armazenamento (seguindo em memória): %v", arquivo.ID, err)
		}
	}

	sessao.Wizard.AdicionarMidia(arquivo)
	c.JSON(http.StatusCreated, arquivo)
}

// AtualizarAnexo godoc
// @Summary Aplica um patch a um anexo existente
// @Description Campos ausentes do patch não são tocados; ID inexistente é um no-op
// @Tags anexos
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Param midiaId path string true "ID do anexo"
// @Param patch body models.AtualizacaoMidia true "Campos a atualizar"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/anexos/{midiaId} [patch]
func (h *WizardHandler) AtualizarAnexo(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	var patch models.AtualizacaoMidia
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	sessao.Wizard.AtualizarMidia(c.Param("midiaId"), patch)
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

// RemoverAnexo godoc
// @Summary Remove um anexo
// @Description Remove a entrada da lista e libera o conteúdo associado; ID inexistente é um no-op
// @Tags anexos
// @Produce json
// @Param id path string true "ID da sessão"
// @Param midiaId path string true "ID do anexo"
// @Success 200 {object} EstadoSessaoResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/sessoes/{id}/anexos/{midiaId} [delete]
func (h *WizardHandler) RemoverAnexo(c *gin.Context) {
	sessao, ok := h.obterSessao(c)
	if !ok {
		return
	}

	sessao.Wizard.RemoverMidia(c.Param("midiaId"))
	c.JSON(http.StatusOK, h.visaoSessao(sessao))
}

var padraoCPF = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

// registrarValidacaoCPF adiciona a regra "cpf" ao validador: 11 dígitos com
// pontuação opcional. A verificação dos dígitos de controle fica com o
// backend de registro, fora deste escopo.
func registrarValidacaoCPF(validador *validator.Validate) {
	_ = validador.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return padraoCPF.MatchString(fl.Field().String())
	})
}

// errosValidacaoUsuario converte os erros do validador para o formato de
// erro de campo das telas
func errosValidacaoUsuario(err error) []models.ErroValidacao {
	var erros []models.ErroValidacao

	var invalidos validator.ValidationErrors
	if !errors.As(err, &invalidos) {
		return []models.ErroValidacao{{Campo: "usuario", Mensagem: "Dados do usuário inválidos"}}
	}

	for _, campo := range invalidos {
		nome := strings.ToLower(campo.Field())
		erros = append(erros, models.ErroValidacao{
			Campo:      nome,
			Mensagem:   mensagemCampoUsuario(campo),
			ElementoID: "input-" + nome,
		})
	}
	return erros
}

func mensagemCampoUsuario(campo validator.FieldError) string {
	switch campo.Field() {
	case "Nome":
		return "Nome é obrigatório (mínimo 3 caracteres)"
	case "Email":
		if campo.Tag() == "required" {
			return "E-mail é obrigatório"
		}
		return "E-mail inválido"
	case "CPF":
		return "CPF inválido"
	}
	return "Campo inválido"
}
