// Package wizard implementa a máquina de estados do formulário de
// manifestação: posse do estado, travas de avanço por etapa, erros de
// validação itemizados e a varredura de PII no caminho dos mutadores.
package wizard

import (
	"log"
	"sync"
	"unicode/utf8"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/pii"
)

// TamanhoMinimoRelato é o mínimo de caracteres do relato quando não há anexo
const TamanhoMinimoRelato = 20

// Persistencia é o contrato de snapshot durável do formulário.
// A escrita é melhor-esforço: falhas são registradas e nunca bloqueiam uma
// operação do wizard.
type Persistencia interface {
	Salvar(models.RascunhoFormulario) error
	Carregar() (models.RascunhoFormulario, bool, error)
	Limpar() error
}

// Observador recebe uma cópia do estado após cada mutação
type Observador func(models.EstadoFormulario)

// Wizard é o dono do estado do formulário. Todas as operações são síncronas e
// atômicas entre si; chamadas concorrentes são serializadas pelo mutex.
type Wizard struct {
	mu             sync.Mutex
	estado         models.EstadoFormulario
	entidades      []pii.Entidade
	persistencia   Persistencia
	observadores   []Observador
	aoRemoverMidia func(models.ArquivoMidia)
}

func estadoInicial() models.EstadoFormulario {
	return models.EstadoFormulario{
		EtapaAtual: models.EtapaRelato,
		Texto:      "",
		Midia:      []models.ArquivoMidia{},
	}
}

// New cria o wizard, restaurando o rascunho persistido quando houver.
// Mídia e flags de PII não são restauradas; se o rascunho volta anônimo e com
// texto, a varredura de PII roda de novo na hora.
func New(persistencia Persistencia) *Wizard {
	w := &Wizard{
		estado:       estadoInicial(),
		persistencia: persistencia,
	}

	if persistencia == nil {
		return w
	}

	rascunho, existe, err := persistencia.Carregar()
	if err != nil {
		log.Printf("Falha ao restaurar rascunho, iniciando sessão limpa: %v", err)
		return w
	}
	if !existe {
		return w
	}

	if models.IndiceEtapa(rascunho.EtapaAtual) >= 0 {
		w.estado.EtapaAtual = rascunho.EtapaAtual
	}
	w.estado.Tipo = rascunho.Tipo
	w.estado.Categoria = rascunho.Categoria
	w.estado.Anonima = rascunho.Anonima
	w.estado.Texto = rascunho.Texto
	w.estado.Usuario = rascunho.Usuario
	w.varrerPII()

	return w
}

// Assinar registra um observador notificado após cada mutação
func (w *Wizard) Assinar(obs Observador) {
	w.mu.Lock()
	w.observadores = append(w.observadores, obs)
	w.mu.Unlock()
}

// AoRemoverMidia registra o gancho de liberação de recursos de preview,
// chamado quando um anexo sai da lista
func (w *Wizard) AoRemoverMidia(liberar func(models.ArquivoMidia)) {
	w.mu.Lock()
	w.aoRemoverMidia = liberar
	w.mu.Unlock()
}

// Estado retorna uma cópia do estado atual
func (w *Wizard) Estado() models.EstadoFormulario {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copiarEstado()
}

func (w *Wizard) copiarEstado() models.EstadoFormulario {
	copia := w.estado
	copia.Midia = make([]models.ArquivoMidia, len(w.estado.Midia))
	copy(copia.Midia, w.estado.Midia)
	if w.estado.Usuario != nil {
		usuario := *w.estado.Usuario
		copia.Usuario = &usuario
	}
	return copia
}

// DefinirEtapa salta para uma etapa arbitrária, sem validar travas de avanço
// (usado nos atalhos "editar resposta anterior"). Etapas desconhecidas são
// ignoradas para manter o invariante de etapa sempre válida.
func (w *Wizard) DefinirEtapa(etapa models.EtapaWizard) {
	if models.IndiceEtapa(etapa) < 0 {
		return
	}
	w.mutar(func() {
		w.estado.EtapaAtual = etapa
	})
}

// Avancar move para a etapa seguinte na ordem fixa; sem efeito na etapa
// final. Não valida por conta própria: quem chama deve consultar
// PodeAvancar antes.
func (w *Wizard) Avancar() {
	w.mutar(func() {
		indice := models.IndiceEtapa(w.estado.EtapaAtual)
		if indice < len(models.EtapasOrdenadas)-1 {
			w.estado.EtapaAtual = models.EtapasOrdenadas[indice+1]
		}
	})
}

// Voltar move para a etapa anterior; sem efeito na primeira etapa
func (w *Wizard) Voltar() {
	w.mutar(func() {
		indice := models.IndiceEtapa(w.estado.EtapaAtual)
		if indice > 0 {
			w.estado.EtapaAtual = models.EtapasOrdenadas[indice-1]
		}
	})
}

// PodeAvancar avalia a trava da etapa atual sobre o estado corrente
func (w *Wizard) PodeAvancar() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.podeAvancar()
}

func (w *Wizard) podeAvancar() bool {
	switch w.estado.EtapaAtual {
	case models.EtapaRelato:
		return utf8.RuneCountInString(w.estado.Texto) >= TamanhoMinimoRelato || len(w.estado.Midia) > 0
	case models.EtapaAssunto:
		return w.estado.Tipo != "" && w.estado.Categoria != ""
	case models.EtapaResumo:
		return true
	case models.EtapaIdentificacao:
		if w.estado.Anonima {
			return true
		}
		return w.estado.Usuario != nil && w.estado.Usuario.Nome != "" && w.estado.Usuario.Email != ""
	case models.EtapaAnexos:
		return true
	case models.EtapaProtocolo:
		return false
	}
	return false
}

// PodeVoltar indica se há etapa anterior
func (w *Wizard) PodeVoltar() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return models.IndiceEtapa(w.estado.EtapaAtual) > 0
}

// ErrosValidacao itemiza por que o avanço está bloqueado na etapa atual,
// com as mesmas regras de PodeAvancar. A lista é vazia se e somente se
// PodeAvancar é verdadeiro.
func (w *Wizard) ErrosValidacao() []models.ErroValidacao {
	w.mu.Lock()
	defer w.mu.Unlock()

	var erros []models.ErroValidacao

	switch w.estado.EtapaAtual {
	case models.EtapaRelato:
		if utf8.RuneCountInString(w.estado.Texto) < TamanhoMinimoRelato && len(w.estado.Midia) == 0 {
			erros = append(erros, models.ErroValidacao{
				Campo:      "relato",
				Mensagem:   "Descreva sua manifestação (mínimo 20 caracteres) ou anexe um arquivo",
				ElementoID: "relato-textarea",
			})
		}

	case models.EtapaAssunto:
		if w.estado.Tipo == "" {
			erros = append(erros, models.ErroValidacao{
				Campo:      "tipo",
				Mensagem:   "Selecione o tipo da manifestação",
				ElementoID: "tipo-select",
			})
		}
		if w.estado.Categoria == "" {
			erros = append(erros, models.ErroValidacao{
				Campo:      "categoria",
				Mensagem:   "Selecione a área/assunto",
				ElementoID: "categoria-select",
			})
		}

	case models.EtapaIdentificacao:
		if !w.estado.Anonima {
			if w.estado.Usuario == nil || w.estado.Usuario.Nome == "" {
				erros = append(erros, models.ErroValidacao{
					Campo:      "nome",
					Mensagem:   "Nome é obrigatório (mínimo 3 caracteres)",
					ElementoID: "input-nome",
				})
			}
			if w.estado.Usuario == nil || w.estado.Usuario.Email == "" {
				erros = append(erros, models.ErroValidacao{
					Campo:      "email",
					Mensagem:   "E-mail é obrigatório",
					ElementoID: "input-email",
				})
			}
		}

	case models.EtapaProtocolo:
		// A etapa final não tem avanço; o bloqueio também é itemizado para
		// manter a lista vazia se e somente se PodeAvancar é verdadeiro
		erros = append(erros, models.ErroValidacao{
			Campo:      "etapa",
			Mensagem:   "A manifestação já foi concluída; inicie uma nova manifestação para continuar",
			ElementoID: "btn-nova-manifestacao",
		})
	}

	return erros
}

// DefinirTipo define o tipo da manifestação
func (w *Wizard) DefinirTipo(tipo models.TipoManifestacao) {
	w.mutar(func() {
		w.estado.Tipo = tipo
	})
}

// DefinirCategoria define a categoria da manifestação
func (w *Wizard) DefinirCategoria(categoria models.CategoriaManifestacao) {
	w.mutar(func() {
		w.estado.Categoria = categoria
	})
}

// DefinirAnonimato liga/desliga o anonimato. Ao ligar com relato preenchido,
// a varredura de PII roda imediatamente, no próprio mutador.
func (w *Wizard) DefinirAnonimato(anonima bool) {
	w.mutar(func() {
		w.estado.Anonima = anonima
		w.varrerPII()
	})
}

// DefinirTexto atualiza o relato; com anonimato ligado, a varredura de PII
// roda de novo a cada mudança
func (w *Wizard) DefinirTexto(texto string) {
	w.mutar(func() {
		w.estado.Texto = texto
		w.varrerPII()
	})
}

// DefinirUsuario define (ou limpa, com nil) os dados de identificação
func (w *Wizard) DefinirUsuario(usuario *models.DadosUsuario) {
	w.mutar(func() {
		if usuario != nil {
			copia := *usuario
			w.estado.Usuario = &copia
		} else {
			w.estado.Usuario = nil
		}
	})
}

// varrerPII refaz a detecção sobre o relato. Só roda com anonimato ligado e
// texto não vazio; o resultado é consultivo e nunca impede o avanço.
func (w *Wizard) varrerPII() {
	if !w.estado.Anonima || w.estado.Texto == "" {
		return
	}
	w.entidades = pii.Detectar(w.estado.Texto)
	w.estado.TemPII = len(w.entidades) > 0
}

// EntidadesDetectadas retorna as entidades da última varredura de PII
func (w *Wizard) EntidadesDetectadas() []pii.Entidade {
	w.mu.Lock()
	defer w.mu.Unlock()
	entidades := make([]pii.Entidade, len(w.entidades))
	copy(entidades, w.entidades)
	return entidades
}

// DefinirTemPII permite ao colaborador de apresentação marcar o resultado de
// uma varredura conduzida por ele
func (w *Wizard) DefinirTemPII(temPII bool) {
	w.mutar(func() {
		w.estado.TemPII = temPII
	})
}

// DispensarAvisoPII marca o aviso como reconhecido. A dispensa vale para a
// sessão inteira: o aviso não volta nem se o anonimato for desligado e
// religado (política de perguntar uma única vez).
func (w *Wizard) DispensarAvisoPII() {
	w.mutar(func() {
		w.estado.AvisoPIIDispensado = true
	})
}

// DeveExibirAvisoPII indica se o modal de aviso deve ser apresentado
func (w *Wizard) DeveExibirAvisoPII() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.estado.Anonima && w.estado.TemPII && !w.estado.AvisoPIIDispensado
}

// AdicionarMidia anexa o arquivo ao fim da lista, preservando a ordem de
// inserção. Não há deduplicação por conteúdo; a unicidade do ID é
// responsabilidade de quem captura/envia.
func (w *Wizard) AdicionarMidia(arquivo models.ArquivoMidia) {
	w.mutar(func() {
		w.estado.Midia = append(w.estado.Midia, arquivo)
	})
}

// RemoverMidia remove o anexo com o ID informado e entrega a entrada ao
// gancho de liberação de preview. ID inexistente é um no-op.
func (w *Wizard) RemoverMidia(id string) {
	var removido *models.ArquivoMidia
	var liberar func(models.ArquivoMidia)

	w.mutar(func() {
		liberar = w.aoRemoverMidia
		for i, m := range w.estado.Midia {
			if m.ID == id {
				arquivo := m
				removido = &arquivo
				w.estado.Midia = append(w.estado.Midia[:i], w.estado.Midia[i+1:]...)
				break
			}
		}
	})

	if removido != nil && liberar != nil {
		liberar(*removido)
	}
}

// AtualizarMidia aplica o patch ao anexo com o ID informado; ID inexistente
// é um no-op
func (w *Wizard) AtualizarMidia(id string, patch models.AtualizacaoMidia) {
	w.mutar(func() {
		for i := range w.estado.Midia {
			if w.estado.Midia[i].ID == id {
				patch.Aplicar(&w.estado.Midia[i])
				return
			}
		}
	})
}

// Reset restaura todos os campos aos padrões de uma sessão nova e descarta o
// rascunho persistido. Deve ser chamado quando o cidadão inicia uma nova
// manifestação após a etapa final.
func (w *Wizard) Reset() {
	w.mu.Lock()
	w.estado = estadoInicial()
	w.entidades = nil
	if w.persistencia != nil {
		if err := w.persistencia.Limpar(); err != nil {
			log.Printf("Falha ao limpar rascunho persistido: %v", err)
		}
	}
	estado := w.copiarEstado()
	observadores := w.observadores
	w.mu.Unlock()

	for _, obs := range observadores {
		obs(estado)
	}
}

// mutar aplica a mutação sob o mutex, persiste o recorte durável
// (melhor-esforço) e notifica os observadores já fora da seção crítica
func (w *Wizard) mutar(fn func()) {
	w.mu.Lock()
	fn()
	if w.persistencia != nil {
		rascunho := models.RascunhoFormulario{
			EtapaAtual: w.estado.EtapaAtual,
			Tipo:       w.estado.Tipo,
			Categoria:  w.estado.Categoria,
			Anonima:    w.estado.Anonima,
			Texto:      w.estado.Texto,
			Usuario:    w.estado.Usuario,
		}
		if err := w.persistencia.Salvar(rascunho); err != nil {
			log.Printf("Falha ao persistir rascunho (seguindo em memória): %v", err)
		}
	}
	estado := w.copiarEstado()
	observadores := w.observadores
	w.mu.Unlock()

	for _, obs := range observadores {
		obs(estado)
	}
}
