package wizard

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
)

// RascunhoStore é o recorte do armazenamento que o gerenciador de sessões usa
// para persistir rascunhos por sessão
type RascunhoStore interface {
	SalvarRascunho(sessaoID string, rascunho models.RascunhoFormulario) error
	CarregarRascunho(sessaoID string) (models.RascunhoFormulario, bool, error)
	LimparRascunho(sessaoID string) error
}

// persistenciaSessao adapta o RascunhoStore ao contrato de Persistencia de um
// wizard individual
type persistenciaSessao struct {
	sessaoID string
	store    RascunhoStore
}

func (p *persistenciaSessao) Salvar(r models.RascunhoFormulario) error {
	return p.store.SalvarRascunho(p.sessaoID, r)
}

func (p *persistenciaSessao) Carregar() (models.RascunhoFormulario, bool, error) {
	return p.store.CarregarRascunho(p.sessaoID)
}

func (p *persistenciaSessao) Limpar() error {
	return p.store.LimparRascunho(p.sessaoID)
}

// Sessao agrupa um wizard com o protocolo emitido para aquela manifestação.
// O protocolo tem um único estado de transição: não-emitido -> emitido.
type Sessao struct {
	ID     string
	Wizard *Wizard

	mu        sync.Mutex
	protocolo *models.Protocolo
}

// EmitirProtocolo emite o protocolo da sessão no máximo uma vez. Chamadas
// subsequentes devolvem o protocolo já emitido, com reemitido=false na
// primeira emissão e true nas demais.
func (s *Sessao) EmitirProtocolo(emitir func(models.EstadoFormulario) (models.Protocolo, error)) (models.Protocolo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.protocolo != nil {
		return *s.protocolo, true, nil
	}

	protocolo, err := emitir(s.Wizard.Estado())
	if err != nil {
		return models.Protocolo{}, false, err
	}

	s.protocolo = &protocolo
	return protocolo, false, nil
}

// Protocolo devolve o protocolo já emitido para a sessão, se houver
func (s *Sessao) Protocolo() (models.Protocolo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.protocolo == nil {
		return models.Protocolo{}, false
	}
	return *s.protocolo, true
}

// LimparProtocolo descarta o protocolo emitido. Usado apenas pelo Reset, ao
// iniciar uma nova manifestação.
func (s *Sessao) LimparProtocolo() {
	s.mu.Lock()
	s.protocolo = nil
	s.mu.Unlock()
}

// Manager mantém as sessões ativas do wizard, indexadas por ID
type Manager struct {
	mu             sync.RWMutex
	sessoes        map[string]*Sessao
	store          RascunhoStore
	aoRemoverMidia func(models.ArquivoMidia)
}

// NewManager cria o gerenciador de sessões. O store pode ser nulo; nesse caso
// as sessões vivem só em memória.
func NewManager(store RascunhoStore) *Manager {
	return &Manager{
		sessoes: make(map[string]*Sessao),
		store:   store,
	}
}

// AoRemoverMidia registra o gancho de liberação de mídia instalado em cada
// sessão. Deve ser chamado na montagem da aplicação, antes de qualquer sessão
// ser criada ou restaurada.
func (m *Manager) AoRemoverMidia(liberar func(models.ArquivoMidia)) {
	m.mu.Lock()
	m.aoRemoverMidia = liberar
	m.mu.Unlock()
}

// Criar abre uma sessão nova com ID gerado
func (m *Manager) Criar() *Sessao {
	return m.materializar(uuid.NewString())
}

// Restaurar reabre uma sessão existente pelo ID. A sessão volta do rascunho
// persistido quando não está mais em memória; IDs sem sessão e sem rascunho
// resultam em erro.
func (m *Manager) Restaurar(id string) (*Sessao, error) {
	m.mu.RLock()
	sessao, existe := m.sessoes[id]
	m.mu.RUnlock()
	if existe {
		return sessao, nil
	}

	if m.store == nil {
		return nil, fmt.Errorf("sessão %s não encontrada", id)
	}
	_, temRascunho, err := m.store.CarregarRascunho(id)
	if err != nil {
		return nil, fmt.Errorf("restaurar sessão %s: %w", id, err)
	}
	if !temRascunho {
		return nil, fmt.Errorf("sessão %s não encontrada", id)
	}

	return m.materializar(id), nil
}

// Obter devolve a sessão pelo ID, restaurando do rascunho quando possível
func (m *Manager) Obter(id string) (*Sessao, bool) {
	sessao, err := m.Restaurar(id)
	if err != nil {
		return nil, false
	}
	return sessao, true
}

func (m *Manager) materializar(id string) *Sessao {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessao, existe := m.sessoes[id]; existe {
		return sessao
	}

	var persistencia Persistencia
	if m.store != nil {
		persistencia = &persistenciaSessao{sessaoID: id, store: m.store}
	}

	sessao := &Sessao{
		ID:     id,
		Wizard: New(persistencia),
	}
	if m.aoRemoverMidia != nil {
		sessao.Wizard.AoRemoverMidia(m.aoRemoverMidia)
	}
	m.sessoes[id] = sessao
	return sessao
}
