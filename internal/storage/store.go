// Package storage implementa o armazenamento local durável do wizard:
// rascunhos de formulário, contadores diários de protocolo, registros de
// manifestação concluída e blobs de mídia.
//
// O armazenamento é melhor-esforço: falhas de escrita são reportadas ao
// chamador, que segue operando em memória. A política de escrita é
// last-write-wins, sem coordenação entre processos.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
	_ "modernc.org/sqlite"
)

// Store é o armazenamento local baseado em SQLite
type Store struct {
	db *sql.DB
}

// Open abre (criando se preciso) o banco local e aplica o schema
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("caminho do armazenamento é obrigatório")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir banco local: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("verificar banco local: %w", err)
	}

	s := &Store{db: db}
	if err := s.aplicarSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("aplicar schema: %w", err)
	}
	return s, nil
}

// Close libera a conexão com o banco
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifica a disponibilidade do armazenamento
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("armazenamento não configurado")
	}
	return s.db.PingContext(ctx)
}

func (s *Store) aplicarSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rascunhos (
		sessao_id TEXT PRIMARY KEY,
		payload   TEXT NOT NULL,
		salvo_em  INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS contadores (
		dia   TEXT PRIMARY KEY,
		valor INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS manifestacoes (
		id        TEXT PRIMARY KEY,
		payload   TEXT NOT NULL,
		criada_em INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS midia (
		id       TEXT PRIMARY KEY,
		conteudo BLOB NOT NULL
	);`

	_, err := s.db.Exec(schema)
	return err
}

// SalvarRascunho grava o recorte persistível do estado do formulário.
// Apenas os seis campos do contrato de persistência entram no snapshot.
func (s *Store) SalvarRascunho(sessaoID string, rascunho models.RascunhoFormulario) error {
	payload, err := json.Marshal(rascunho)
	if err != nil {
		return fmt.Errorf("serializar rascunho: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO rascunhos (sessao_id, payload, salvo_em) VALUES (?, ?, ?)
		 ON CONFLICT(sessao_id) DO UPDATE SET payload = excluded.payload, salvo_em = excluded.salvo_em`,
		sessaoID, string(payload), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("salvar rascunho: %w", err)
	}
	return nil
}

// CarregarRascunho recupera o snapshot da sessão, se existir
func (s *Store) CarregarRascunho(sessaoID string) (models.RascunhoFormulario, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM rascunhos WHERE sessao_id = ?`, sessaoID).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.RascunhoFormulario{}, false, nil
	}
	if err != nil {
		return models.RascunhoFormulario{}, false, fmt.Errorf("carregar rascunho: %w", err)
	}

	var rascunho models.RascunhoFormulario
	if err := json.Unmarshal([]byte(payload), &rascunho); err != nil {
		return models.RascunhoFormulario{}, false, fmt.Errorf("decodificar rascunho: %w", err)
	}
	return rascunho, true, nil
}

// LimparRascunho remove o snapshot da sessão
func (s *Store) LimparRascunho(sessaoID string) error {
	if _, err := s.db.Exec(`DELETE FROM rascunhos WHERE sessao_id = ?`, sessaoID); err != nil {
		return fmt.Errorf("limpar rascunho: %w", err)
	}
	return nil
}

// ProximaSequencia lê, incrementa e persiste o contador diário de protocolos.
//
// A transação garante atomicidade apenas dentro deste armazenamento; não há
// coordenação entre máquinas ou instâncias distintas. A premissa de escritor
// único é parte do contrato do alocador local.
func (s *Store) ProximaSequencia(dia string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("iniciar transação: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var atual int
	err = tx.QueryRow(`SELECT valor FROM contadores WHERE dia = ?`, dia).Scan(&atual)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("ler contador do dia %s: %w", dia, err)
	}

	proximo := atual + 1
	_, err = tx.Exec(
		`INSERT INTO contadores (dia, valor) VALUES (?, ?)
		 ON CONFLICT(dia) DO UPDATE SET valor = excluded.valor`,
		dia, proximo,
	)
	if err != nil {
		return 0, fmt.Errorf("gravar contador do dia %s: %w", dia, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("confirmar contador do dia %s: %w", dia, err)
	}
	return proximo, nil
}

// SalvarManifestacao grava o registro final de uma manifestação concluída
func (s *Store) SalvarManifestacao(m models.Manifestacao) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("serializar manifestação: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO manifestacoes (id, payload, criada_em) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		m.ID, string(payload), m.CriadaEm.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("salvar manifestação: %w", err)
	}
	return nil
}

// BuscarManifestacao recupera uma manifestação pelo ID
func (s *Store) BuscarManifestacao(id string) (models.Manifestacao, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM manifestacoes WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.Manifestacao{}, false, nil
	}
	if err != nil {
		return models.Manifestacao{}, false, fmt.Errorf("buscar manifestação: %w", err)
	}

	var m models.Manifestacao
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return models.Manifestacao{}, false, fmt.Errorf("decodificar manifestação: %w", err)
	}
	return m, true, nil
}

// ListarManifestacoes retorna as manifestações gravadas, mais recentes primeiro
func (s *Store) ListarManifestacoes() ([]models.Manifestacao, error) {
	rows, err := s.db.Query(`SELECT payload FROM manifestacoes ORDER BY criada_em DESC`)
	if err != nil {
		return nil, fmt.Errorf("listar manifestações: %w", err)
	}
	defer rows.Close()

	var manifestacoes []models.Manifestacao
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("ler manifestação: %w", err)
		}
		var m models.Manifestacao
		if err := json.Unmarshal([]byte(payload), &m); err != nil {
			return nil, fmt.Errorf("decodificar manifestação: %w", err)
		}
		manifestacoes = append(manifestacoes, m)
	}
	return manifestacoes, rows.Err()
}

// RemoverManifestacao apaga o registro de uma manifestação
func (s *Store) RemoverManifestacao(id string) error {
	if _, err := s.db.Exec(`DELETE FROM manifestacoes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remover manifestação: %w", err)
	}
	return nil
}

// SalvarMidia grava o conteúdo bruto de um anexo
func (s *Store) SalvarMidia(id string, conteudo []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO midia (id, conteudo) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET conteudo = excluded.conteudo`,
		id, conteudo,
	)
	if err != nil {
		return fmt.Errorf("salvar mídia: %w", err)
	}
	return nil
}

// BuscarMidia recupera o conteúdo bruto de um anexo
func (s *Store) BuscarMidia(id string) ([]byte, bool, error) {
	var conteudo []byte
	err := s.db.QueryRow(`SELECT conteudo FROM midia WHERE id = ?`, id).Scan(&conteudo)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("buscar mídia: %w", err)
	}
	return conteudo, true, nil
}

// RemoverMidia apaga o conteúdo de um anexo
func (s *Store) RemoverMidia(id string) error {
	if _, err := s.db.Exec(`DELETE FROM midia WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remover mídia: %w", err)
	}
	return nil
}

// RemoverMidiaDaManifestacao apaga os anexos de uma manifestação inteira
func (s *Store) RemoverMidiaDaManifestacao(ids []string) error {
	for _, id := range ids {
		if err := s.RemoverMidia(id); err != nil {
			return err
		}
	}
	return nil
}
