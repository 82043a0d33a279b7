// Package pii implementa a varredura determinística de dados pessoais no
// texto do relato, usada quando o cidadão pede anonimato.
//
// A detecção é feita por casamento de padrões, não por NLP. O padrão de nome
// em particular é uma heurística com alta taxa de falsos positivos: qualquer
// sequência de duas ou mais palavras capitalizadas (incluindo nomes de
// lugares e inícios de frase) é tratada como possível nome. O resultado é
// sempre consultivo; a decisão de prosseguir é do cidadão.
package pii

import "regexp"

// TipoEntidade classifica o dado sensível encontrado
type TipoEntidade string

const (
	EntidadeCPF      TipoEntidade = "CPF"
	EntidadeTelefone TipoEntidade = "PHONE"
	EntidadeEmail    TipoEntidade = "EMAIL"
	EntidadeNome     TipoEntidade = "NAME"
)

// Entidade é uma ocorrência de dado sensível no texto
type Entidade struct {
	Tipo  TipoEntidade `json:"tipo"`
	Valor string       `json:"valor"`
}

// padraoPII associa um tipo de entidade ao seu padrão de casamento.
// A ordem da lista define a ordem de varredura e, portanto, a ordem do
// resultado.
type padraoPII struct {
	tipo   TipoEntidade
	padrao *regexp.Regexp
}

var padroes = []padraoPII{
	{EntidadeCPF, regexp.MustCompile(`\b\d{3}\.?\d{3}\.?\d{3}-?\d{2}\b`)},
	{EntidadeTelefone, regexp.MustCompile(`\(?\d{2}\)?\s?9?\d{4}-?\d{4}`)},
	{EntidadeEmail, regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)},
	{EntidadeNome, regexp.MustCompile(`\b[A-Z][a-zà-ú]+\s+[A-Z][a-zà-ú]+(?:\s+[A-Z][a-zà-ú]+)*`)},
}

// Detectar varre o texto e retorna as entidades sensíveis encontradas, na
// ordem em que cada padrão as encontrou. Valores repetidos são suprimidos:
// a primeira ocorrência vence, mesmo entre padrões diferentes.
//
// A função é pura e idempotente; exibir o aviso e marcar o estado do wizard
// é responsabilidade de quem chama.
func Detectar(texto string) []Entidade {
	if texto == "" {
		return nil
	}

	var entidades []Entidade
	vistos := make(map[string]bool)

	for _, p := range padroes {
		for _, valor := range p.padrao.FindAllString(texto, -1) {
			if vistos[valor] {
				continue
			}
			vistos[valor] = true
			entidades = append(entidades, Entidade{Tipo: p.tipo, Valor: valor})
		}
	}

	return entidades
}
