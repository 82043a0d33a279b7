package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-df/app-participa-ouvidoria/internal/config"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/models"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/protocol"
	"github.com/prefeitura-df/app-participa-ouvidoria/internal/wizard"
)

func routerTeste(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{MaxTextoRelato: 5000, MaxUploadSizeMB: 25}
	sessoes := wizard.NewManager(nil)
	relogio := func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) }
	protocolos := protocol.NewServiceComRelogio(protocol.NewAlocadorMemoria(), relogio)

	wizardHandler := NewWizardHandler(sessoes, nil, cfg)
	protocoloHandler := NewProtocoloHandler(sessoes, protocolos, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/sessoes", wizardHandler.CriarSessao)
	api.GET("/sessoes/:id", wizardHandler.ObterSessao)
	api.POST("/sessoes/:id/avancar", wizardHandler.Avancar)
	api.PUT("/sessoes/:id/relato", wizardHandler.DefinirRelato)
	api.PUT("/sessoes/:id/assunto", wizardHandler.DefinirAssunto)
	api.PUT("/sessoes/:id/identificacao", wizardHandler.DefinirIdentificacao)
	api.POST("/sessoes/:id/protocolo", protocoloHandler.EmitirProtocolo)
	api.GET("/protocolos/:numero", protocoloHandler.ConsultarProtocolo)

	return r
}

func requisicao(t *testing.T, r *gin.Engine, metodo, caminho, corpo string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(metodo, caminho, strings.NewReader(corpo))
	if corpo != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodificarSessao(t *testing.T, w *httptest.ResponseRecorder) EstadoSessaoResponse {
	t.Helper()

	var resp EstadoSessaoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta não decodifica: %v\n%s", err, w.Body.String())
	}
	return resp
}

func TestCriarSessao(t *testing.T) {
	r := routerTeste(t)

	w := requisicao(t, r, http.MethodPost, "/api/v1/sessoes", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	resp := decodificarSessao(t, w)
	if resp.SessaoID == "" {
		t.Error("sessão criada sem ID")
	}
	if resp.Estado.EtapaAtual != models.EtapaRelato {
		t.Errorf("EtapaAtual = %q, want %q", resp.Estado.EtapaAtual, models.EtapaRelato)
	}
	if resp.PodeAvancar {
		t.Error("sessão nova já libera o avanço")
	}
}

func TestAvancarBloqueadoRetornaFeedback(t *testing.T) {
	r := routerTeste(t)

	criada := decodificarSessao(t, requisicao(t, r, http.MethodPost, "/api/v1/sessoes", ""))

	w := requisicao(t, r, http.MethodPost, "/api/v1/sessoes/"+criada.SessaoID+"/avancar", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	resp := decodificarSessao(t, w)
	if resp.Estado.EtapaAtual != models.EtapaRelato {
		t.Errorf("avanço bloqueado mudou de etapa: %q", resp.Estado.EtapaAtual)
	}
	if len(resp.Erros) == 0 {
		t.Error("resposta 422 sem erros itemizados")
	}
	if resp.Feedback == nil || resp.Feedback.Mensagem == "" {
		t.Error("resposta 422 sem feedback de apresentação")
	}
}

func TestFluxoAteProtocolo(t *testing.T) {
	r := routerTeste(t)

	criada := decodificarSessao(t, requisicao(t, r, http.MethodPost, "/api/v1/sessoes", ""))
	base := "/api/v1/sessoes/" + criada.SessaoID

	// Emissão fora da etapa final é recusada
	if w := requisicao(t, r, http.MethodPost, base+"/protocolo", ""); w.Code != http.StatusConflict {
		t.Fatalf("emissão precoce: status = %d, want %d", w.Code, http.StatusConflict)
	}

	requisicao(t, r, http.MethodPut, base+"/relato", `{"texto":"a praça da quadra 304 está completamente abandonada"}`)
	requisicao(t, r, http.MethodPost, base+"/avancar", "")
	requisicao(t, r, http.MethodPut, base+"/assunto", `{"tipo":"Reclamação","categoria":"Meio Ambiente"}`)
	requisicao(t, r, http.MethodPost, base+"/avancar", "")
	requisicao(t, r, http.MethodPost, base+"/avancar", "")
	requisicao(t, r, http.MethodPut, base+"/identificacao", `{"anonima":true}`)
	requisicao(t, r, http.MethodPost, base+"/avancar", "")

	w := requisicao(t, r, http.MethodPost, base+"/avancar", "")
	resp := decodificarSessao(t, w)
	if resp.Estado.EtapaAtual != models.EtapaProtocolo {
		t.Fatalf("EtapaAtual = %q, want %q", resp.Estado.EtapaAtual, models.EtapaProtocolo)
	}

	// Primeira emissão
	w = requisicao(t, r, http.MethodPost, base+"/protocolo", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("emissão: status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	var emitido ProtocoloResponse
	if err := json.Unmarshal(w.Body.Bytes(), &emitido); err != nil {
		t.Fatalf("resposta não decodifica: %v", err)
	}
	if emitido.Protocolo.Completo != "DF-20250315-00001-RCT" {
		t.Errorf("protocolo = %q, want %q", emitido.Protocolo.Completo, "DF-20250315-00001-RCT")
	}
	if emitido.Reemitido {
		t.Error("primeira emissão marcada como reemissão")
	}

	// Reemissão devolve o mesmo protocolo
	w = requisicao(t, r, http.MethodPost, base+"/protocolo", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reemissão: status = %d, want %d", w.Code, http.StatusOK)
	}
	var reemitido ProtocoloResponse
	if err := json.Unmarshal(w.Body.Bytes(), &reemitido); err != nil {
		t.Fatalf("resposta não decodifica: %v", err)
	}
	if !reemitido.Reemitido || reemitido.Protocolo.Completo != emitido.Protocolo.Completo {
		t.Errorf("reemissão divergente: %+v", reemitido)
	}

	// O protocolo emitido é consultável
	w = requisicao(t, r, http.MethodGet, "/api/v1/protocolos/"+emitido.Protocolo.Completo, "")
	if w.Code != http.StatusOK {
		t.Fatalf("consulta: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestDefinirIdentificacaoValidaUsuario(t *testing.T) {
	r := routerTeste(t)

	criada := decodificarSessao(t, requisicao(t, r, http.MethodPost, "/api/v1/sessoes", ""))
	caminho := "/api/v1/sessoes/" + criada.SessaoID + "/identificacao"

	tests := []struct {
		name   string
		corpo  string
		status int
	}{
		{
			name:   "Usuário válido",
			corpo:  `{"anonima":false,"usuario":{"nome":"Ana Lima","email":"ana@exemplo.com"}}`,
			status: http.StatusOK,
		},
		{
			name:   "Usuário com CPF formatado",
			corpo:  `{"anonima":false,"usuario":{"nome":"Ana Lima","email":"ana@exemplo.com","cpf":"123.456.789-01"}}`,
			status: http.StatusOK,
		},
		{
			name:   "Nome curto",
			corpo:  `{"anonima":false,"usuario":{"nome":"Al","email":"ana@exemplo.com"}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "E-mail inválido",
			corpo:  `{"anonima":false,"usuario":{"nome":"Ana Lima","email":"nao-e-email"}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "CPF malformado",
			corpo:  `{"anonima":false,"usuario":{"nome":"Ana Lima","email":"ana@exemplo.com","cpf":"12345"}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "Anonimato dispensa os dados",
			corpo:  `{"anonima":true}`,
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := requisicao(t, r, http.MethodPut, caminho, tt.corpo)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestConsultarProtocoloInvalido(t *testing.T) {
	r := routerTeste(t)

	w := requisicao(t, r, http.MethodGet, "/api/v1/protocolos/lixo-qualquer", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta não decodifica: %v", err)
	}
	if valido, _ := resp["valido"].(bool); valido {
		t.Error("protocolo malformado marcado como válido")
	}
}

func TestSessaoInexistente(t *testing.T) {
	r := routerTeste(t)

	w := requisicao(t, r, http.MethodGet, "/api/v1/sessoes/nao-existe", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
