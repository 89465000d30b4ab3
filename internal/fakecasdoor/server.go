// Package fakecasdoor is an in-memory stand-in for the Casdoor REST API.
// It implements enough of the service for SDK tests to exercise request
// shaping and round trips without a running Casdoor.
package fakecasdoor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
	"github.com/aussiebroadwan/casdoor-go/pkg/cryptox"
	"github.com/aussiebroadwan/casdoor-go/pkg/jwtx"
	"github.com/aussiebroadwan/casdoor-go/pkg/slogx"
)

// affected and unaffected are the data values of mutation responses.
const (
	affected   = "Affected"
	unaffected = "Unaffected"
)

// Options configures a Server.
type Options struct {
	ClientID     string
	ClientSecret string
	Organization string
	Application  string

	// TokenTTL is the lifetime of issued access tokens. Zero means one hour.
	TokenTTL time.Duration

	Logger *slog.Logger
}

// Request is a recorded API call.
type Request struct {
	Method string
	Action string // path below /api, e.g. "add-role"
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the request body into v.
func (r Request) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Form returns the fields of a multipart or urlencoded body.
func (r Request) Form() (url.Values, error) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	if mediaType == "application/x-www-form-urlencoded" {
		return url.ParseQuery(string(r.Body))
	}

	form, err := multipart.NewReader(bytes.NewReader(r.Body), params["boundary"]).ReadForm(32 << 20)
	if err != nil {
		return nil, err
	}
	defer form.RemoveAll()
	return url.Values(form.Value), nil
}

// Server is the fake service. It is an http.Handler; mount it with
// httptest.NewServer.
type Server struct {
	opts   Options
	store  *store
	mux    *http.ServeMux
	logger *slog.Logger

	signer  *jwtx.RS256Signer
	certPEM string

	mu       sync.Mutex
	requests []Request
	codes    map[string]authCode
	bearer   map[string]bool
	outbox   []any
	mfa      map[string]*mfaState
	files    map[string][]byte
	policies map[string][]casdoorsdk.Policy
}

// New builds a Server with a fresh RSA key and self-signed certificate.
func New(opts Options) (*Server, error) {
	if opts.TokenTTL == 0 {
		opts.TokenTTL = time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slogx.Discard()
	}

	keyPEM, err := cryptox.GenerateRSAKey(2048)
	if err != nil {
		return nil, err
	}
	certPEM, err := cryptox.SelfSignedCertificate(keyPEM, "cert-built-in", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	signer, err := jwtx.NewSignerRS256("cert-built-in", keyPEM)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:     opts,
		store:    newStore(),
		mux:      http.NewServeMux(),
		logger:   opts.Logger,
		signer:   signer,
		certPEM:  string(certPEM),
		codes:    map[string]authCode{},
		bearer:   map[string]bool{},
		mfa:      map[string]*mfaState{},
		files:    map[string][]byte{},
		policies: map[string][]casdoorsdk.Policy{},
	}

	if err := s.store.Create("application", record{
		"owner":        "admin",
		"name":         opts.Application,
		"organization": opts.Organization,
		"clientId":     opts.ClientID,
		"clientSecret": opts.ClientSecret,
	}); err != nil {
		return nil, err
	}

	s.routes()
	return s, nil
}

// Certificate returns the PEM certificate tokens are signed with.
func (s *Server) Certificate() string { return s.certPEM }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slogx.Handler(s.logger)(s.mux).ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/login/oauth/access_token", s.handleAccessToken)
	s.mux.HandleFunc("POST /api/login/oauth/refresh_token", s.handleRefreshToken)
	s.mux.Handle("POST /api/login/oauth/introspect", s.authenticated(s.handleIntrospect))

	s.mux.Handle("POST /api/enforce", s.authenticated(s.handleEnforce))
	s.mux.Handle("POST /api/batch-enforce", s.authenticated(s.handleBatchEnforce))
	s.mux.Handle("GET /api/get-policies", s.authenticated(s.handleGetPolicies))
	s.mux.Handle("POST /api/add-policy", s.authenticated(s.handleAddPolicy))
	s.mux.Handle("POST /api/remove-policy", s.authenticated(s.handleRemovePolicy))
	s.mux.Handle("POST /api/update-policy", s.authenticated(s.handleUpdatePolicy))

	s.mux.Handle("GET /api/get-user-count", s.authenticated(s.handleUserCount))
	s.mux.Handle("POST /api/set-password", s.authenticated(s.handleSetPassword))
	s.mux.Handle("GET /api/get-session", s.authenticated(s.handleGetSession))
	s.mux.Handle("GET /api/get-resources", s.authenticated(s.handleGetResources))
	s.mux.Handle("POST /api/upload-resource", s.authenticated(s.handleUploadResource))

	s.mux.Handle("POST /api/mfa/setup/initiate", s.authenticated(s.handleMfaInitiate))
	s.mux.Handle("POST /api/mfa/setup/verify", s.authenticated(s.handleMfaVerify))
	s.mux.Handle("POST /api/mfa/setup/enable", s.authenticated(s.handleMfaEnable))
	s.mux.Handle("POST /api/set-preferred-mfa", s.authenticated(s.handleSetPreferredMfa))
	s.mux.Handle("POST /api/delete-mfa", s.authenticated(s.handleDeleteMfa))

	s.mux.Handle("POST /api/send-email", s.authenticated(s.handleSendEmail))
	s.mux.Handle("POST /api/send-sms", s.authenticated(s.handleSendSms))

	s.mux.Handle("GET /api/{action}", s.authenticated(s.handleEntityGet))
	s.mux.Handle("POST /api/{action}", s.authenticated(s.handleEntityMutation))

	s.mux.HandleFunc("GET /files/{path...}", s.handleFile)
}

// ============================================================================
// Recording
// ============================================================================

// record reads the body (restoring it for the handler) and appends the
// request to the log.
func (s *Server) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Action: strings.TrimPrefix(r.URL.Path, "/api/"),
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
}

// Requests returns every recorded request in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request for action.
func (s *Server) LastRequest(action string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Action == action {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

// Outbox returns the emails and SMS messages accepted so far.
func (s *Server) Outbox() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]any(nil), s.outbox...)
}

// ============================================================================
// Authentication
// ============================================================================

// authenticated records the request and accepts Basic client credentials,
// query credentials or a bearer token issued by this server.
func (s *Server) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.record(r)

		if !s.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, envelope{Status: "error", Msg: "unauthorized operation"})
			return
		}
		next(w, r)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	if id, secret, ok := r.BasicAuth(); ok {
		return s.clientMatches(id, secret)
	}

	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.bearer[token]
	}

	q := r.URL.Query()
	return s.clientMatches(q.Get("clientId"), q.Get("clientSecret"))
}

func (s *Server) clientMatches(id, secret string) bool {
	return id != "" && id == s.opts.ClientID && secret == s.opts.ClientSecret
}

// ============================================================================
// Responses
// ============================================================================

// envelope is the service's standard response shape.
type envelope struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data"`
	Data2  any    `json:"data2,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "ok", Data: data})
}

func writeOK2(w http.ResponseWriter, data, data2 any) {
	writeJSON(w, http.StatusOK, envelope{Status: "ok", Data: data, Data2: data2})
}

// writeFailure reports an application error the way the service does: HTTP
// 200 with status "error".
func writeFailure(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, envelope{Status: "error", Msg: msg})
}

func writeAffected(w http.ResponseWriter, ok bool) {
	if ok {
		writeOK(w, affected)
		return
	}
	writeOK(w, unaffected)
}

func decodeJSONBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
