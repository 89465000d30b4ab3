package fakecasdoor

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
	"github.com/aussiebroadwan/casdoor-go/pkg/cryptox"
	"github.com/aussiebroadwan/casdoor-go/pkg/jwtx"
)

// authCode is an issued, not yet redeemed authorization code.
type authCode struct {
	userID    string
	challenge string
	expiresAt time.Time
}

// IssueCode simulates a completed browser sign-in of the user owner/name
// and returns the authorization code the service would redirect with.
// challenge is the S256 PKCE challenge and may be empty.
func (s *Server) IssueCode(owner, name, challenge string) (string, error) {
	id := owner + "/" + name
	if _, err := s.store.Get("user", id); err != nil {
		return "", err
	}

	code, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = authCode{userID: id, challenge: challenge, expiresAt: time.Now().Add(5 * time.Minute)}
	return code, nil
}

// oauthError writes an RFC 6749 error body. Like the service, it uses
// status 200.
func oauthError(w http.ResponseWriter, code, desc string) {
	writeJSON(w, http.StatusOK, casdoorsdk.OAuth2Error{Code: code, Description: desc})
}

// clientAuthenticated checks client credentials from the form or Basic auth.
func (s *Server) clientAuthenticated(r *http.Request) bool {
	id, secret := r.PostFormValue("client_id"), r.PostFormValue("client_secret")
	if id == "" {
		id, secret, _ = r.BasicAuth()
	}
	return id == s.opts.ClientID &&
		subtle.ConstantTimeCompare([]byte(secret), []byte(s.opts.ClientSecret)) == 1
}

func (s *Server) handleAccessToken(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if err := r.ParseForm(); err != nil {
		oauthError(w, "invalid_request", err.Error())
		return
	}
	if !s.clientAuthenticated(r) {
		oauthError(w, "invalid_client", "client authentication failed")
		return
	}

	switch r.PostFormValue("grant_type") {
	case "authorization_code":
		s.redeemCode(w, r)
	case "client_credentials":
		user := casdoorsdk.User{Owner: "admin", Name: s.opts.Application, Type: "application"}
		s.writeToken(w, r, user)
	case "refresh_token":
		s.refresh(w, r)
	default:
		oauthError(w, "unsupported_grant_type", "grant_type is not supported")
	}
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if err := r.ParseForm(); err != nil {
		oauthError(w, "invalid_request", err.Error())
		return
	}
	if !s.clientAuthenticated(r) {
		oauthError(w, "invalid_client", "client authentication failed")
		return
	}
	s.refresh(w, r)
}

func (s *Server) redeemCode(w http.ResponseWriter, r *http.Request) {
	code := r.PostFormValue("code")

	s.mu.Lock()
	ac, ok := s.codes[code]
	delete(s.codes, code)
	s.mu.Unlock()

	if !ok || time.Now().After(ac.expiresAt) {
		oauthError(w, "invalid_grant", "authorization code is invalid or expired")
		return
	}
	if ac.challenge != "" && cryptox.S256Challenge(r.PostFormValue("code_verifier")) != ac.challenge {
		oauthError(w, "invalid_grant", "code_verifier doesn't match code_challenge")
		return
	}

	var user casdoorsdk.User
	if err := s.Lookup("user", ac.userID, &user); err != nil {
		oauthError(w, "invalid_grant", "user no longer exists")
		return
	}
	s.writeToken(w, r, user)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := r.PostFormValue("refresh_token")
	found := s.store.List("token", func(rec record) bool { return rec.str("refreshToken") == refreshToken })
	if refreshToken == "" || len(found) == 0 {
		oauthError(w, "invalid_grant", "refresh token is invalid")
		return
	}
	old := found[0]

	user := casdoorsdk.User{Owner: "admin", Name: s.opts.Application, Type: "application"}
	if old.str("organization") != "admin" {
		if err := s.Lookup("user", old.str("organization")+"/"+old.str("user"), &user); err != nil {
			oauthError(w, "invalid_grant", "user no longer exists")
			return
		}
	}

	s.mu.Lock()
	delete(s.bearer, old.str("accessToken"))
	s.mu.Unlock()
	_ = s.store.Delete("token", old.id())

	s.writeToken(w, r, user)
}

// writeToken mints an access token for user, stores it as a token entity
// and writes the token response.
func (s *Server) writeToken(w http.ResponseWriter, r *http.Request, user casdoorsdk.User) {
	now := time.Now().UTC()
	subject := user.ID
	if subject == "" {
		subject = user.Owner + "/" + user.Name
	}

	claims := casdoorsdk.Claims{
		User:      user,
		TokenType: "access-token",
		Scope:     "read",
		Azp:       s.opts.ClientID,
		Claims:    jwtx.NewClaims(subject, "http://"+r.Host, []string{s.opts.ClientID}, s.opts.TokenTTL, now),
	}
	access, err := s.signer.Sign(&claims)
	if err != nil {
		oauthError(w, "server_error", err.Error())
		return
	}
	refreshToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		oauthError(w, "server_error", err.Error())
		return
	}

	tok := casdoorsdk.Token{
		Owner:        "admin",
		Name:         uuid.NewString(),
		CreatedTime:  now.Format(time.RFC3339),
		Application:  s.opts.Application,
		Organization: user.Owner,
		User:         user.Name,
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.opts.TokenTTL.Seconds()),
		Scope:        claims.Scope,
		TokenType:    "Bearer",
	}
	if err := s.Seed("token", tok); err != nil {
		oauthError(w, "server_error", err.Error())
		return
	}

	s.mu.Lock()
	s.bearer[access] = true
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, casdoorsdk.OAuthToken{
		AccessToken:  access,
		IDToken:      access,
		RefreshToken: refreshToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    tok.ExpiresIn,
		Scope:        tok.Scope,
	})
}

func (s *Server) handleIntrospect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		oauthError(w, "invalid_request", err.Error())
		return
	}
	token := r.PostFormValue("token")

	s.mu.Lock()
	active := s.bearer[token]
	s.mu.Unlock()
	if !active {
		writeJSON(w, http.StatusOK, casdoorsdk.IntrospectionResponse{Active: false})
		return
	}

	verifier := jwtx.NewVerifierRS256(s.signer.PublicKey(), jwtx.VerifyOptions{})
	var claims casdoorsdk.Claims
	if err := verifier.VerifyInto(token, &claims); err != nil {
		writeJSON(w, http.StatusOK, casdoorsdk.IntrospectionResponse{Active: false})
		return
	}

	std := claims.Standard()
	writeJSON(w, http.StatusOK, casdoorsdk.IntrospectionResponse{
		Active:    true,
		Scope:     claims.Scope,
		ClientID:  s.opts.ClientID,
		Username:  claims.Name,
		TokenType: "Bearer",
		Exp:       std.ExpiresAt.Unix(),
		Iat:       std.IssuedAt.Unix(),
		Nbf:       std.NotBefore.Unix(),
		Sub:       std.Subject,
		Aud:       std.Audience,
		Iss:       std.Issuer,
		Jti:       std.ID,
	})
}
