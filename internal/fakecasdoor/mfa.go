package fakecasdoor

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

// StaticPasscode is accepted when verifying email and SMS factors, which the
// fake can't deliver.
const StaticPasscode = "123456"

// mfaState tracks enrollment of one user.
type mfaState struct {
	pendingType   casdoorsdk.MfaType
	pendingSecret string
	recoveryCode  string
	verified      bool

	factors []casdoorsdk.MfaProps
}

// mfaUser reads owner/name from the parsed form.
func mfaUser(r *http.Request) (string, bool) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		return "", false
	}
	owner, name := r.FormValue("owner"), r.FormValue("name")
	if owner == "" || name == "" {
		return "", false
	}
	return owner + "/" + name, true
}

func (s *Server) handleMfaInitiate(w http.ResponseWriter, r *http.Request) {
	id, ok := mfaUser(r)
	if !ok {
		writeFailure(w, "owner and name are required")
		return
	}
	if _, err := s.store.Get("user", id); err != nil {
		writeFailure(w, "the user doesn't exist")
		return
	}

	mfaType := casdoorsdk.MfaType(r.FormValue("mfaType"))
	props := casdoorsdk.MfaProps{MfaType: string(mfaType)}
	st := &mfaState{pendingType: mfaType, recoveryCode: uuid.NewString()}

	switch mfaType {
	case casdoorsdk.MfaTypeApp:
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      s.opts.Application,
			AccountName: r.FormValue("name"),
			Digits:      otp.DigitsSix,
			Algorithm:   otp.AlgorithmSHA1,
		})
		if err != nil {
			writeFailure(w, err.Error())
			return
		}
		st.pendingSecret = key.Secret()
		props.Secret = key.Secret()
		props.URL = key.URL()
	case casdoorsdk.MfaTypeEmail, casdoorsdk.MfaTypeSms:
	default:
		writeFailure(w, "invalid mfa type")
		return
	}
	props.RecoveryCodes = []string{st.recoveryCode}

	s.mu.Lock()
	if prev, ok := s.mfa[id]; ok {
		st.factors = prev.factors
	}
	s.mfa[id] = st
	s.mu.Unlock()

	writeOK(w, props)
}

func (s *Server) handleMfaVerify(w http.ResponseWriter, r *http.Request) {
	id, ok := mfaUser(r)
	if !ok {
		writeFailure(w, "owner and name are required")
		return
	}
	passcode := r.FormValue("passcode")

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.mfa[id]
	if !ok || st.pendingType == "" {
		writeFailure(w, "mfa setup not initiated")
		return
	}

	valid := passcode == StaticPasscode
	if st.pendingType == casdoorsdk.MfaTypeApp {
		valid = totp.Validate(passcode, st.pendingSecret)
	}
	if !valid {
		writeFailure(w, "passcode is invalid")
		return
	}
	st.verified = true
	writeOK(w, http.StatusText(http.StatusOK))
}

func (s *Server) handleMfaEnable(w http.ResponseWriter, r *http.Request) {
	id, ok := mfaUser(r)
	if !ok {
		writeFailure(w, "owner and name are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.mfa[id]
	if !ok || !st.verified {
		writeFailure(w, "mfa setup not verified")
		return
	}

	st.factors = append(st.factors, casdoorsdk.MfaProps{
		Enabled:       true,
		IsPreferred:   len(st.factors) == 0,
		MfaType:       string(st.pendingType),
		Secret:        st.pendingSecret,
		RecoveryCodes: []string{st.recoveryCode},
	})
	st.pendingType, st.pendingSecret, st.verified = "", "", false
	writeOK(w, http.StatusText(http.StatusOK))
}

func (s *Server) handleSetPreferredMfa(w http.ResponseWriter, r *http.Request) {
	id, ok := mfaUser(r)
	if !ok {
		writeFailure(w, "owner and name are required")
		return
	}
	mfaType := r.FormValue("mfaType")

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.mfa[id]
	if !ok {
		writeFailure(w, "mfa is not enabled")
		return
	}
	found := false
	for i := range st.factors {
		st.factors[i].IsPreferred = st.factors[i].MfaType == mfaType
		found = found || st.factors[i].IsPreferred
	}
	if !found {
		writeFailure(w, "mfa type is not enabled")
		return
	}
	writeOK(w, st.factors)
}

func (s *Server) handleDeleteMfa(w http.ResponseWriter, r *http.Request) {
	id, ok := mfaUser(r)
	if !ok {
		writeFailure(w, "owner and name are required")
		return
	}

	s.mu.Lock()
	delete(s.mfa, id)
	s.mu.Unlock()

	writeOK(w, []casdoorsdk.MfaProps{})
}

// ============================================================================
// Notifications
// ============================================================================

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var email casdoorsdk.Email
	if err := decodeJSONBody(r, &email); err != nil {
		writeFailure(w, err.Error())
		return
	}
	if len(email.Receivers) == 0 {
		writeFailure(w, "receivers can't be empty")
		return
	}
	s.deliver(email)
	writeOK(w, nil)
}

func (s *Server) handleSendSms(w http.ResponseWriter, r *http.Request) {
	var sms casdoorsdk.Sms
	if err := decodeJSONBody(r, &sms); err != nil {
		writeFailure(w, err.Error())
		return
	}
	if len(sms.Receivers) == 0 {
		writeFailure(w, "receivers can't be empty")
		return
	}
	s.deliver(sms)
	writeOK(w, nil)
}

func (s *Server) deliver(msg any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, msg)
}
