package fakecasdoor

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

// SeedPolicy adds rule to the enforcer "{owner}/{name}".
func (s *Server) SeedPolicy(enforcerID string, rule casdoorsdk.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[enforcerID] = append(s.policies[enforcerID], rule)
}

// Policies returns the rules of an enforcer.
func (s *Server) Policies(enforcerID string) []casdoorsdk.Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.policies[enforcerID])
}

func sameRule(a, b casdoorsdk.Policy) bool {
	return a.Ptype == b.Ptype && a.V0 == b.V0 && a.V1 == b.V1 && a.V2 == b.V2 &&
		a.V3 == b.V3 && a.V4 == b.V4 && a.V5 == b.V5
}

// readPolicies accepts a JSON array of rules or a single rule object.
func readPolicies(r *http.Request) ([]casdoorsdk.Policy, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	var many []casdoorsdk.Policy
	if err := json.Unmarshal(body, &many); err == nil {
		return many, nil
	}
	var one casdoorsdk.Policy
	if err := json.Unmarshal(body, &one); err != nil {
		return nil, fmt.Errorf("invalid policy payload: %w", err)
	}
	return []casdoorsdk.Policy{one}, nil
}

func (s *Server) handleGetPolicies(w http.ResponseWriter, r *http.Request) {
	rules := s.Policies(r.URL.Query().Get("id"))
	if rules == nil {
		rules = []casdoorsdk.Policy{}
	}
	writeOK(w, rules)
}

func (s *Server) handleAddPolicy(w http.ResponseWriter, r *http.Request) {
	rules, err := readPolicies(r)
	if err != nil || len(rules) != 1 {
		writeFailure(w, "add-policy takes exactly one policy")
		return
	}

	id := r.URL.Query().Get("id")
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.policies[id], func(p casdoorsdk.Policy) bool { return sameRule(p, rules[0]) }) {
		writeAffected(w, false)
		return
	}
	s.policies[id] = append(s.policies[id], rules[0])
	writeAffected(w, true)
}

func (s *Server) handleRemovePolicy(w http.ResponseWriter, r *http.Request) {
	rules, err := readPolicies(r)
	if err != nil || len(rules) != 1 {
		writeFailure(w, "remove-policy takes exactly one policy")
		return
	}

	id := r.URL.Query().Get("id")
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.policies[id])
	s.policies[id] = slices.DeleteFunc(s.policies[id], func(p casdoorsdk.Policy) bool { return sameRule(p, rules[0]) })
	writeAffected(w, len(s.policies[id]) < before)
}

func (s *Server) handleUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	rules, err := readPolicies(r)
	if err != nil || len(rules) != 2 {
		writeFailure(w, "update-policy takes [old, new]")
		return
	}

	id := r.URL.Query().Get("id")
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.policies[id], func(p casdoorsdk.Policy) bool { return sameRule(p, rules[0]) })
	if i < 0 {
		writeAffected(w, false)
		return
	}
	s.policies[id][i] = rules[1]
	writeAffected(w, true)
}

// ============================================================================
// Enforcement
// ============================================================================

// decide evaluates one request against every target named in the query and
// returns a decision per target: the enforcer's "p" rules first, then the
// permission.
func (s *Server) decide(r *http.Request, req casdoorsdk.CasbinRequest) ([]bool, error) {
	q := r.URL.Query()
	var decisions []bool

	if id := q.Get("enforcerId"); id != "" {
		rules := s.Policies(id)
		decisions = append(decisions, slices.ContainsFunc(rules, func(p casdoorsdk.Policy) bool {
			return p.Ptype == "p" && matches(req, p.V0, p.V1, p.V2)
		}))
	}

	if id := q.Get("permissionId"); id != "" {
		rec, err := s.store.Get("permission", id)
		if err != nil {
			return nil, fmt.Errorf("permission %s not found", id)
		}
		var perm casdoorsdk.Permission
		if err := fromRecord(rec, &perm); err != nil {
			return nil, err
		}
		decisions = append(decisions, permits(perm, req))
	}

	if len(decisions) == 0 {
		return nil, fmt.Errorf("no enforcer or permission given")
	}
	return decisions, nil
}

func matches(req casdoorsdk.CasbinRequest, sub, obj, act string) bool {
	return len(req) >= 3 && req[0] == sub && req[1] == obj && strings.EqualFold(req[2], act)
}

func permits(p casdoorsdk.Permission, req casdoorsdk.CasbinRequest) bool {
	if len(req) < 3 || strings.EqualFold(p.Effect, "Deny") {
		return false
	}
	actionOK := slices.ContainsFunc(p.Actions, func(a string) bool { return strings.EqualFold(a, req[2]) })
	return slices.Contains(p.Users, req[0]) && slices.Contains(p.Resources, req[1]) && actionOK
}

func (s *Server) handleEnforce(w http.ResponseWriter, r *http.Request) {
	var req casdoorsdk.CasbinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "invalid casbin request")
		return
	}

	decisions, err := s.decide(r, req)
	if err != nil {
		writeFailure(w, err.Error())
		return
	}
	writeOK(w, decisions)
}

// handleBatchEnforce answers with one group per target, each holding a
// decision per request.
func (s *Server) handleBatchEnforce(w http.ResponseWriter, r *http.Request) {
	var reqs []casdoorsdk.CasbinRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeFailure(w, "invalid casbin requests")
		return
	}

	var groups [][]bool
	for i, req := range reqs {
		decisions, err := s.decide(r, req)
		if err != nil {
			writeFailure(w, err.Error())
			return
		}
		if i == 0 {
			groups = make([][]bool, len(decisions))
		}
		for t, d := range decisions {
			groups[t] = append(groups[t], d)
		}
	}
	if groups == nil {
		groups = [][]bool{}
	}
	writeOK(w, groups)
}
