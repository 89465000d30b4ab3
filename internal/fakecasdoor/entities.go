package fakecasdoor

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// kinds are the entity kinds served by the generic CRUD handlers. Every
// plural is the kind plus "s".
var kinds = map[string]bool{
	"adapter": true, "application": true, "cert": true, "enforcer": true,
	"group": true, "model": true, "organization": true, "payment": true,
	"permission": true, "plan": true, "pricing": true, "product": true,
	"provider": true, "resource": true, "role": true, "session": true,
	"subscription": true, "syncer": true, "token": true, "user": true,
	"webhook": true,
}

// entityAction splits "get-roles", "add-role", ... into verb and kind.
func entityAction(action string) (verb, kind string, ok bool) {
	verb, rest, found := strings.Cut(action, "-")
	if !found {
		return "", "", false
	}
	if kinds[rest] {
		return verb, rest, true
	}
	if verb == "get" {
		if singular, ok := strings.CutSuffix(rest, "s"); ok && kinds[singular] {
			return "list", singular, true
		}
	}
	return "", "", false
}

// Seed stores v (any entity struct) as kind without going through the API.
func (s *Server) Seed(kind string, v any) error {
	r, err := toRecord(v)
	if err != nil {
		return err
	}
	return s.store.Create(kind, r)
}

// Lookup returns the stored entity kind/id decoded into v.
func (s *Server) Lookup(kind, id string, v any) error {
	r, err := s.store.Get(kind, id)
	if err != nil {
		return err
	}
	return fromRecord(r, v)
}

func (s *Server) handleEntityGet(w http.ResponseWriter, r *http.Request) {
	verb, kind, ok := entityAction(r.PathValue("action"))
	if !ok || (verb != "get" && verb != "list") {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	if verb == "get" {
		rec, err := s.store.Get(kind, q.Get("id"))
		if errors.Is(err, ErrNotFound) {
			writeOK(w, nil)
			return
		}
		writeOK(w, rec)
		return
	}

	owner := q.Get("owner")
	items := s.store.List(kind, func(rec record) bool {
		return owner == "" || rec.str("owner") == owner
	})
	if kind == "group" && q.Get("withTree") == "true" {
		writeOK(w, groupTree(items, owner))
		return
	}
	writeOK(w, items)
}

// groupTree nests groups under their parentId. Groups whose parent is the
// organization itself are roots.
func groupTree(items []record, owner string) []record {
	byParent := map[string][]record{}
	for _, g := range items {
		byParent[g.str("parentId")] = append(byParent[g.str("parentId")], g)
	}

	var attach func(parent string) []record
	attach = func(parent string) []record {
		children := byParent[parent]
		for _, c := range children {
			if c.str("name") == parent {
				continue
			}
			if sub := attach(c.str("name")); len(sub) > 0 {
				c["children"] = sub
			}
		}
		return children
	}

	roots := attach("")
	if owner != "" {
		roots = append(roots, attach(owner)...)
	}
	if roots == nil {
		return []record{}
	}
	return roots
}

func (s *Server) handleEntityMutation(w http.ResponseWriter, r *http.Request) {
	verb, kind, ok := entityAction(r.PathValue("action"))
	if !ok || verb == "get" || verb == "list" {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeFailure(w, err.Error())
		return
	}
	rec, err := decodeEntity(kind, body)
	if err != nil {
		writeFailure(w, err.Error())
		return
	}

	switch verb {
	case "add":
		if rec.str("name") == "" {
			writeFailure(w, "name can't be empty")
			return
		}
		if id := r.URL.Query().Get("id"); id != "" && id != rec.id() {
			writeFailure(w, fmt.Sprintf("id %q doesn't match %q", id, rec.id()))
			return
		}
		if rec.str("createdTime") == "" {
			rec["createdTime"] = time.Now().UTC().Format(time.RFC3339)
		}
		if kind == "user" && rec.str("id") == "" {
			rec["id"] = uuid.NewString()
		}
		writeAffected(w, s.store.Create(kind, rec) == nil)

	case "update":
		writeAffected(w, s.store.Replace(kind, r.URL.Query().Get("id"), rec) == nil)

	case "delete":
		writeAffected(w, s.store.Delete(kind, rec.id()) == nil)

	default:
		http.NotFound(w, r)
	}
}

// decodeEntity accepts a raw entity or the {"<kind>Info": "<json>"} form.
func decodeEntity(kind string, body []byte) (record, error) {
	var rec record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", kind, err)
	}
	if info, ok := rec[kind+"Info"].(string); ok && len(rec) == 1 {
		rec = nil
		if err := json.Unmarshal([]byte(info), &rec); err != nil {
			return nil, fmt.Errorf("invalid %sInfo: %w", kind, err)
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("empty %s payload", kind)
	}
	return rec, nil
}

// ============================================================================
// Users
// ============================================================================

func (s *Server) handleUserCount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	owner := q.Get("owner")
	onlineOnly := q.Get("isOnline") == "true"

	users := s.store.List("user", func(rec record) bool {
		if rec.str("owner") != owner {
			return false
		}
		online, _ := rec["isOnline"].(bool)
		return !onlineOnly || online
	})
	writeOK(w, len(users))
}

func (s *Server) handleSetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeFailure(w, err.Error())
		return
	}

	id := r.FormValue("userOwner") + "/" + r.FormValue("userName")
	oldPassword := r.FormValue("oldPassword")
	newPassword := r.FormValue("newPassword")
	if newPassword == "" {
		writeFailure(w, "new password can't be empty")
		return
	}

	err := s.store.Patch("user", id, func(rec record) error {
		if current := rec.str("password"); current != "" && current != oldPassword {
			return errors.New("old password is wrong")
		}
		rec["password"] = newPassword
		return nil
	})
	if err != nil {
		writeFailure(w, err.Error())
		return
	}
	writeOK(w, nil)
}

// ============================================================================
// Sessions
// ============================================================================

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	parts := strings.SplitN(r.URL.Query().Get("sessionPkId"), "/", 3)
	if len(parts) != 3 {
		writeFailure(w, "invalid sessionPkId")
		return
	}

	found := s.store.List("session", func(rec record) bool {
		return rec.str("owner") == parts[0] && rec.str("name") == parts[1] && rec.str("application") == parts[2]
	})
	if len(found) == 0 {
		writeOK(w, nil)
		return
	}
	writeOK(w, found[0])
}

// ============================================================================
// Resources
// ============================================================================

func (s *Server) handleGetResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	owner, user := q.Get("owner"), q.Get("user")
	field, value := q.Get("field"), q.Get("value")

	items := s.store.List("resource", func(rec record) bool {
		if owner != "" && rec.str("owner") != owner {
			return false
		}
		if user != "" && rec.str("user") != user {
			return false
		}
		return field == "" || strings.Contains(fmt.Sprint(rec[field]), value)
	})

	if sortField := q.Get("sortField"); sortField != "" {
		slices.SortStableFunc(items, func(a, b record) int {
			return cmp.Compare(fmt.Sprint(a[sortField]), fmt.Sprint(b[sortField]))
		})
		if q.Get("sortOrder") == "descend" {
			slices.Reverse(items)
		}
	}
	writeOK(w, items)
}

func (s *Server) handleUploadResource(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeFailure(w, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, err.Error())
		return
	}

	fullFilePath := r.FormValue("fullFilePath")
	if fullFilePath == "" {
		fullFilePath = header.Filename
	}
	fullFilePath = strings.TrimPrefix(fullFilePath, "/")
	fileURL := "http://" + r.Host + "/files/" + fullFilePath

	rec := record{
		"owner":        r.FormValue("owner"),
		"name":         fullFilePath,
		"createdTime":  time.Now().UTC().Format(time.RFC3339),
		"user":         r.FormValue("user"),
		"application":  r.FormValue("application"),
		"tag":          r.FormValue("tag"),
		"parent":       r.FormValue("parent"),
		"fileName":     header.Filename,
		"fileSize":     len(content),
		"url":          fileURL,
		"fullFilePath": fullFilePath,
	}

	if err := s.store.Create("resource", rec); err != nil {
		if err := s.store.Replace("resource", rec.id(), rec); err != nil {
			writeFailure(w, err.Error())
			return
		}
	}

	s.mu.Lock()
	s.files[fullFilePath] = content
	s.mu.Unlock()

	writeOK2(w, fileURL, fullFilePath)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	content, ok := s.files[r.PathValue("path")]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	_, _ = w.Write(content)
}
