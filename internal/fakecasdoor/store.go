package fakecasdoor

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// record is one entity as the service stores it: a decoded JSON object.
type record map[string]any

func (r record) str(key string) string {
	s, _ := r[key].(string)
	return s
}

func (r record) id() string { return r.str("owner") + "/" + r.str("name") }

// table keeps the records of one entity kind in insertion order.
type table struct {
	order []string
	rows  map[string]record
}

// store is a concurrency-safe in-memory entity store keyed by kind and
// "{owner}/{name}".
type store struct {
	mu     sync.RWMutex
	tables map[string]*table
}

func newStore() *store {
	return &store{tables: map[string]*table{}}
}

func (s *store) table(kind string) *table {
	t, ok := s.tables[kind]
	if !ok {
		t = &table{rows: map[string]record{}}
		s.tables[kind] = t
	}
	return t
}

// List returns copies of kind's records accepted by keep, in insertion order.
func (s *store) List(kind string, keep func(record) bool) []record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[kind]
	if !ok {
		return []record{}
	}

	out := make([]record, 0, len(t.order))
	for _, id := range t.order {
		r := t.rows[id]
		if keep == nil || keep(r) {
			out = append(out, clone(r))
		}
	}
	return out
}

// Get returns a copy of the record with id.
func (s *store) Get(kind, id string) (record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[kind]
	if !ok {
		return nil, ErrNotFound
	}
	r, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(r), nil
}

// Create inserts r under r.id().
func (s *store) Create(kind string, r record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(kind)
	id := r.id()
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%w: %s %s", ErrAlreadyExists, kind, id)
	}
	t.rows[id] = clone(r)
	t.order = append(t.order, id)
	return nil
}

// Replace swaps the record stored at id for r, which may carry a new id.
func (s *store) Replace(kind, id string, r record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(kind)
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}

	newID := r.id()
	if newID != id {
		if _, taken := t.rows[newID]; taken {
			return fmt.Errorf("%w: %s %s", ErrAlreadyExists, kind, newID)
		}
		delete(t.rows, id)
		t.order[slices.Index(t.order, id)] = newID
	}
	t.rows[newID] = clone(r)
	return nil
}

// Patch applies fn to the stored record at id.
func (s *store) Patch(kind, id string, fn func(record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(kind)
	r, ok := t.rows[id]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return fn(r)
}

// Delete removes the record at id.
func (s *store) Delete(kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(kind)
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(x string) bool { return x == id })
	return nil
}

// clone deep-copies r through JSON so callers never share nested values.
func clone(r record) record {
	b, err := json.Marshal(r)
	if err != nil {
		return record{}
	}
	var out record
	_ = json.Unmarshal(b, &out)
	return out
}

// toRecord converts any JSON-marshalable value into a record.
func toRecord(v any) (record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// fromRecord decodes r into v.
func fromRecord(r record, v any) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
