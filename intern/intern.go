// Package intern maps strings to dense integer ids and back.
package intern

// ID identifies an interned string. Ids are issued 0, 1, 2, ... and never
// change once issued.
type ID uint32

// NotFound is what MustResolve returns for ids this interner never issued.
const NotFound = "<NOT FOUND>"

// Interner is an append-only bidirectional string table. It is not safe
// for concurrent use.
type Interner struct {
	ids  map[string]ID
	strs []string
}

func New() *Interner {
	return &Interner{ids: make(map[string]ID)}
}

// GetOrIntern returns the id of s, issuing the next id if s is new.
func (in *Interner) GetOrIntern(s string) ID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := ID(len(in.strs))
	in.strs = append(in.strs, s)
	in.ids[s] = id
	return id
}

// Lookup returns the id of s without interning it.
func (in *Interner) Lookup(s string) (ID, bool) {
	id, ok := in.ids[s]
	return id, ok
}

func (in *Interner) Resolve(id ID) (string, bool) {
	if int(id) >= len(in.strs) {
		return "", false
	}
	return in.strs[id], true
}

func (in *Interner) MustResolve(id ID) string {
	s, ok := in.Resolve(id)
	if !ok {
		return NotFound
	}
	return s
}

func (in *Interner) Len() int {
	return len(in.strs)
}

// Strings returns a copy of the table in id order.
func (in *Interner) Strings() []string {
	res := make([]string, len(in.strs))
	copy(res, in.strs)
	return res
}
