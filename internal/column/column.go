// Package column splits composite dataset column names into entity and
// sub-dimension keys.
//
// Two naming conventions appear across the indicator datasets: an explicit
// delimiter ("Colonial Heights-State") and a known entity-code prefix ("hwAM").
package column

import "strings"

// Key identifies a data column by entity and sub-dimension.
type Key struct {
	Entity       string
	SubDimension string
}

// Convention decomposes column names and reconstructs them from keys.
type Convention interface {
	Decompose(name string) (Key, bool)
	Compose(key Key) string
}

// Delimited splits at the last occurrence of Sep, so entities may contain the
// separator themselves ("Non-Interstate NHS-LOTTR").
type Delimited struct {
	Sep string
}

func (d Delimited) Decompose(name string) (Key, bool) {
	sep := d.sep()
	i := strings.LastIndex(name, sep)
	if i <= 0 || i+len(sep) >= len(name) {
		return Key{}, false
	}
	entity := strings.TrimSpace(name[:i])
	sub := strings.TrimSpace(name[i+len(sep):])
	if entity == "" || sub == "" {
		return Key{}, false
	}
	return Key{Entity: entity, SubDimension: sub}, true
}

func (d Delimited) Compose(key Key) string {
	return key.Entity + d.sep() + key.SubDimension
}

func (d Delimited) sep() string {
	if d.Sep == "" {
		return "-"
	}
	return d.Sep
}

// Prefixed resolves names that start with a known entity code. The entity of a
// decomposed key is the code itself.
type Prefixed struct {
	Codes []string
}

func (p Prefixed) Decompose(name string) (Key, bool) {
	best := ""
	for _, code := range p.Codes {
		if len(code) > len(best) && strings.HasPrefix(name, code) {
			best = code
		}
	}
	if best == "" || len(best) == len(name) {
		return Key{}, false
	}
	return Key{Entity: best, SubDimension: name[len(best):]}, true
}

func (p Prefixed) Compose(key Key) string {
	return key.Entity + key.SubDimension
}

// Index is the resolved column set of one table.
type Index struct {
	entities []string
	subs     []string
	columns  map[Key]string
}

// Build decomposes every column with conv. Columns that do not resolve are
// returned separately and take no part in the index.
func Build(conv Convention, columns []string) (*Index, []string) {
	idx := &Index{columns: make(map[Key]string, len(columns))}
	seenEntity := map[string]bool{}
	seenSub := map[string]bool{}
	var unresolved []string
	for _, name := range columns {
		key, ok := conv.Decompose(name)
		if !ok {
			unresolved = append(unresolved, name)
			continue
		}
		if _, dup := idx.columns[key]; dup {
			unresolved = append(unresolved, name)
			continue
		}
		idx.columns[key] = name
		if !seenEntity[key.Entity] {
			seenEntity[key.Entity] = true
			idx.entities = append(idx.entities, key.Entity)
		}
		if !seenSub[key.SubDimension] {
			seenSub[key.SubDimension] = true
			idx.subs = append(idx.subs, key.SubDimension)
		}
	}
	return idx, unresolved
}

// Entities returns the resolved entities in first-appearance order.
func (x *Index) Entities() []string {
	return append([]string(nil), x.entities...)
}

// SubDimensions returns the resolved sub-dimensions in first-appearance order.
func (x *Index) SubDimensions() []string {
	return append([]string(nil), x.subs...)
}

// Column returns the original column name for an entity and sub-dimension.
func (x *Index) Column(entity, sub string) (string, bool) {
	name, ok := x.columns[Key{Entity: entity, SubDimension: sub}]
	return name, ok
}

// HasEntity reports whether any column resolved to entity.
func (x *Index) HasEntity(entity string) bool {
	for _, e := range x.entities {
		if e == entity {
			return true
		}
	}
	return false
}

// HasSubDimension reports whether any column resolved to sub.
func (x *Index) HasSubDimension(sub string) bool {
	for _, s := range x.subs {
		if s == sub {
			return true
		}
	}
	return false
}
