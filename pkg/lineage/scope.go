package lineage

import "strings"

// scopeEntry is one relation visible in a SELECT: a base table, a CTE
// reference or a derived table.
type scopeEntry struct {
	name    string // alias, or the table name when unaliased
	table   string // qualified base table, empty for derived relations
	columns []*ColumnLineage
	derived bool
}

// column returns the lineage of the named column of the relation.
func (s *scopeEntry) column(name string) *ColumnLineage {
	for _, col := range s.columns {
		if strings.EqualFold(col.Name, name) {
			return col
		}
	}
	if s.derived {
		return nil
	}
	return direct(SourceColumn{Table: s.table, Column: name})
}

func (s *scopeEntry) hasColumn(name string) bool {
	for _, col := range s.columns {
		if strings.EqualFold(col.Name, name) {
			return true
		}
	}
	return false
}

// scope holds the relations and CTEs of one query level. Lookups fall
// back to the parent scope.
type scope struct {
	parent  *scope
	ctes    map[string][]*ColumnLineage
	entries []*scopeEntry
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, ctes: make(map[string][]*ColumnLineage)}
}

func (s *scope) add(entry *scopeEntry) {
	s.entries = append(s.entries, entry)
}

func (s *scope) lookupCTE(name string) ([]*ColumnLineage, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if columns, ok := sc.ctes[strings.ToLower(name)]; ok {
			return columns, true
		}
	}
	return nil, false
}

// lookup finds the relation a qualifier refers to.
func (s *scope) lookup(name string) *scopeEntry {
	for sc := s; sc != nil; sc = sc.parent {
		for _, entry := range sc.entries {
			if strings.EqualFold(entry.name, name) {
				return entry
			}
		}
	}
	return nil
}

// owner picks the relation an unqualified column belongs to. A relation
// whose columns are known and include name wins. Otherwise the only base
// table of the innermost non-empty scope is assumed.
func (s *scope) owner(name string) *scopeEntry {
	for sc := s; sc != nil; sc = sc.parent {
		for _, entry := range sc.entries {
			if entry.hasColumn(name) {
				return entry
			}
		}
	}
	for sc := s; sc != nil; sc = sc.parent {
		if len(sc.entries) == 0 {
			continue
		}
		if len(sc.entries) == 1 {
			return sc.entries[0]
		}
		return nil
	}
	return nil
}
