package reconcile

import "strings"

// listDelimiter separates entries in the store's flat string representation
// of an accumulated history.
const listDelimiter = ", "

// ValueList is an ordered, duplicate-checked list of prior entries for an
// accumulate-as-list attribute. The delimited string form exists only at the
// I/O edge; all merge decisions go through this type.
type ValueList struct {
	entries []string
}

// ParseValueList splits the store's flat representation into its ordered
// entries. Empty input yields an empty list.
func ParseValueList(s string) ValueList {
	if s == "" {
		return ValueList{}
	}
	return ValueList{entries: strings.Split(s, listDelimiter)}
}

// Contains reports whether v already occurs in the list, by exact string
// match.
func (l ValueList) Contains(v string) bool {
	for _, e := range l.entries {
		if e == v {
			return true
		}
	}
	return false
}

// Append adds v to the end of the list unless it is empty or already
// present. Existing entries keep their order; no deduplication happens
// beyond the new-entry check. Reports whether the list changed.
func (l *ValueList) Append(v string) bool {
	if v == "" || l.Contains(v) {
		return false
	}
	l.entries = append(l.entries, v)
	return true
}

// Len returns the number of entries.
func (l ValueList) Len() int {
	return len(l.entries)
}

// String rejoins the entries into the store's flat representation.
func (l ValueList) String() string {
	return strings.Join(l.entries, listDelimiter)
}
