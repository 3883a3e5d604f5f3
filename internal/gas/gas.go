// Package gas holds the static gas property table: explosion group and lower
// explosive limit per gas name. The table is loaded once and read-only afterwards.
package gas

import (
	"errors"
	"fmt"
	"strings"
)

type Group string

const (
	GroupIIA Group = "IIA"
	GroupIIB Group = "IIB"
	GroupIIC Group = "IIC"
)

var (
	ErrNotFound     = errors.New("gas not found")
	ErrInvalidTable = errors.New("invalid gas table")
)

// ParseGroup accepts exactly IIA, IIB or IIC (surrounding whitespace ignored).
func ParseGroup(s string) (Group, error) {
	switch g := Group(strings.TrimSpace(s)); g {
	case GroupIIA, GroupIIB, GroupIIC:
		return g, nil
	default:
		return "", fmt.Errorf("unknown gas group %q", s)
	}
}

type Property struct {
	Name  string  `json:"name"`
	Group Group   `json:"group"`
	LEL   float64 `json:"lel"` // volume %
}

type Table struct {
	props  []Property
	byName map[string]int
}

// NewTable validates props and returns an immutable lookup table keeping
// their order.
func NewTable(props []Property) (*Table, error) {
	t := &Table{
		props:  make([]Property, 0, len(props)),
		byName: make(map[string]int, len(props)),
	}
	for i, p := range props {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: record %d has no name", ErrInvalidTable, i+1)
		}
		if _, dup := t.byName[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate gas %q", ErrInvalidTable, p.Name)
		}
		if _, err := ParseGroup(string(p.Group)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, p.Name, err)
		}
		if !(p.LEL > 0) {
			return nil, fmt.Errorf("%w: %s: LEL must be positive, got %v", ErrInvalidTable, p.Name, p.LEL)
		}
		t.byName[p.Name] = len(t.props)
		t.props = append(t.props, p)
	}
	if len(t.props) == 0 {
		return nil, fmt.Errorf("%w: no gases", ErrInvalidTable)
	}
	return t, nil
}

// Resolve returns the property for an exact name match.
func (t *Table) Resolve(name string) (Property, error) {
	i, ok := t.byName[name]
	if !ok {
		return Property{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return t.props[i], nil
}

func (t *Table) Names() []string {
	names := make([]string, len(t.props))
	for i, p := range t.props {
		names[i] = p.Name
	}
	return names
}

func (t *Table) All() []Property {
	out := make([]Property, len(t.props))
	copy(out, t.props)
	return out
}

func (t *Table) Len() int { return len(t.props) }
