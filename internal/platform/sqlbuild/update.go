// Package sqlbuild assembles parameterised SQL from fixed per-table column lists.
package sqlbuild

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/consignly/consignly/internal/shared"
)

// Kind selects how a payload value is coerced before binding.
type Kind int

const (
	// Text is a NOT NULL text column; null or blank input is rejected.
	Text Kind = iota
	// NullableText writes NULL for an explicit null.
	NullableText
	// Float parses numbers and numeric strings, falling back to Field.Default.
	Float
	// Int parses integers, falling back to Field.Default.
	Int
	// Bool parses booleans, falling back to Field.Default.
	Bool
	// JSON re-encodes the value for a jsonb column.
	JSON
	// Reference is a bigint foreign key; unparsable input is rejected.
	Reference
)

// Field maps one payload key onto one column.
type Field struct {
	Key         string
	Column      string
	Kind        Kind
	Default     any
	NonNegative bool

	// MirrorColumn, for Text fields, is written with Mirror(value) whenever Column is.
	MirrorColumn string
	Mirror       func(string) string
}

// Table describes the mutable surface of one entity table.
type Table struct {
	Name       string
	PrimaryKey string
	Timestamp  string
	Fields     []Field
	Returning  []string
}

// Statement is a ready-to-run query with its bindings.
type Statement struct {
	SQL  string
	Args []any
}

// Update builds an UPDATE statement from the keys of payload that appear in the
// table's field list. Keys not listed are ignored. ErrInvalidUpdate is returned when
// no listed key is present.
func (t Table) Update(id int64, payload shared.Payload) (Statement, error) {
	sets := make([]string, 0, len(t.Fields)+1)
	args := make([]any, 0, len(t.Fields)+1)

	for _, f := range t.Fields {
		raw, ok := payload[f.Key]
		if !ok {
			continue
		}
		val, err := f.coerce(raw)
		if err != nil {
			return Statement{}, err
		}
		args = append(args, val)
		sets = append(sets, f.Column+" = $"+strconv.Itoa(len(args)))
		if f.MirrorColumn != "" && f.Mirror != nil {
			s, _ := val.(string)
			args = append(args, f.Mirror(s))
			sets = append(sets, f.MirrorColumn+" = $"+strconv.Itoa(len(args)))
		}
	}

	sets = append(sets, t.Timestamp+" = NOW()")
	if len(sets) == 1 {
		return Statement{}, fmt.Errorf("%w: %s", shared.ErrInvalidUpdate, t.Name)
	}

	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		t.Name, strings.Join(sets, ", "), t.PrimaryKey, len(args), strings.Join(t.Returning, ", "))
	return Statement{SQL: sql, Args: args}, nil
}

func (f Field) coerce(raw any) (any, error) {
	switch f.Kind {
	case Text:
		s := strings.TrimSpace(shared.String(raw))
		if raw == nil || s == "" {
			return nil, shared.NewFieldError(f.Key, "cannot be empty")
		}
		return shared.String(raw), nil
	case NullableText:
		return shared.OptionalString(raw), nil
	case Float:
		def, _ := f.Default.(float64)
		v := shared.Float(raw, def)
		if f.NonNegative && v < 0 {
			return nil, shared.NewFieldError(f.Key, "must be greater than or equal to 0")
		}
		return v, nil
	case Int:
		def, _ := f.Default.(int)
		v := shared.Int(raw, def)
		if f.NonNegative && v < 0 {
			return nil, shared.NewFieldError(f.Key, "must be greater than or equal to 0")
		}
		return v, nil
	case Bool:
		def, _ := f.Default.(bool)
		return shared.Bool(raw, def), nil
	case JSON:
		v, err := shared.RawJSON(raw)
		if err != nil {
			return nil, shared.NewFieldError(f.Key, "must be valid JSON")
		}
		return v, nil
	case Reference:
		v, ok := shared.Int64(raw)
		if !ok || v <= 0 {
			return nil, shared.NewFieldError(f.Key, "must be a positive integer")
		}
		return v, nil
	default:
		return nil, shared.NewFieldError(f.Key, "unsupported field")
	}
}
