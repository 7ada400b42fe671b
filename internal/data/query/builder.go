// Package query builds the parameterised SQL behind the shaped product, cart
// and order views, together with the row types those statements produce.
package query

import (
	"strconv"
	"strings"
)

// Builder collects positional arguments while a statement is assembled.
type Builder struct {
	sb   strings.Builder
	args []any
}

// Arg registers v and returns its placeholder.
func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *Builder) Write(parts ...string) *Builder {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
	return b
}

func (b *Builder) Build() (string, []any) {
	return b.sb.String(), b.args
}

// EscapeLike makes user text safe inside an ILIKE pattern.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Contains wraps text as a case-insensitive substring pattern.
func Contains(s string) string {
	return "%" + EscapeLike(strings.TrimSpace(s)) + "%"
}

// where joins conditions with AND.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
