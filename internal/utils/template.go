package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnclosedPlaceholder = errors.New("unclosed placeholder")
	ErrMissingVariable     = errors.New("missing variable")
)

// TemplateVars resolves {{name}} placeholders. Besides user variables it
// provides the built-ins {{$uuid}}, {{$ri}} and {{$timestamp}}; each built-in
// keeps its value for the lifetime of the TemplateVars, so a request body and
// its headers see the same identifier.
type TemplateVars struct {
	vars     map[string]string
	builtins map[string]string
}

// NewTemplateVars snapshots vars and computes the built-ins.
func NewTemplateVars(vars map[string]string) *TemplateVars {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}

	return &TemplateVars{
		vars: copied,
		builtins: map[string]string{
			"$uuid":      NewUUIDGenerator().Generate(),
			"$ri":        RandomString(10),
			"$timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		},
	}
}

// Set adds or replaces a user variable.
func (t *TemplateVars) Set(name, value string) {
	t.vars[name] = value
}

// Vars returns a copy of the user variables.
func (t *TemplateVars) Vars() map[string]string {
	out := make(map[string]string, len(t.vars))
	for k, v := range t.vars {
		out[k] = v
	}
	return out
}

// Render replaces every placeholder in s.
func (t *TemplateVars) Render(s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s) + 16)

	rest := s
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.Index(rest[start+2:], "}}")
		if end < 0 {
			return "", fmt.Errorf("%w in %q", ErrUnclosedPlaceholder, s)
		}

		name := strings.TrimSpace(rest[start+2 : start+2+end])
		val, ok := t.builtins[name]
		if !ok {
			val, ok = t.vars[name]
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingVariable, name)
		}

		b.WriteString(rest[:start])
		b.WriteString(val)
		rest = rest[start+2+end+2:]
	}
}

// RenderValue renders string values inside JSON-like structures and returns
// a copy. Map keys, numbers, booleans and nil are left unchanged.
func (t *TemplateVars) RenderValue(v any) (any, error) {
	switch typed := v.(type) {
	case string:
		return t.Render(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, vv := range typed {
			rv, err := t.RenderValue(vv)
			if err != nil {
				return nil, err
			}
			out[k] = rv
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			rv, err := t.RenderValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, rv)
		}
		return out, nil
	default:
		return v, nil
	}
}
