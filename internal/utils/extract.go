package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/goccy/go-json"
)

var ErrNothingExtracted = errors.New("no value found")

// ExtractJSONPath evaluates every rule (variable name to JSONPath expression)
// on body. Successfully extracted values are returned even when other rules
// fail; the failures are joined into the returned error.
func ExtractJSONPath(body []byte, rules map[string]string) (map[string]string, error) {
	extracted := make(map[string]string, len(rules))
	if len(rules) == 0 {
		return extracted, nil
	}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return extracted, fmt.Errorf("response body is not valid JSON: %w", err)
	}

	var errs error
	for _, name := range names {
		expr := strings.TrimSpace(rules[name])
		val, err := jsonpath.Get(expr, doc)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("extract %q (%s): %w", name, expr, err))
			continue
		}

		s, err := stringify(val)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("extract %q (%s): %w", name, expr, err))
			continue
		}
		extracted[name] = s
	}

	return extracted, errs
}

func stringify(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", ErrNothingExtracted
	case string:
		if t == "" {
			return "", ErrNothingExtracted
		}
		return t, nil
	case []any:
		switch len(t) {
		case 0:
			return "", ErrNothingExtracted
		case 1:
			return stringify(t[0])
		}
	case float64, bool:
		return fmt.Sprint(t), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
