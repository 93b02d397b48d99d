package parser

import (
	"fmt"
	"strings"
	"text/template"
)

func builtins() template.FuncMap {
	return template.FuncMap{
		"join":  join,
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"trim":  strings.TrimSpace,
	}
}

// join concatenates a list produced by another function, e.g. <% join tags ", " %>.
func join(items any, sep string) (string, error) {
	switch v := items.(type) {
	case []string:
		return strings.Join(v, sep), nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, sep), nil
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("join: cannot join %T", items)
	}
}
