package file

import (
	"fmt"
	"strconv"
)

func maxArgs(name string, args []any, max int) error {
	if len(args) > max {
		return fmt.Errorf("%s: expected at most %d arguments, got %d", name, max, len(args))
	}
	return nil
}

// stringArg returns args[i] as a string, or def when it is absent.
func stringArg(name string, args []any, i int, def string) (string, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	switch v := args[i].(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%s: argument %d must be a string, got %T", name, i+1, args[i])
	}
}

// boolArg returns args[i] as a bool, or def when it is absent.
// The strings "true" and "false" are accepted.
func boolArg(name string, args []any, i int, def bool) (bool, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	switch v := args[i].(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%s: argument %d must be a boolean, got %q", name, i+1, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%s: argument %d must be a boolean, got %T", name, i+1, args[i])
	}
}

func requiredString(name string, args []any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	s, err := stringArg(name, args, 0, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%s: argument must not be empty", name)
	}
	return s, nil
}
