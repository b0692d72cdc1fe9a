package tools

import "fmt"

// Validate checks an incoming arguments map against a declarative schema.
// Required parameters must be present, every supplied parameter must be
// declared, and values must match their declared type. A mismatch rejects
// the call before the handler runs.
func Validate(s Schema, args map[string]any) error {
	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("missing required parameter %q", name)
		}
	}

	for name, value := range args {
		prop, ok := s.Properties[name]
		if !ok {
			return fmt.Errorf("unknown parameter %q", name)
		}
		if err := checkType(name, prop, value); err != nil {
			return err
		}
	}
	return nil
}

func checkType(name string, prop Property, value any) error {
	switch prop.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("parameter %q must be a string", name)
		}
		if len(prop.Enum) > 0 && !contains(prop.Enum, s) {
			return fmt.Errorf("parameter %q must be one of %v", name, prop.Enum)
		}
	case "number", "integer":
		// JSON numbers arrive as float64; accept int for direct callers.
		switch value.(type) {
		case float64, int:
		default:
			return fmt.Errorf("parameter %q must be a number", name)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("parameter %q must be a boolean", name)
		}
	case "array":
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("parameter %q must be an array", name)
		}
		if prop.Items != nil {
			for i, item := range items {
				if err := checkType(fmt.Sprintf("%s[%d]", name, i), *prop.Items, item); err != nil {
					return err
				}
			}
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("parameter %q must be an object", name)
		}
	default:
		return fmt.Errorf("parameter %q has unsupported schema type %q", name, prop.Type)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
