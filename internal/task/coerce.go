package task

// CoerceDone converts a decoded JSON value into a done flag.
//
// Stored files written by earlier tools carry done values of assorted types.
// Coercion is an explicit table, not implicit conversion:
//
//	null / absent     -> false
//	bool              -> the value itself
//	number            -> value != 0
//	string            -> value != ""
//	array             -> non-empty
//	object            -> non-empty
//	anything else     -> false
func CoerceDone(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return false
	}
}
