package fulfillment

import (
	"encoding/json"
	"strconv"
	"strings"
)

// IntentRequest is one classified turn from the NLU layer: the matched intent
// name, the extracted parameters, and the raw user query. Immutable once
// received.
type IntentRequest struct {
	Name       string
	Parameters map[string]any
	Query      string
}

// StringParam returns the first usable value among the given parameter keys,
// normalized to a trimmed string. NLU engines deliver the same logical field
// either as a bare scalar or as a singleton list, so both shapes are accepted;
// for a list the first element wins.
func (r IntentRequest) StringParam(keys ...string) string {
	for _, key := range keys {
		v, ok := r.Parameters[key]
		if !ok {
			continue
		}
		if s := normalizeParamValue(v); s != "" {
			return s
		}
	}
	return ""
}

func normalizeParamValue(v any) string {
	switch vv := v.(type) {
	case string:
		return strings.TrimSpace(vv)
	case []string:
		if len(vv) == 0 {
			return ""
		}
		return strings.TrimSpace(vv[0])
	case []any:
		if len(vv) == 0 {
			return ""
		}
		return normalizeParamValue(vv[0])
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case int:
		return strconv.Itoa(vv)
	case json.Number:
		return vv.String()
	default:
		return ""
	}
}
