package homework

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Latest extracts the most recent homework from a decoded API response.
// It returns ok=false when the "homeworks" array is empty.
func Latest(payload any) (rec Record, ok bool, err error) {
	body, isObject := payload.(map[string]any)
	if !isObject {
		return nil, false, SchemaError("validate", fmt.Sprintf("response is %T, not an object", payload), nil)
	}
	raw, found := body["homeworks"]
	if !found {
		return nil, false, SchemaError("validate", `response has no "homeworks" key`, nil)
	}
	list, isList := raw.([]any)
	if !isList {
		return nil, false, SchemaError("validate", fmt.Sprintf(`"homeworks" is %T, not an array`, raw), nil)
	}
	if len(list) == 0 {
		return nil, false, nil
	}
	first, isObject := list[0].(map[string]any)
	if !isObject {
		return nil, false, SchemaError("validate", fmt.Sprintf("homework entry is %T, not an object", list[0]), nil)
	}
	return Record(first), true, nil
}

// CurrentDate returns the server-reported "current_date" when the response carries one.
func CurrentDate(payload any) (int64, bool) {
	body, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := body["current_date"].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}
