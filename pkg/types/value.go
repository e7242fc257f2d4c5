package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a closed variant over the property value shapes a record can carry:
// a single string, a single number, or an ordered list of strings. The graph
// store hands back untyped property maps; decoding them into this variant lets
// the scorer handle each case exhaustively instead of probing interface{} at
// every comparison.
type Value interface {
	// Kind reports which variant this value is.
	Kind() ValueKind

	// MarshalJSON is required so property maps serialize to the natural JSON
	// shape (plain string, number, or array) rather than a wrapper object.
	json.Marshaler
}

// ValueKind identifies the variant of a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindStringList
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindStringList:
		return "string_list"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// StringValue is a single string property.
type StringValue string

func (StringValue) Kind() ValueKind { return KindString }

func (v StringValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

// NumberValue is a single numeric property. Numbers are never scored against
// the query text; they only participate in equality filters.
type NumberValue float64

func (NumberValue) Kind() ValueKind { return KindNumber }

func (v NumberValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(v))
}

// ListValue is an ordered list of strings. Element order is preserved from the
// store so scoring is deterministic.
type ListValue []string

func (ListValue) Kind() ValueKind { return KindStringList }

func (v ListValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(v))
}

// Properties is the typed property map carried by records and search
// results. It decodes from JSON through the same variant rules DecodeValue
// applies, so a serialized record round-trips back into typed values instead
// of failing on the Value interface.
type Properties map[string]Value

// UnmarshalJSON implements json.Unmarshaler. Properties with unsupported
// value shapes are dropped, mirroring DecodeProperties.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = DecodeProperties(raw)
	return nil
}

// DecodeValue converts a raw property value from a store record into the
// variant type. Unsupported shapes (maps, nested lists, nil) are reported so
// the caller can skip the property.
func DecodeValue(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case bool:
		// Booleans surface as their string form so they remain filterable.
		return StringValue(strconv.FormatBool(v)), nil
	case int:
		return NumberValue(v), nil
	case int32:
		return NumberValue(v), nil
	case int64:
		return NumberValue(v), nil
	case float32:
		return NumberValue(v), nil
	case float64:
		return NumberValue(v), nil
	case []string:
		return ListValue(append([]string(nil), v...)), nil
	case []interface{}:
		list := make(ListValue, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				// Non-string elements are dropped, not errors: the scorer
				// skips them anyway and filters only match string members.
				continue
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported property value type %T", raw)
	}
}

// DecodeProperties converts a raw property map from the store into typed
// values. Properties with unsupported value shapes are dropped.
func DecodeProperties(raw map[string]interface{}) map[string]Value {
	if len(raw) == 0 {
		return map[string]Value{}
	}
	props := make(map[string]Value, len(raw))
	for key, rawValue := range raw {
		value, err := DecodeValue(rawValue)
		if err != nil {
			continue
		}
		props[key] = value
	}
	return props
}

// EncodeProperties converts typed values back to the raw shapes the store
// drivers expect for parameterized writes.
func EncodeProperties(props map[string]Value) map[string]interface{} {
	raw := make(map[string]interface{}, len(props))
	for key, value := range props {
		switch v := value.(type) {
		case StringValue:
			raw[key] = string(v)
		case NumberValue:
			raw[key] = float64(v)
		case ListValue:
			raw[key] = []string(v)
		}
	}
	return raw
}
