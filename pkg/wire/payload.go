package wire

import "fmt"

// Payload is the loosely typed value map exchanged with the socket server.
// Values are the usual JSON kinds: string, float64/int, bool, nested Payload
// maps and []any lists.
type Payload map[string]any

// DecodeErrorKind classifies why a payload field could not be decoded.
type DecodeErrorKind int

const (
	// MissingField: the payload has no value under the expected key.
	MissingField DecodeErrorKind = iota
	// TypeMismatch: the value exists but has the wrong dynamic type.
	TypeMismatch
	// UnknownTag: a union discriminant holds a value no variant declares.
	UnknownTag
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case TypeMismatch:
		return "type mismatch"
	case UnknownTag:
		return "unknown tag"
	default:
		return "decode error"
	}
}

// DecodeError reports the first structural problem found while decoding a
// payload. Decoding is total: decoders return it instead of panicking.
type DecodeError struct {
	Field string
	Kind  DecodeErrorKind
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Field)
}

func missing(field string) error {
	return &DecodeError{Field: field, Kind: MissingField}
}

func mismatch(field string) error {
	return &DecodeError{Field: field, Kind: TypeMismatch}
}

func unknownTag(field string) error {
	return &DecodeError{Field: field, Kind: UnknownTag}
}

func stringField(p Payload, field string) (string, error) {
	v, ok := p[field]
	if !ok {
		return "", missing(field)
	}
	s, ok := v.(string)
	if !ok {
		return "", mismatch(field)
	}
	return s, nil
}

// intField accepts both native ints (in-process transports) and float64
// (anything that crossed encoding/json).
func intField(p Payload, field string) (int, error) {
	v, ok := p[field]
	if !ok {
		return 0, missing(field)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, mismatch(field)
	}
}

func boolField(p Payload, field string) (bool, error) {
	v, ok := p[field]
	if !ok {
		return false, missing(field)
	}
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(field)
	}
	return b, nil
}

func mapField(p Payload, field string) (Payload, error) {
	v, ok := p[field]
	if !ok {
		return nil, missing(field)
	}
	switch m := v.(type) {
	case Payload:
		return m, nil
	case map[string]any:
		return Payload(m), nil
	default:
		return nil, mismatch(field)
	}
}

func listField(p Payload, field string) ([]Payload, error) {
	v, ok := p[field]
	if !ok {
		return nil, missing(field)
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, mismatch(field)
	}
	items := make([]Payload, len(raw))
	for i, entry := range raw {
		switch m := entry.(type) {
		case Payload:
			items[i] = m
		case map[string]any:
			items[i] = Payload(m)
		default:
			return nil, mismatch(field)
		}
	}
	return items, nil
}
