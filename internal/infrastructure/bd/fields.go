package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	apperrors "remplr/pkg/errors"
)

// Field - одно присваивание колонки, запрошенное клиентом.
type Field struct {
	Name  string
	Value interface{}
}

// Fields сохраняет порядок ключей, в котором их прислал клиент.
type Fields []Field

func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

func (f Fields) Get(name string) (interface{}, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Set заменяет значение name на месте или добавляет его в конец.
func (f Fields) Set(name string, value interface{}) Fields {
	for i := range f {
		if f[i].Name == name {
			out := make(Fields, len(f))
			copy(out, f)
			out[i].Value = value
			return out
		}
	}
	out := make(Fields, len(f), len(f)+1)
	copy(out, f)
	return append(out, Field{Name: name, Value: value})
}

func (f Fields) Without(name string) Fields {
	out := make(Fields, 0, len(f))
	for _, field := range f {
		if field.Name != name {
			out = append(out, field)
		}
	}
	return out
}

// FieldsFromJSON разбирает JSON-объект с сохранением порядка ключей. Целые
// числа становятся int64, остальные float64. Повторный ключ остаётся на
// первой позиции с последним значением.
func FieldsFromJSON(data []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, apperrors.NewValidationError("request body is not valid JSON")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, apperrors.NewValidationError("request body must be a JSON object")
	}

	var fields Fields
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, apperrors.NewValidationError("request body is not valid JSON")
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, apperrors.NewValidationError("request body is not valid JSON")
		}

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return nil, apperrors.NewValidationError("invalid value for %q", key)
		}
		fields = fields.Set(key, normalizeNumbers(raw))
	}

	if _, err := dec.Token(); err != nil {
		return nil, apperrors.NewValidationError("request body is not valid JSON")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, apperrors.NewValidationError("unexpected data after JSON object")
	}

	return fields, nil
}

func normalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return val
	}
}
