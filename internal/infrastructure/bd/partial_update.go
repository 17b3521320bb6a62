package db

import (
	"sort"
	"strings"
	"unicode"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	apperrors "remplr/pkg/errors"
)

// FieldNameMap переводит имена полей API в имена колонок.
type FieldNameMap map[string]string

func (m FieldNameMap) Column(name string) string {
	if column, ok := m[name]; ok && column != "" {
		return column
	}
	return ToSnakeCase(name)
}

// UpdateSpec - SET-часть UPDATE. Аргументы идут в порядке плейсхолдеров
// AssignmentClause.
type UpdateSpec struct {
	AssignmentClause string
	Arguments        []interface{}
}

// NextPlaceholder - номер первого параметра после присваиваний.
func (u *UpdateSpec) NextPlaceholder() int {
	return len(u.Arguments) + 1
}

func BuildUpdate(fields Fields, nameMap FieldNameMap) (*UpdateSpec, error) {
	return BuildUpdateWithFormat(fields, nameMap, sq.Dollar)
}

func BuildUpdateWithFormat(fields Fields, nameMap FieldNameMap, format sq.PlaceholderFormat) (*UpdateSpec, error) {
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("no data")
	}

	assignments := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, field := range fields {
		column := nameMap.Column(field.Name)
		// формат плейсхолдеров переписывает каждый "?" в выражении
		if column == "" || strings.ContainsRune(column, '?') {
			return nil, apperrors.NewValidationError("invalid field name %q", field.Name)
		}
		assignments = append(assignments, pgx.Identifier{column}.Sanitize()+"=?")
		args = append(args, field.Value)
	}

	clause, err := format.ReplacePlaceholders(strings.Join(assignments, ", "))
	if err != nil {
		return nil, err
	}

	return &UpdateSpec{AssignmentClause: clause, Arguments: args}, nil
}

// BuildStrictUpdate отклоняет любое поле, которого нет в nameMap.
func BuildStrictUpdate(fields Fields, nameMap FieldNameMap) (*UpdateSpec, error) {
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("no data")
	}

	var unknown []string
	for _, field := range fields {
		if _, ok := nameMap[field.Name]; !ok {
			unknown = append(unknown, field.Name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &apperrors.ValidationError{
			Message: "unknown fields: " + strings.Join(unknown, ", "),
			Fields:  unknown,
		}
	}

	return BuildUpdate(fields, nameMap)
}

// ToSnakeCase переводит camelCase в snake_case. Строчные и snake_case
// строки возвращаются без изменений.
func ToSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 && runes[i-1] != '_' {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
