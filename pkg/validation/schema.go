package validation

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	apperrors "remplr/pkg/errors"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	UserUpdateSchema       = "userUpdate"
	IngredientUpdateSchema = "ingredientUpdate"
	RecipeUpdateSchema     = "recipeUpdate"
	MealPlanUpdateSchema   = "mealPlanUpdate"
)

// SchemaValidator проверяет сырые JSON-тела по встроенным схемам. Схема
// адресуется именем файла без расширения.
type SchemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

func NewSchemaValidator() (*SchemaValidator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("cannot read schema dir: %w", err)
	}

	v := &SchemaValidator{schemas: make(map[string]*gojsonschema.Schema)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read schema %s: %w", entry.Name(), err)
		}

		var header struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("parse error in schema %s: %w", entry.Name(), err)
		}
		if header.ID == "" {
			return nil, fmt.Errorf("schema %s does not contain $id", entry.Name())
		}

		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", entry.Name(), err)
		}
		v.schemas[strings.TrimSuffix(entry.Name(), ".json")] = compiled
	}

	return v, nil
}

func (v *SchemaValidator) HasSchema(schemaID string) bool {
	_, ok := v.schemas[schemaID]
	return ok
}

// Validate возвращает ValidationError со всеми нарушениями.
func (v *SchemaValidator) Validate(schemaID string, body []byte) error {
	schema, ok := v.schemas[schemaID]
	if !ok {
		return apperrors.NewContractViolation("there is no schema %s", schemaID)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewValidationError("request body is not valid JSON")
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return &apperrors.ValidationError{
		Message: "the document is not valid: " + strings.Join(msgs, "; "),
		Fields:  msgs,
	}
}
