package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"remplr/internal/dto"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/utils"
	"remplr/pkg/validation"
)

// Распознаваемые заголовки. Обязателен только name.
var ingredientColumns = []string{"name", "aisle", "image", "amount", "unit", "original"}

// Строки импорта проверяются теми же тегами, что и POST /ingredients.
var rowValidator = validation.New()

// Import читает первый лист xlsx-книги и вставляет все строки одной
// транзакцией. Любая плохая строка отменяет весь импорт.
func (s *IngredientService) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewValidationError("file is not a readable xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	payloads, err := parseIngredientRows(rows)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for i, payload := range payloads {
			if _, err := s.ingredientRepo.Create(ctx, tx, payload); err != nil {
				return fmt.Errorf("importing ingredient %d (%s): %w", i+1, payload.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ингредиенты импортированы",
		zap.Int("count", len(payloads)),
		zap.String("sheet", sheets[0]),
		zap.String("request_id", utils.GetRequestIDFromContext(ctx)),
	)
	return &dto.ImportResultDTO{Imported: len(payloads)}, nil
}

// parseIngredientRows ищет строку заголовков (первую с ячейкой "name")
// и разбирает строки под ней. Пустые строки и итоги пропускаются.
func parseIngredientRows(rows [][]string) ([]dto.CreateIngredientDTO, error) {
	headerRow := -1
	idx := map[string]int{}
	for rIdx, row := range rows {
		for cIdx, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			for _, col := range ingredientColumns {
				if name == col {
					idx[col] = cIdx
				}
			}
		}
		if _, ok := idx["name"]; ok {
			headerRow = rIdx
			break
		}
		idx = map[string]int{}
	}
	if headerRow == -1 {
		return nil, apperrors.NewValidationError("header row with a \"name\" column not found")
	}

	payloads := make([]dto.CreateIngredientDTO, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1
		if isBlankRow(row) {
			continue
		}

		name := safeGet(row, idx, "name")
		if isTotalLine(name) {
			continue
		}
		if name == "" {
			return nil, apperrors.NewValidationError("row %d: name is required", lineNum)
		}

		payload := dto.CreateIngredientDTO{
			Name:     name,
			Aisle:    optionalString(safeGet(row, idx, "aisle")),
			Image:    optionalString(safeGet(row, idx, "image")),
			Unit:     optionalString(safeGet(row, idx, "unit")),
			Original: optionalString(safeGet(row, idx, "original")),
		}
		if raw := safeGet(row, idx, "amount"); raw != "" {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
			if err != nil || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
				return nil, apperrors.NewValidationError("row %d: amount %q is not a non-negative number", lineNum, raw)
			}
			payload.Amount = null.Float64From(amount)
		}
		if err := validateRow(payload, lineNum); err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}

	if len(payloads) == 0 {
		return nil, apperrors.NewValidationError("no ingredient rows below the header")
	}
	return payloads, nil
}

func validateRow(payload dto.CreateIngredientDTO, lineNum int) error {
	err := rowValidator.Validate(&payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError("row %d: %s fails %s=%s", lineNum, strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
	}
	return apperrors.NewValidationError("row %d: %v", lineNum, err)
}

func safeGet(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func optionalString(v string) null.String {
	return null.NewString(v, v != "")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isTotalLine(name string) bool {
	v := strings.ToLower(name)
	return v == "total" || strings.HasPrefix(v, "total:")
}
