package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"remplr/internal/entities"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []interface{}{"Day", "Meal", "Recipe", "Ready in (min)", "Servings"}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// MealPlanExport - готовая книга для отправки вложением.
type MealPlanExport struct {
	FileName    string
	ContentType string
	Content     *bytes.Buffer
}

func (s *MealPlanService) Export(ctx context.Context, id int) (*MealPlanExport, error) {
	plan, err := s.mealPlanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.mealPlanRepo.ExportRows(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := renderMealPlanWorkbook(plan, rows)
	if err != nil {
		return nil, err
	}

	name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(plan.Name), "_"), "_")
	if name == "" {
		name = "mealplan"
	}
	return &MealPlanExport{
		FileName:    fmt.Sprintf("%s_%d.xlsx", name, plan.ID),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

func renderMealPlanWorkbook(plan *entities.MealPlan, rows []entities.MealPlanExportRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Meal plan"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheet, "A1", "E1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			capitalize(row.MealDay),
			capitalize(row.MealType),
			row.RecipeTitle,
			optionalInt(row.ReadyInMinutes),
			optionalInt(row.Servings),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "A", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 40)
	_ = f.SetColWidth(sheet, "D", "E", 16)
	_ = f.SetDocProps(&excelize.DocProperties{Title: plan.Name, Creator: plan.CreatedBy})

	return f.WriteToBuffer()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func optionalInt(v *int32) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
