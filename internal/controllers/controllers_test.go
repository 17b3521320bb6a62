package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"remplr/internal/dto"
	"remplr/internal/entities"
	"remplr/internal/infrastructure/bd"
	"remplr/internal/services"
	"remplr/pkg/contextkeys"
	apperrors "remplr/pkg/errors"
	"remplr/pkg/service"
	"remplr/pkg/types"
	"remplr/pkg/utils"
	"remplr/pkg/validation"
)

type fakeMealPlanService struct {
	caller      *service.Claims
	created     dto.CreateMealPlanDTO
	updateCalls int
	updateErr   error
	export      *services.MealPlanExport
}

func (f *fakeMealPlanService) Create(_ context.Context, caller *service.Claims, payload dto.CreateMealPlanDTO) (*dto.MealPlanDetailDTO, error) {
	f.caller = caller
	f.created = payload
	return &dto.MealPlanDetailDTO{MealPlan: &entities.MealPlan{ID: 1, Name: payload.Name, CreatedBy: caller.Username}}, nil
}

func (f *fakeMealPlanService) Get(context.Context, int) (*dto.MealPlanDetailDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeMealPlanService) List(context.Context, types.Filter) ([]entities.MealPlan, uint64, error) {
	return nil, 0, nil
}

func (f *fakeMealPlanService) Update(_ context.Context, _ *service.Claims, id int, _ db.Fields) (*entities.MealPlan, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &entities.MealPlan{ID: id}, nil
}

func (f *fakeMealPlanService) Delete(context.Context, int) error { return nil }

func (f *fakeMealPlanService) Owner(context.Context, int) (string, error) { return "alice", nil }

func (f *fakeMealPlanService) AddRecipe(context.Context, int, dto.MealPlanEntryDTO) (*entities.MealPlanRecipe, error) {
	return nil, nil
}

func (f *fakeMealPlanService) RemoveRecipe(context.Context, int, int) error { return nil }

func (f *fakeMealPlanService) Export(context.Context, int) (*services.MealPlanExport, error) {
	if f.export == nil {
		return nil, apperrors.ErrNotFound
	}
	return f.export, nil
}

type fakeIngredientService struct {
	importedBytes int
}

func (f *fakeIngredientService) Create(_ context.Context, payload dto.CreateIngredientDTO) (*entities.Ingredient, error) {
	return &entities.Ingredient{ID: 1, Name: payload.Name}, nil
}

func (f *fakeIngredientService) Get(context.Context, int) (*dto.IngredientDetailDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeIngredientService) List(context.Context, types.Filter) ([]entities.Ingredient, uint64, error) {
	return nil, 0, nil
}

func (f *fakeIngredientService) Update(context.Context, int, db.Fields) (*entities.Ingredient, error) {
	return nil, nil
}

func (f *fakeIngredientService) Delete(context.Context, int) error { return nil }

func (f *fakeIngredientService) Import(_ context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.importedBytes = len(data)
	return &dto.ImportResultDTO{Imported: 2}, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

func newSchemas(t *testing.T) *validation.SchemaValidator {
	t.Helper()
	schemas, err := validation.NewSchemaValidator()
	require.NoError(t, err)
	return schemas
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.HTTPResponse {
	t.Helper()
	var envelope utils.HTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func withClaims(req *http.Request, claims *service.Claims) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), contextkeys.ClaimsKey, claims))
}

func TestMealPlanController_CreatePassesCaller(t *testing.T) {
	e := newTestEcho()
	svc := &fakeMealPlanService{}
	ctrl := NewMealPlanController(svc, newSchemas(t), zap.NewNop())

	body := `{"name":"week one","recipes":[{"recipe_id":4,"meal_type":"lunch","meal_day":"monday"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/mealplans", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = withClaims(req, &service.Claims{Username: "alice", IsClient: true})
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.CreateMealPlan(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.caller)
	assert.Equal(t, "alice", svc.caller.Username)
	assert.Equal(t, "week one", svc.created.Name)
	assert.True(t, decode(t, rec).Status)
}

func TestMealPlanController_UpdateRejectsUnknownField(t *testing.T) {
	e := newTestEcho()
	svc := &fakeMealPlanService{}
	ctrl := NewMealPlanController(svc, newSchemas(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodPatch, "/api/mealplans/3", strings.NewReader(`{"owner":"bob"}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, ctrl.UpdateMealPlan(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.updateCalls)
}

func TestMealPlanController_UpdateMapsForbidden(t *testing.T) {
	e := newTestEcho()
	svc := &fakeMealPlanService{updateErr: &apperrors.AuthorizationError{Gate: "ensureAdmin", Authenticated: true}}
	ctrl := NewMealPlanController(svc, newSchemas(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodPatch, "/api/mealplans/3", strings.NewReader(`{"created_by":"bob"}`))
	req = withClaims(req, &service.Claims{Username: "alice"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, ctrl.UpdateMealPlan(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, svc.updateCalls)
}

func TestMealPlanController_ExportSetsAttachment(t *testing.T) {
	e := newTestEcho()
	svc := &fakeMealPlanService{export: &services.MealPlanExport{
		FileName:    "week_one_3.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     bytes.NewBufferString("PK-workbook"),
	}}
	ctrl := NewMealPlanController(svc, newSchemas(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/mealplans/3/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, ctrl.ExportMealPlan(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=week_one_3.xlsx", rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, svc.export.ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "PK-workbook", rec.Body.String())
}

func TestMealPlanController_ExportUnknownPlan(t *testing.T) {
	e := newTestEcho()
	ctrl := NewMealPlanController(&fakeMealPlanService{}, newSchemas(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/mealplans/9/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, ctrl.ExportMealPlan(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
}

func TestMealPlanController_BadID(t *testing.T) {
	e := newTestEcho()
	ctrl := NewMealPlanController(&fakeMealPlanService{}, newSchemas(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/mealplans/zero", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("zero")

	require.NoError(t, ctrl.FindMealPlan(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "id must be a positive integer")
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ingredients/import", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestIngredientController_ImportWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"name", "unit"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"flour", "g"}))
	workbook, err := f.WriteToBuffer()
	require.NoError(t, err)

	e := newTestEcho()
	svc := &fakeIngredientService{}
	ctrl := NewIngredientController(svc, newSchemas(t), zap.NewNop())
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.ImportIngredients(e.NewContext(multipartUpload(t, "pantry.xlsx", workbook.Bytes()), rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, workbook.Len(), svc.importedBytes)
	body, ok := decode(t, rec).Body.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, body["imported"])
}

func TestIngredientController_ImportRejectsPlainText(t *testing.T) {
	e := newTestEcho()
	svc := &fakeIngredientService{}
	ctrl := NewIngredientController(svc, newSchemas(t), zap.NewNop())
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.ImportIngredients(e.NewContext(multipartUpload(t, "pantry.xlsx", []byte("name,unit\nflour,g\n")), rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "unsupported file type")
	assert.Zero(t, svc.importedBytes)
}

func TestIngredientController_ImportWithoutFile(t *testing.T) {
	e := newTestEcho()
	ctrl := NewIngredientController(&fakeIngredientService{}, newSchemas(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/ingredients/import", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.ImportIngredients(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngredientController_CreateValidatesBody(t *testing.T) {
	e := newTestEcho()
	ctrl := NewIngredientController(&fakeIngredientService{}, newSchemas(t), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/ingredients", strings.NewReader(`{"aisle":"Baking"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.CreateIngredient(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode(t, rec).Status)
}
