package entities

type MealPlan struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	CreatedBy string `json:"created_by" db:"created_by"`
}

type MealPlanRecipe struct {
	ID         int    `json:"id" db:"id"`
	MealPlanID int    `json:"meal_plan_id" db:"meal_plan_id"`
	RecipeID   int    `json:"recipe_id" db:"recipe_id"`
	MealType   string `json:"meal_type" db:"meal_type"`
	MealDay    string `json:"meal_day" db:"meal_day"`
}

// MealPlanExportRow - одна строка выгрузки плана питания.
type MealPlanExportRow struct {
	MealDay        string
	MealType       string
	RecipeTitle    string
	ReadyInMinutes *int32
	Servings       *int32
}
