package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"remplr/pkg/config"
)

// SeedAdmin создаёт администратора, если его ещё нет.
func SeedAdmin(dbPool *pgxpool.Pool, cfg *config.Config, username, password string) {
	ctx := context.Background()
	log.Println("▶️  Создаём администратора...")

	if err := seedAdmin(ctx, dbPool, cfg, username, password); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Администратор готов")
}

// SeedDemo заливает демо-каталог: ингредиенты, рецепты и их связи.
func SeedDemo(dbPool *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Заливаем демо-каталог...")

	ingredientIDs, err := seedIngredients(ctx, dbPool)
	if err != nil {
		log.Fatalf("❌ Ошибка сидинга ингредиентов: %v", err)
	}
	if err := seedRecipes(ctx, dbPool, ingredientIDs); err != nil {
		log.Fatalf("❌ Ошибка сидинга рецептов: %v", err)
	}
	log.Println("✅ Демо-каталог готов")
}
