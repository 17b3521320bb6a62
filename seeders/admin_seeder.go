package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"remplr/internal/entities"
	"remplr/internal/repositories"
	"remplr/pkg/config"
	"remplr/pkg/utils"
)

func seedAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD must both be set")
	}

	var exists bool
	if err := dbPool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists); err != nil {
		return err
	}
	if exists {
		log.Printf("    - Пользователь %q уже существует. Пропускаем.", username)
		return nil
	}

	hashed, err := utils.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(dbPool)
	_, err = userRepo.Create(ctx, entities.User{
		Username:  username,
		Password:  hashed,
		FirstName: "Site",
		LastName:  "Admin",
		Email:     username + "@remplr.local",
		IsAdmin:   true,
	})
	if err != nil {
		return fmt.Errorf("creating admin %q: %w", username, err)
	}

	log.Printf("    - Пользователь %q создан с правами администратора.", username)
	return nil
}
