package main

import (
	"context"
	"flag"
	"log"
	"os"

	"remplr/pkg/config"
	"remplr/pkg/database/postgresql"
	"remplr/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 Сидеры remplr")
	log.Println("======================================================")

	runAdmin := flag.Bool("admin", false, "create the admin account from SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD")
	runDemo := flag.Bool("demo", false, "insert demo ingredients and recipes")
	flag.Parse()

	if !*runAdmin && !*runDemo {
		log.Println("❌ Не выбран ни один сидер.")
		log.Println("")
		log.Println("Флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры:")
		log.Println("  go run ./seeders/cmd/seed -admin")
		log.Println("  go run ./seeders/cmd/seed -admin -demo")
		return
	}

	cfg := config.New()
	dbPool, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к базе: %v", err)
	}
	defer dbPool.Close()

	if *runAdmin {
		seeders.SeedAdmin(dbPool, cfg, os.Getenv("SEED_ADMIN_USERNAME"), os.Getenv("SEED_ADMIN_PASSWORD"))
		log.Println("======================================================")
	}
	if *runDemo {
		seeders.SeedDemo(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Сидинг завершён.")
}
