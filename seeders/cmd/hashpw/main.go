// hashpw печатает bcrypt-хеш аргумента с настроенной стоимостью,
// чтобы задать пароль прямо в базе.
package main

import (
	"fmt"
	"log"
	"os"

	"remplr/pkg/config"
	"remplr/pkg/utils"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}

	cfg := config.New()
	hashed, err := utils.HashPassword(os.Args[1], cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("ошибка хеширования: %v", err)
	}

	fmt.Println(hashed)
}
