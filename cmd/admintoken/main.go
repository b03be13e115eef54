// admintoken mints a bearer token for the protected admin routes,
// signed with the configured JWT_SECRET. Run it on the host that holds
// the .env and pass the output as "Authorization: Bearer <token>".
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"daejeonmate/internal/infra"
	"daejeonmate/pkg/utils"
)

func main() {
	role := flag.String("role", "admin", "role claim for the token")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	token, err := utils.CreateToken(uuid.New(), *role, cfg.JWTSecret, *ttl)
	if err != nil {
		log.Fatalf("Token error: %v", err)
	}

	fmt.Println(token)
}
