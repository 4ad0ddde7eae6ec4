// Command admintoken mints a bearer token for the admin inbox API.
//
//	admintoken -id owner -email owner@example.com
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/domain"
	jwtinfra "github.com/portfolio-api/internal/infrastructure/jwt"
)

func main() {
	adminID := flag.String("id", "owner", "admin identifier placed in the sub claim")
	email := flag.String("email", "", "admin email")
	expiry := flag.Duration("expiry", 0, "token lifetime; defaults to JWT_EXPIRY")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if *expiry > 0 {
		cfg.JWTExpiry = *expiry
	}

	p, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}
	token, err := p.Sign(*adminID, *email, domain.RoleAdmin)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	log.Printf("token for %s expires %s", *adminID, time.Now().Add(cfg.JWTExpiry).Format(time.RFC3339))
	fmt.Println(token)
}
