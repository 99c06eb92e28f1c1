// Command token prints an admin bearer token signed with ADMIN_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "operator", "token subject")
	flag.Parse()

	cfg, err := config.LoadUnvalidated()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Admin.JWTSecret == "" {
		log.Fatal("ADMIN_JWT_SECRET is not set")
	}

	token, err := jwt.NewManager(cfg.Admin.JWTSecret, cfg.Admin.TokenExpiry).GenerateToken(*subject, jwt.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
