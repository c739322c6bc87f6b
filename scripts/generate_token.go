package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	userID := flag.String("user", "", "User ID for the token")
	roles := flag.String("roles", "", "Comma-separated list of roles (superadmin,director,docente,apoderado,estudiante)")
	expirationHours := flag.Int("exp", 24, "Token expiration in hours")
	tenantID := flag.Uint("tenant", 0, "Numeric id of the user's home tenant")
	flag.Parse()

	if *userID == "" {
		log.Fatal("User ID is required")
	}
	if *tenantID == 0 {
		log.Fatal("Tenant ID is required")
	}

	rolesList := []string{}
	if *roles != "" {
		for _, r := range strings.Split(*roles, ",") {
			r = strings.TrimSpace(r)
			if !domain.IsValidRole(r) {
				log.Fatalf("Unknown role %q", r)
			}
			rolesList = append(rolesList, r)
		}
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		secret = "your-default-secret-key"
	}

	token, err := middleware.GenerateToken(secret, time.Duration(*expirationHours)*time.Hour, *userID, *tenantID, rolesList)
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Generated JWT Token:\n%s\n", token)
}
