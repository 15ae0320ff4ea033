// Ops tool to create reviewer accounts with properly hashed passwords.
// cmd/seed-reviewer/main.go
package main

import (
	"flag"
	"log"
	"strings"
	"student-concern-api/config"
	"student-concern-api/controllers"
	"student-concern-api/models"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "", "reviewer login email (required)")
	password := flag.String("password", "", "initial password (required)")
	name := flag.String("name", "", "full name (required)")
	role := flag.String("role", "", "reviewer role: ssc, usc or faculty (required)")
	department := flag.String("department", "", "department, empty for the general SSC pair")
	partnerID := flag.Int("partner", 0, "reviewer_id of the paired SSC representative")
	parentID := flag.Int("parent", 0, "reviewer_id of the supervising reviewer")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" || *role == "" {
		flag.Usage()
		log.Fatal("email, password, name and role are required")
	}
	reviewerRole := models.ReviewerRole(strings.ToLower(strings.TrimSpace(*role)))
	if !models.IsValidRole(reviewerRole) {
		log.Fatalf("unknown role %q, want ssc, usc or faculty", *role)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	hashed, err := controllers.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	reviewer := models.Reviewer{
		Email:    strings.TrimSpace(*email),
		Password: hashed,
		FullName: strings.TrimSpace(*name),
		Role:     reviewerRole,
	}
	if dept := strings.TrimSpace(*department); dept != "" {
		reviewer.Department = &dept
	}
	if *partnerID != 0 {
		reviewer.PartnerID = partnerID
	}
	if *parentID != 0 {
		reviewer.ParentID = parentID
	}

	if err := config.DB.Create(&reviewer).Error; err != nil {
		log.Fatal("Failed to create reviewer:", err)
	}

	log.Printf("Created %s reviewer %s (reviewer_id=%d)\n", reviewer.Role, reviewer.Email, reviewer.ReviewerID)
}
