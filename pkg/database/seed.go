package database

import (
	"log"

	"github.com/google/uuid"
)

// SeedDemoUser provisions the demo account if it does not exist yet.
// Runs once at startup; a no-op when email is empty or the user is present.
func SeedDemoUser(email, name string) error {
	if email == "" {
		return nil
	}

	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := DB.Exec(
		"INSERT INTO users (id, name, email) VALUES (?, ?, ?)",
		uuid.New().String(), name, email,
	)
	if err != nil {
		return err
	}

	log.Printf("Seeded demo user: %s", email)
	return nil
}
