package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/sirawit/asset-borrowing/internal/asset"
	"github.com/sirawit/asset-borrowing/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users and assets for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"borrowing", "assets", "users"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		users := []struct {
			Username string
			Role     string
		}{
			{"alice", auth.RoleStudent},
			{"somchai", auth.RoleLender},
			{"warin", auth.RoleStaff},
		}

		for _, u := range users {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE username = $1", u.Username).Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Username)
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO users (username, password_hash, role, created_at) VALUES ($1, $2, $3, now())",
				u.Username, string(hash), u.Role,
			); err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Println("Seeded user:", u.Username)
		}

		assets := []string{
			"Dell Latitude 5440",
			"Canon EOS R50",
			"Epson EB-X06 Projector",
			"Logitech MX Master 3",
			"Wacom Intuos M",
		}

		for _, name := range assets {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM assets WHERE asset_name = $1", name).Scan(&exists); err == nil {
				fmt.Printf("asset %q already exists, skipping\n", name)
				continue
			}
			if _, err := db.Exec(
				"INSERT INTO assets (asset_name, status) VALUES ($1, $2)",
				name, asset.StatusAvailable,
			); err != nil {
				log.Fatalf("failed to insert asset %q: %v", name, err)
			}
			fmt.Println("Seeded asset:", name)
		}

		fmt.Println("Seeding complete")
	},
}
