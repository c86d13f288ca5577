package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/config"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/database"
)

const usage = `
SilkLine Expo - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run all migrations (SQL + GORM)
  status      Show database connection status
  seed        Seed companies and accounts only
  seed-dev    Seed with development/demo data

Flags:
  -migrations string   Path to migrations directory (default "migrations")
  -admin-email string  Admin email for seeding (default "admin@silkline.trade")
  -admin-pass string   Admin password for seeding (default "Admin@123!")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed
  go run cmd/migrate/main.go seed-dev
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")
	adminEmail := flag.String("admin-email", "admin@silkline.trade", "Admin email for seeding")
	adminPass := flag.String("admin-pass", "Admin@123!", "Admin password for seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	database.Connect(cfg)
	defer database.Close()

	switch command {
	case "up":
		runMigrationsUp(*migrationsDir)
	case "status":
		showStatus()
	case "seed":
		runSeedMinimal(*adminEmail, *adminPass)
	case "seed-dev":
		runSeedDevelopment(*adminEmail, *adminPass)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(migrationsDir string) {
	log.Println("Running migrations...")

	if err := database.RunFullMigration(migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully!")
}

func showStatus() {
	log.Println("Checking database status...")

	if err := database.HealthCheck(); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	tables := []string{"companies", "users", "inquiries", "inquiry_quotes", "messages", "orders"}
	for _, table := range tables {
		exists, err := database.TableExists(table)
		if err != nil {
			log.Printf("Error checking table %s: %v", table, err)
			continue
		}
		if exists {
			count, _ := database.TableCount(table)
			log.Printf("Table %-20s exists (%d rows)", table, count)
		} else {
			log.Printf("Table %-20s does not exist", table)
		}
	}
}

func runSeedMinimal(adminEmail, adminPass string) {
	log.Println("Seeding database (minimal)...")

	cfg := database.DefaultSeedConfig()
	cfg.AdminEmail = adminEmail
	cfg.AdminPassword = adminPass

	result, err := database.SeedMinimal(cfg)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d companies, %d users", len(result.Companies), len(result.Users))
}

func runSeedDevelopment(adminEmail, adminPass string) {
	log.Println("Seeding database (development mode)...")

	cfg := database.DefaultSeedConfig()
	cfg.AdminEmail = adminEmail
	cfg.AdminPassword = adminPass

	result, err := database.Seed(cfg)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seed Summary:")
	log.Printf("   - Companies: %d", len(result.Companies))
	log.Printf("   - Users: %d", len(result.Users))
	log.Printf("   - Inquiries: %d", len(result.Inquiries))
	log.Println("Development seeding completed!")
}
