// Command main runs the database seeder for Upskillrr.
package main

import (
	"flag"
	"log"

	"github.com/itsFiz/upskillrr/internal/config"
	"github.com/itsFiz/upskillrr/internal/database"
	"github.com/itsFiz/upskillrr/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of community members to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d community members, clean=%v\n", *numUsers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err = database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedFixtures(); err != nil {
		log.Fatalf("Fixture seeding failed: %v", err)
	}

	if err := s.SeedCommunity(*numUsers); err != nil {
		log.Fatalf("Community seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Printf("All demo users have the password: %s", seed.SeedPassword)
}
