package main

import (
	"context"
	"flag"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jordanlanch/salespipe/config"
	"github.com/jordanlanch/salespipe/pkg/database"
	"github.com/jordanlanch/salespipe/pkg/testdata"
)

func main() {
	var (
		managers    = flag.Int("managers", 2, "number of manager accounts")
		reps        = flag.Int("reps", 6, "number of sales executive accounts")
		leadsPerRep = flag.Int("leads-per-rep", 25, "leads assigned to each sales executive")
		password    = flag.String("password", "password123", "password for every seeded account")
		seed        = flag.Int64("seed", 0, "random seed (0 uses a random one)")
	)
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	cfg := config.Load()

	db, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	seedCfg := testdata.SeedConfig{
		Managers:        *managers,
		SalesReps:       *reps,
		LeadsPerRep:     *leadsPerRep,
		ActivityChance:  0.7,
		DefaultPassword: *password,
	}

	log.Printf("🌱 Seeding demo data (%d managers, %d reps, %d leads/rep)...",
		seedCfg.Managers, seedCfg.SalesReps, seedCfg.LeadsPerRep)

	if err := testdata.Seed(context.Background(), db.Ent, seedCfg); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✅ Demo data seeded. Admin login: admin@salespipe.io / %s", *password)
}
