package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/spec-kit/dashboard-service/internal/config"
	"github.com/spec-kit/dashboard-service/internal/domain"
	"github.com/spec-kit/dashboard-service/internal/observability"
	"github.com/spec-kit/dashboard-service/internal/persistence"
	"github.com/spec-kit/dashboard-service/internal/repository"
)

type seedMember struct {
	role     string
	fullName string
	status   domain.MemberStatus
	date     string
	task     string
	category domain.Category
}

var initialRoster = []seedMember{
	{
		role:     "Minister of Culture and Media",
		fullName: "Sarah Johnson",
		status:   domain.StatusOnline,
		date:     "2024-01-15",
		task:     "Organize a poetry night",
		category: domain.CategoryAdministration,
	},
	{
		role:     "Deputy Minister",
		fullName: "Michael Chen",
		status:   domain.StatusOffline,
		date:     "2024-01-16",
		task:     "Review cultural budget proposals",
		category: domain.CategoryAdministration,
	},
	{
		role:     "Weather Bulletin Journalist",
		fullName: "Emma Rodriguez",
		status:   domain.StatusOnline,
		date:     "2024-01-15",
		task:     "Report about the weather",
		category: domain.CategoryJournalism,
	},
	{
		role:     "News Editor",
		fullName: "David Kim",
		status:   domain.StatusOnline,
		date:     "2024-01-17",
		task:     "Edit morning news bulletin",
		category: domain.CategoryJournalism,
	},
	{
		role:     "Security Chief",
		fullName: "Lisa Thompson",
		status:   domain.StatusOffline,
		date:     "2024-01-16",
		task:     "Conduct security briefing",
		category: domain.CategorySecurity,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()
	log.Println("Connected to database")

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	rosterRepo := repository.NewRosterRepository(pg.PoolHandle())

	existing, err := rosterRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to check roster: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Roster already has %d entries, nothing to do", len(existing))
		return
	}

	for _, m := range initialRoster {
		entry := &domain.RosterEntry{
			ID:       uuid.NewString(),
			Role:     m.role,
			FullName: m.fullName,
			Status:   m.status,
			Date:     m.date,
			Task:     m.task,
			Category: m.category,
		}
		if err := rosterRepo.Create(ctx, entry); err != nil {
			log.Fatalf("Failed to seed %s: %v", m.fullName, err)
		}
		log.Printf("Seeded roster member: %s (%s)", m.fullName, m.category)
	}

	log.Printf("Seeding complete: %d roster members created", len(initialRoster))
}
