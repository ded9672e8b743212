// Command seed populates the database with sample activities and a test
// user for local development. Run after migrations: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/Naveenverma440/activity-booking-app/internal/activity"
	"github.com/Naveenverma440/activity-booking-app/internal/auth"
	"github.com/Naveenverma440/activity-booking-app/internal/config"
	"github.com/Naveenverma440/activity-booking-app/internal/db"
	"github.com/Naveenverma440/activity-booking-app/internal/logger"
	"github.com/Naveenverma440/activity-booking-app/internal/user"
)

type sampleActivity struct {
	title       string
	description string
	location    string
	startsIn    time.Duration
	capacity    int
}

var sampleActivities = []sampleActivity{
	{
		title:       "Cricket Match",
		description: "Friendly cricket match at the local ground. All skill levels welcome!",
		location:    "City Sports Complex, Ground A",
		startsIn:    7 * 24 * time.Hour,
		capacity:    22,
	},
	{
		title:       "Movie Night: Avengers",
		description: "Watch Avengers: Endgame on the big screen with surround sound and complimentary popcorn.",
		location:    "Community Center, Hall 3",
		startsIn:    3 * 24 * time.Hour,
		capacity:    50,
	},
	{
		title:       "Football Tournament",
		description: "Five-a-side football tournament. Form your team and compete for the trophy!",
		location:    "Urban Football Arena",
		startsIn:    14 * 24 * time.Hour,
		capacity:    40,
	},
	{
		title:       "Yoga in the Park",
		description: "Morning yoga session in the park. Bring your own mat. Suitable for all levels.",
		location:    "Central Park, East Lawn",
		startsIn:    2 * 24 * time.Hour,
		capacity:    30,
	},
	{
		title:       "Tech Meetup: AI Innovations",
		description: "Discussion on the latest AI innovations and their impact on society. Networking opportunity with tech professionals.",
		location:    "Tech Hub, Conference Room 2",
		startsIn:    5 * 24 * time.Hour,
		capacity:    35,
	},
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	userRepo := user.NewRepository(database)
	exists, err := userRepo.EmailExists(ctx, "admin@example.com")
	if err != nil {
		logger.Fatalf("Failed to check for test user: %v", err)
	}
	if !exists {
		passwordHash, err := auth.HashPassword("admin123")
		if err != nil {
			logger.Fatalf("Failed to hash password: %v", err)
		}
		if _, err := userRepo.Create(ctx, "Admin User", "admin@example.com", "9876543210", passwordHash); err != nil {
			logger.Fatalf("Failed to create test user: %v", err)
		}
		logger.Info("Test user created (admin@example.com / admin123)")
	} else {
		logger.Info("Test user already exists, skipping")
	}

	activityRepo := activity.NewRepository(database)
	now := time.Now()
	for _, sa := range sampleActivities {
		if _, err := activityRepo.Create(ctx, sa.title, sa.description, sa.location, now.Add(sa.startsIn), sa.capacity); err != nil {
			logger.Fatalf("Failed to seed activity %q: %v", sa.title, err)
		}
	}

	logger.Infof("%d activities seeded successfully", len(sampleActivities))
}
