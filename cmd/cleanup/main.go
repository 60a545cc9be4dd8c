package main

import (
	"log/slog"

	"socialnet/backend/internal/config"
	"socialnet/backend/internal/database"
	"socialnet/backend/internal/repository"
	"socialnet/backend/internal/service"
)

// Sweeps declined friend request rows left behind by earlier versions that
// kept them instead of deleting. Intended to run from cron.
func main() {
	config.LoadConfig()
	database.Connect(config.AppConfig.DatabaseURL)

	slog.Info("Starting declined request cleanup...")

	friendRepo := repository.NewFriendRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)
	activityRepo := repository.NewActivityRepository(database.DB)
	activityLogger := service.NewActivityLogger(activityRepo, nil, "")
	relationships := service.NewRelationshipService(friendRepo, userRepo, activityLogger)

	purged, err := relationships.PurgeDeclinedRequests()
	if err != nil {
		slog.Error("Cleanup failed", "error", err)
		return
	}
	slog.Info("Cleanup completed", "purged", purged)
}
