package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/config"
	"github.com/thanhlp18/homestay-booking-sub000/internal/database"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/upload"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

// Removes ID-card images that were uploaded but never attached to a booking.
// Meant to run from cron.
func main() {
	maxAge := flag.Duration("max-age", 7*24*time.Hour, "minimum age of an unreferenced upload before it is removed")
	flag.Parse()

	log := logrus.New()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database.URL, log)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	svc := upload.NewService(repository.NewUploadRepository(db), cfg.Upload.Dir, cfg.Upload.StaticBase, cfg.Upload.MaxBytes)
	removed, err := svc.PurgeUnreferenced(context.Background(), *maxAge)
	if err != nil {
		log.WithField("removed", removed).Fatalf("upload cleanup failed: %v", err)
	}
	log.WithFields(logrus.Fields{"removed": removed, "max_age": maxAge.String()}).Info("upload cleanup completed")
}
