package main

import (
	"fmt"
	"legal_aid_app_go/config"
	"legal_aid_app_go/db"
	"legal_aid_app_go/models"
	"legal_aid_app_go/services"
	"log"
	"os"
)

// cleanup-messages runs the referential-integrity sweep over the messaging
// subgraph and prints per-step counts, followed by a read-only validation
// report. Intended to run manually or as a cron job.
func main() {
	cfg := config.Load()

	var err error
	if cfg.TursoDatabaseURL != "" {
		err = db.InitializeTurso(cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment)
	} else {
		err = db.Initialize(cfg.DBPath, cfg.Environment)
	}
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.User{},
		&models.MessageThread{},
		&models.Message{},
		&models.ThreadParticipant{},
		&models.MessageReaction{},
		&models.MessageNotification{},
		&models.Attachment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	services.InitMetrics()

	fmt.Println("=== Messaging integrity sweep ===")
	result := services.RunSweep(db.DB)

	fmt.Printf("Orphan attachments deleted:    %d\n", result.OrphanAttachments)
	fmt.Printf("Orphan reactions deleted:      %d\n", result.OrphanReactions)
	fmt.Printf("Orphan notifications deleted:  %d\n", result.OrphanNotifications)
	fmt.Printf("Orphan participants deleted:   %d\n", result.OrphanParticipants)
	fmt.Printf("Empty threads deleted:         %d\n", result.EmptyThreads)
	fmt.Printf("Invalid messages deleted:      %d\n", result.InvalidMessages)
	fmt.Printf("Threads archived:              %d\n", result.ArchivedThreads)
	fmt.Printf("Total rows affected:           %d\n", result.Total())

	fmt.Println()
	fmt.Println("=== Validation report ===")
	report, err := services.ValidateIntegrity(db.DB)
	if err != nil {
		log.Fatalf("Validation pass failed: %v", err)
	}
	fmt.Printf("Messages with dangling thread:     %d\n", report.MessagesWithDanglingThread)
	fmt.Printf("Duplicate reaction groups:         %d\n", report.DuplicateReactionGroups)
	fmt.Printf("Participants in invalid threads:   %d\n", report.ParticipantsInInvalidThread)
	if report.Clean() {
		fmt.Println("No inconsistencies found.")
	}

	if result.StepErrors > 0 {
		log.Printf("[SWEEP] Completed with %d failed steps; affected categories remain unrepaired until the next run", result.StepErrors)
		os.Exit(1)
	}
}
