package services

import (
	"legal_aid_app_go/models"
	"log"

	"gorm.io/gorm"
)

// SweepResult holds the per-step row counts of one integrity sweep.
type SweepResult struct {
	OrphanAttachments   int64 `json:"orphan_attachments"`
	OrphanReactions     int64 `json:"orphan_reactions"`
	OrphanNotifications int64 `json:"orphan_notifications"`
	OrphanParticipants  int64 `json:"orphan_participants"`
	EmptyThreads        int64 `json:"empty_threads"`
	InvalidMessages     int64 `json:"invalid_messages"`
	ArchivedThreads     int64 `json:"archived_threads"`

	StepErrors int `json:"step_errors"`
}

// Total returns the number of rows deleted or updated by the sweep.
func (r *SweepResult) Total() int64 {
	return r.OrphanAttachments + r.OrphanReactions + r.OrphanNotifications +
		r.OrphanParticipants + r.EmptyThreads + r.InvalidMessages + r.ArchivedThreads
}

// maxSweepPasses bounds the pass loop; the orphan chains in the messaging
// graph are at most a few links deep (message -> attachment, thread ->
// message), so a handful of passes always suffices on consistent data.
const maxSweepPasses = 5

// RunSweep restores referential consistency in the messaging subgraph.
//
// Steps run in a strict order because each step's deletions change the
// eligibility of later steps. A deletion in a late step can also strand rows
// that only an earlier step removes (deleting an undeliverable message leaves
// its attachments orphaned and may empty its thread), so the ordered pass
// repeats until a full pass affects no rows: one call converges. The sweep is
// best-effort: a failed step is logged and counted but never aborts the run,
// so each step must stay independently idempotent.
func RunSweep(db *gorm.DB) *SweepResult {
	result := &SweepResult{}

	steps := []struct {
		name string
		run  func(*gorm.DB) (int64, error)
		dest *int64
	}{
		{"orphan_attachments", deleteOrphanAttachments, &result.OrphanAttachments},
		{"orphan_reactions", deleteOrphanReactions, &result.OrphanReactions},
		{"orphan_notifications", deleteOrphanNotifications, &result.OrphanNotifications},
		{"orphan_participants", deleteOrphanParticipants, &result.OrphanParticipants},
		{"empty_threads", deleteEmptyThreads, &result.EmptyThreads},
		{"invalid_messages", deleteInvalidMessages, &result.InvalidMessages},
		{"archive_threads", archiveFullyArchivedThreads, &result.ArchivedThreads},
	}

	for pass := 0; pass < maxSweepPasses; pass++ {
		var passRows int64
		for _, step := range steps {
			rows, err := step.run(db)
			recordSweepStep(step.name, rows, err)
			if err != nil {
				result.StepErrors++
				log.Printf("[SWEEP] Step %s failed: %v", step.name, err)
				continue
			}
			*step.dest += rows
			passRows += rows
			if rows > 0 {
				log.Printf("[SWEEP] Step %s affected %d rows", step.name, rows)
			}
		}
		if passRows == 0 {
			break
		}
	}

	sweepRunsTotal.Inc()
	return result
}

func liveMessageIDs(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).Model(&models.Message{}).Select("id")
}

func liveUserIDs(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).Model(&models.User{}).Select("id")
}

func liveThreadIDs(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).Model(&models.MessageThread{}).Select("id")
}

// Step 1: attachments whose parent message no longer exists.
func deleteOrphanAttachments(db *gorm.DB) (int64, error) {
	res := db.Where("message_id NOT IN (?)", liveMessageIDs(db)).Delete(&models.Attachment{})
	return res.RowsAffected, res.Error
}

// Step 2: reactions whose message or user no longer exists.
func deleteOrphanReactions(db *gorm.DB) (int64, error) {
	res := db.Where("message_id NOT IN (?) OR user_id NOT IN (?)",
		liveMessageIDs(db), liveUserIDs(db)).Delete(&models.MessageReaction{})
	return res.RowsAffected, res.Error
}

// Step 3: notifications whose message or user no longer exists.
func deleteOrphanNotifications(db *gorm.DB) (int64, error) {
	res := db.Where("message_id NOT IN (?) OR user_id NOT IN (?)",
		liveMessageIDs(db), liveUserIDs(db)).Delete(&models.MessageNotification{})
	return res.RowsAffected, res.Error
}

// Step 4: participants whose thread or user no longer exists.
func deleteOrphanParticipants(db *gorm.DB) (int64, error) {
	res := db.Where("thread_id NOT IN (?) OR user_id NOT IN (?)",
		liveThreadIDs(db), liveUserIDs(db)).Delete(&models.ThreadParticipant{})
	return res.RowsAffected, res.Error
}

// Step 5: threads left with zero messages. Runs after the dangling-children
// steps so a thread with valid messages but dangling extras survives.
func deleteEmptyThreads(db *gorm.DB) (int64, error) {
	threadsWithMessages := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Message{}).
		Select("thread_id").
		Where("thread_id IS NOT NULL")
	res := db.Where("id NOT IN (?)", threadsWithMessages).Delete(&models.MessageThread{})
	return res.RowsAffected, res.Error
}

// Step 6: messages without a live sender or recipient can never be delivered.
func deleteInvalidMessages(db *gorm.DB) (int64, error) {
	res := db.Where(
		"sender_id IS NULL OR recipient_id IS NULL OR sender_id NOT IN (?) OR recipient_id NOT IN (?)",
		liveUserIDs(db), liveUserIDs(db),
	).Delete(&models.Message{})
	return res.RowsAffected, res.Error
}

// Step 7: archive threads whose messages are all archived. Threads with zero
// messages are excluded: the empty-thread case belongs to step 5, and a
// thread that survived it (e.g. because that step failed) must not be
// archived on vacuous grounds.
func archiveFullyArchivedThreads(db *gorm.DB) (int64, error) {
	fullyArchived := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Message{}).
		Select("thread_id").
		Where("thread_id IS NOT NULL").
		Group("thread_id").
		Having("count(*) = sum(is_archived)")
	res := db.Model(&models.MessageThread{}).
		Where("is_archived = ? AND id IN (?)", false, fullyArchived).
		Update("is_archived", true)
	return res.RowsAffected, res.Error
}

// ValidationReport is the outcome of the read-only consistency pass.
type ValidationReport struct {
	MessagesWithDanglingThread  int64 `json:"messages_with_dangling_thread"`
	DuplicateReactionGroups     int64 `json:"duplicate_reaction_groups"`
	ParticipantsInInvalidThread int64 `json:"participants_in_invalid_threads"`
}

// Clean reports whether the validation pass found nothing to flag.
func (r *ValidationReport) Clean() bool {
	return r.MessagesWithDanglingThread == 0 &&
		r.DuplicateReactionGroups == 0 &&
		r.ParticipantsInInvalidThread == 0
}

// ValidateIntegrity reports remaining inconsistencies without mutating
// anything. Used after a sweep to surface what the sweep does not repair.
func ValidateIntegrity(db *gorm.DB) (*ValidationReport, error) {
	report := &ValidationReport{}

	// Messages pointing at a thread that no longer exists
	if err := db.Model(&models.Message{}).
		Where("thread_id IS NOT NULL AND thread_id NOT IN (?)", liveThreadIDs(db)).
		Count(&report.MessagesWithDanglingThread).Error; err != nil {
		return nil, err
	}

	// Same message+user+type reacted more than once
	type reactionGroup struct {
		MessageID string
		UserID    string
		Type      string
		N         int64
	}
	var groups []reactionGroup
	if err := db.Model(&models.MessageReaction{}).
		Select("message_id, user_id, type, count(*) as n").
		Group("message_id, user_id, type").
		Having("count(*) > 1").
		Scan(&groups).Error; err != nil {
		return nil, err
	}
	report.DuplicateReactionGroups = int64(len(groups))

	// Participants of threads that hold no deliverable message
	validThreads := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Message{}).
		Select("thread_id").
		Where("thread_id IS NOT NULL").
		Where("sender_id IN (?)", liveUserIDs(db)).
		Where("recipient_id IN (?)", liveUserIDs(db))
	if err := db.Model(&models.ThreadParticipant{}).
		Where("thread_id NOT IN (?)", validThreads).
		Count(&report.ParticipantsInInvalidThread).Error; err != nil {
		return nil, err
	}

	return report, nil
}
