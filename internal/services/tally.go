package services

import (
	"log"
	"sync"
	"time"

	"campuslink/internal/db"
	"campuslink/internal/models"
)

// tallyTarget identifies a post or comment whose counters need recounting.
type tallyTarget struct {
	Type string
	ID   uint
}

// TallyService recounts a target's vote tallies and comment count from the
// underlying rows in the background. The counters are maintained inline by
// the vote/comment transactions; this worker repairs whatever drift is left
// behind by interrupted writes or out-of-band changes.
type TallyService struct {
	queue   chan tallyTarget
	pending map[tallyTarget]bool
	mu      sync.Mutex
}

var (
	tallyService *TallyService
	once         sync.Once
)

// GetTallyService returns the singleton reconciliation service.
func GetTallyService() *TallyService {
	once.Do(func() {
		tallyService = &TallyService{
			queue:   make(chan tallyTarget, 1000), // buffered so callers never block
			pending: make(map[tallyTarget]bool),
		}
		go tallyService.worker()
	})
	return tallyService
}

// ScheduleSync queues a target for recounting. Targets already queued are
// skipped so a burst of votes on one post costs a single recount.
func (s *TallyService) ScheduleSync(targetType string, targetID uint) {
	target := tallyTarget{Type: targetType, ID: targetID}

	s.mu.Lock()
	if s.pending[target] {
		s.mu.Unlock()
		return
	}
	s.pending[target] = true
	s.mu.Unlock()

	select {
	case s.queue <- target:
	default:
		s.mu.Lock()
		delete(s.pending, target)
		s.mu.Unlock()
		log.Printf("tally queue full, skipping %s %d", targetType, targetID)
	}
}

func (s *TallyService) worker() {
	batch := make([]tallyTarget, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case target := <-s.queue:
			batch = append(batch, target)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *TallyService) processBatch(targets []tallyTarget) {
	for _, target := range targets {
		s.syncTarget(target)

		s.mu.Lock()
		delete(s.pending, target)
		s.mu.Unlock()
	}
}

func (s *TallyService) syncTarget(target tallyTarget) {
	SyncTallies(target.Type, target.ID)
}

// SyncTallies recounts one target's counters from the vote and comment rows
// and writes them back. Exported for synchronous use where the caller needs
// the repair to land immediately.
func SyncTallies(targetType string, targetID uint) {
	var upvotes, downvotes int64
	db.DB.Model(&models.Vote{}).
		Where("target_type = ? AND target_id = ? AND value = ?", targetType, targetID, VoteUp).
		Count(&upvotes)
	db.DB.Model(&models.Vote{}).
		Where("target_type = ? AND target_id = ? AND value = ?", targetType, targetID, VoteDown).
		Count(&downvotes)

	updates := map[string]interface{}{
		"upvotes":   upvotes,
		"downvotes": downvotes,
	}

	if targetType == models.TargetPost {
		var comments int64
		db.DB.Model(&models.Comment{}).Where("post_id = ?", targetID).Count(&comments)
		updates["comments_count"] = comments

		if err := db.DB.Model(&models.Post{}).Where("id = ?", targetID).Updates(updates).Error; err != nil {
			log.Printf("failed to sync tallies for post %d: %v", targetID, err)
		}
		return
	}

	if err := db.DB.Model(&models.Comment{}).Where("id = ?", targetID).Updates(updates).Error; err != nil {
		log.Printf("failed to sync tallies for comment %d: %v", targetID, err)
	}
}
