package services

import (
	"testing"

	"campuslink/internal/db"
	"campuslink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncTalliesRepairsDrift(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	upvoter := createTestUser(t, "upvoter")
	downvoter := createTestUser(t, "downvoter")
	post := createTestPost(t, author.ID, "drifting post")

	_, err := PostComment(post.ID, commenter.ID, "counted comment")
	require.NoError(t, err)
	_, err = CastVote(upvoter.ID, models.TargetPost, post.ID, VoteUp)
	require.NoError(t, err)
	_, err = CastVote(downvoter.ID, models.TargetPost, post.ID, VoteDown)
	require.NoError(t, err)

	// Knock the counters out of line with the rows.
	require.NoError(t, db.DB.Model(&models.Post{}).Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"upvotes":        42,
			"downvotes":      0,
			"comments_count": 9,
		}).Error)

	SyncTallies(models.TargetPost, post.ID)

	stored := reloadPost(t, post.ID)
	assert.Equal(t, 1, stored.Upvotes)
	assert.Equal(t, 1, stored.Downvotes)
	assert.Equal(t, 1, stored.CommentsCount)
}

func TestSyncTalliesOnComment(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	voter := createTestUser(t, "voter")
	post := createTestPost(t, author.ID, "comment tally post")

	comment, err := PostComment(post.ID, commenter.ID, "tallied")
	require.NoError(t, err)
	_, err = CastVote(voter.ID, models.TargetComment, comment.ID, VoteUp)
	require.NoError(t, err)

	require.NoError(t, db.DB.Model(&models.Comment{}).Where("id = ?", comment.ID).
		UpdateColumn("upvotes", 7).Error)

	SyncTallies(models.TargetComment, comment.ID)

	var stored models.Comment
	require.NoError(t, db.DB.First(&stored, comment.ID).Error)
	assert.Equal(t, 1, stored.Upvotes)
	assert.Equal(t, 0, stored.Downvotes)
}

func TestScheduleSyncDeduplicates(t *testing.T) {
	service := GetTallyService()

	target := tallyTarget{Type: models.TargetPost, ID: 424242}
	service.mu.Lock()
	service.pending[target] = true
	service.mu.Unlock()

	before := len(service.queue)
	service.ScheduleSync(models.TargetPost, 424242)
	assert.Equal(t, before, len(service.queue))

	service.mu.Lock()
	delete(service.pending, target)
	service.mu.Unlock()
}
