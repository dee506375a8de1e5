package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyPostQuota(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")

	assert.True(t, CanCreatePost(author.ID))
	assert.Zero(t, CountTodayPosts(author.ID))

	for i := 0; i < DailyPostLimit; i++ {
		createTestPost(t, author.ID, fmt.Sprintf("post %d", i))
	}

	assert.Equal(t, int64(DailyPostLimit), CountTodayPosts(author.ID))
	assert.False(t, CanCreatePost(author.ID))

	// Someone else's quota is untouched.
	other := createTestUser(t, "other")
	assert.True(t, CanCreatePost(other.ID))
}
