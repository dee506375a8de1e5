package services

import (
	"strings"
	"testing"
	"time"

	"campuslink/internal/db"
	"campuslink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCommentSingleSlot(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	post := createTestPost(t, author.ID, "slot post")

	comment, err := PostComment(post.ID, commenter.ID, "first take")
	require.NoError(t, err)
	assert.Equal(t, "first take", comment.Text)
	assert.Equal(t, 1, reloadPost(t, post.ID).CommentsCount)

	// The slot is taken; a second comment must go through edit.
	_, err = PostComment(post.ID, commenter.ID, "second take")
	assert.ErrorIs(t, err, ErrDuplicateComment)
	assert.Equal(t, 1, reloadPost(t, post.ID).CommentsCount)
}

func TestPostCommentValidation(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	post := createTestPost(t, author.ID, "validation post")

	_, err := PostComment(post.ID, 0, "hi")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = PostComment(post.ID, commenter.ID, "   ")
	assert.Error(t, err)

	_, err = PostComment(post.ID, commenter.ID, strings.Repeat("x", MaxCommentLength+1))
	assert.Error(t, err)

	_, err = PostComment(99999, commenter.ID, "hello?")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditCommentKeepsIdentity(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	post := createTestPost(t, author.ID, "edit post")

	comment, err := PostComment(post.ID, commenter.ID, "original")
	require.NoError(t, err)

	require.NoError(t, EditComment(post.ID, commenter.ID, "revised"))

	var stored models.Comment
	require.NoError(t, db.DB.First(&stored, comment.ID).Error)
	assert.Equal(t, "revised", stored.Text)
	assert.Equal(t, comment.ID, stored.ID)
	assert.NotNil(t, stored.EditedAt)
	assert.True(t, stored.CreatedAt.Equal(comment.CreatedAt))
}

func TestEditCommentWithoutComment(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	post := createTestPost(t, author.ID, "empty post")

	err := EditComment(post.ID, commenter.ID, "nothing to edit")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCommentFreesSlot(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	voter := createTestUser(t, "voter")
	post := createTestPost(t, author.ID, "delete post")

	comment, err := PostComment(post.ID, commenter.ID, "to be removed")
	require.NoError(t, err)
	_, err = CastVote(voter.ID, models.TargetComment, comment.ID, VoteUp)
	require.NoError(t, err)

	require.NoError(t, DeleteComment(post.ID, commenter.ID))
	assert.Equal(t, 0, reloadPost(t, post.ID).CommentsCount)

	// Votes on the comment go with it.
	var votes int64
	db.DB.Model(&models.Vote{}).
		Where("target_type = ? AND target_id = ?", models.TargetComment, comment.ID).
		Count(&votes)
	assert.Zero(t, votes)

	// Slot is free again.
	_, err = PostComment(post.ID, commenter.ID, "fresh start")
	require.NoError(t, err)
}

func TestDeleteCommentClampsCounter(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	post := createTestPost(t, author.ID, "clamp post")

	_, err := PostComment(post.ID, commenter.ID, "hello")
	require.NoError(t, err)

	// Drifted counter must not go negative on delete.
	require.NoError(t, db.DB.Model(&models.Post{}).Where("id = ?", post.ID).
		UpdateColumn("comments_count", 0).Error)

	require.NoError(t, DeleteComment(post.ID, commenter.ID))
	assert.Equal(t, 0, reloadPost(t, post.ID).CommentsCount)
}

func TestDeleteCommentMissing(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	post := createTestPost(t, author.ID, "missing post")

	assert.ErrorIs(t, DeleteComment(post.ID, commenter.ID), ErrNotFound)
}

func TestListCommentsOldestFirst(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	first := createTestUser(t, "first")
	second := createTestUser(t, "second")
	post := createTestPost(t, author.ID, "ordered post")

	_, err := PostComment(post.ID, first.ID, "earliest")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = PostComment(post.ID, second.ID, "latest")
	require.NoError(t, err)

	comments, err := ListComments(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "earliest", comments[0].Text)
	assert.Equal(t, "latest", comments[1].Text)
	assert.Equal(t, "first", comments[0].User.Username)
}
