package services

import (
	"fmt"
	"testing"
	"time"

	"campuslink/internal/db"
	"campuslink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReportBasics(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	reporter := createTestUser(t, "reporter")
	post := createTestPost(t, author.ID, "reported post")

	err := FileReport(reporter.ID, models.TargetPost, post.ID, author.ID, "spam", "")
	require.NoError(t, err)

	stored := reloadPost(t, post.ID)
	assert.Equal(t, 1, stored.ReportCount)
	assert.False(t, stored.IsSuspended)

	var report models.Report
	require.NoError(t, db.DB.First(&report).Error)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, author.ID, report.ContentOwnerID)
}

func TestFileReportRejectsSelfReport(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	post := createTestPost(t, author.ID, "own post")

	err := FileReport(author.ID, models.TargetPost, post.ID, author.ID, "spam", "")
	assert.ErrorIs(t, err, ErrSelfReport)
	assert.Equal(t, 0, reloadPost(t, post.ID).ReportCount)
}

func TestFileReportRejectsDuplicate(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	reporter := createTestUser(t, "reporter")
	post := createTestPost(t, author.ID, "twice reported")

	require.NoError(t, FileReport(reporter.ID, models.TargetPost, post.ID, author.ID, "spam", ""))

	err := FileReport(reporter.ID, models.TargetPost, post.ID, author.ID, "misinformation", "")
	assert.ErrorIs(t, err, ErrDuplicateReport)
	assert.Equal(t, 1, reloadPost(t, post.ID).ReportCount)
}

func TestFileReportOtherNeedsReason(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	reporter := createTestUser(t, "reporter")
	post := createTestPost(t, author.ID, "vague report")

	err := FileReport(reporter.ID, models.TargetPost, post.ID, author.ID, "other", "   ")
	assert.ErrorIs(t, err, ErrMissingReason)

	err = FileReport(reporter.ID, models.TargetPost, post.ID, author.ID, "other", "does not belong here")
	assert.NoError(t, err)
}

func TestFileReportRejectsUnknownCategory(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	reporter := createTestUser(t, "reporter")
	post := createTestPost(t, author.ID, "odd category")

	err := FileReport(reporter.ID, models.TargetPost, post.ID, author.ID, "too-long", "")
	assert.Error(t, err)
}

func TestReportThresholdSuspendsPost(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	post := createTestPost(t, author.ID, "piling up")

	for i := 0; i < ReportThreshold-1; i++ {
		reporter := createTestUser(t, fmt.Sprintf("reporter%d", i))
		require.NoError(t, FileReport(reporter.ID, models.TargetPost, post.ID, author.ID, "spam", ""))
	}
	stored := reloadPost(t, post.ID)
	assert.Equal(t, ReportThreshold-1, stored.ReportCount)
	assert.False(t, stored.IsSuspended, "one report short of the threshold")

	last := createTestUser(t, "lastreporter")
	require.NoError(t, FileReport(last.ID, models.TargetPost, post.ID, author.ID, "spam", ""))

	stored = reloadPost(t, post.ID)
	assert.Equal(t, ReportThreshold, stored.ReportCount)
	assert.True(t, stored.IsSuspended)
}

func TestReportsAgainstCommentsNeverSuspend(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	commenter := createTestUser(t, "commenter")
	post := createTestPost(t, author.ID, "comment reports")

	comment, err := PostComment(post.ID, commenter.ID, "unpopular opinion")
	require.NoError(t, err)

	for i := 0; i < ReportThreshold+1; i++ {
		reporter := createTestUser(t, fmt.Sprintf("creporter%d", i))
		require.NoError(t, FileReport(reporter.ID, models.TargetComment, comment.ID, commenter.ID, "spam", ""))
	}

	// The post hosting the comment is untouched.
	stored := reloadPost(t, post.ID)
	assert.Equal(t, 0, stored.ReportCount)
	assert.False(t, stored.IsSuspended)

	var count int64
	db.DB.Model(&models.Report{}).
		Where("content_type = ? AND content_id = ?", models.TargetComment, comment.ID).
		Count(&count)
	assert.Equal(t, int64(ReportThreshold+1), count)
}

func TestDismissReport(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	reporter := createTestUser(t, "reporter")
	post := createTestPost(t, author.ID, "dismissed")

	require.NoError(t, FileReport(reporter.ID, models.TargetPost, post.ID, author.ID, "spam", ""))

	var report models.Report
	require.NoError(t, db.DB.First(&report).Error)
	require.NoError(t, DismissReport(report.ID))

	var count int64
	db.DB.Model(&models.Report{}).Count(&count)
	assert.Zero(t, count)

	// Dismissal does not rewind the counter or the suspension.
	assert.Equal(t, 1, reloadPost(t, post.ID).ReportCount)

	assert.ErrorIs(t, DismissReport(report.ID), ErrNotFound)
}

func TestListReportsNewestFirst(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	first := createTestUser(t, "early")
	second := createTestUser(t, "late")
	post := createTestPost(t, author.ID, "queue order")

	require.NoError(t, FileReport(first.ID, models.TargetPost, post.ID, author.ID, "spam", ""))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, FileReport(second.ID, models.TargetPost, post.ID, author.ID, "misinformation", ""))

	reports, err := ListReports()
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "misinformation", reports[0].Category)
	assert.Equal(t, "late", reports[0].Reporter.Username)
}
