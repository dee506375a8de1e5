package services

import (
	"time"

	"campuslink/internal/db"
	"campuslink/internal/models"
)

// Posting limits per author.
const (
	DailyPostLimit = 2 // posts per day
)

// getTodayRange returns the start and end of the current day.
func getTodayRange() (time.Time, time.Time) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	return startOfDay, endOfDay
}

// CountTodayPosts counts the posts a user created today.
func CountTodayPosts(userID uint) int64 {
	startOfDay, endOfDay := getTodayRange()
	var count int64
	db.DB.Model(&models.Post{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, startOfDay, endOfDay).
		Count(&count)
	return count
}

// CanCreatePost reports whether the user is still under the daily post limit.
func CanCreatePost(userID uint) bool {
	return CountTodayPosts(userID) < DailyPostLimit
}

// CountMonthlyImagePosts counts the image posts a user created this calendar
// month, shown on the profile alongside the text post total.
func CountMonthlyImagePosts(userID uint) int64 {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var count int64
	db.DB.Model(&models.Post{}).
		Where("user_id = ? AND image_url <> '' AND created_at >= ?", userID, startOfMonth).
		Count(&count)
	return count
}

// CountTextPosts counts all text-only posts by a user.
func CountTextPosts(userID uint) int64 {
	var count int64
	db.DB.Model(&models.Post{}).
		Where("user_id = ? AND image_url = ''", userID).
		Count(&count)
	return count
}
