package services

import (
	"fmt"
	"strings"
	"testing"

	"campuslink/internal/db"
	"campuslink/internal/models"
	"campuslink/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a fresh in-memory database.
// Each test gets its own named memory DB so state never leaks between tests.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	db.InitForTesting(conn)
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := models.User{
		Username:    username,
		Email:       username + "@campus.test",
		Password:    "not-a-real-hash",
		IsActivated: true,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func createTestPost(t *testing.T, authorID uint, title string) *models.Post {
	t.Helper()

	category := models.Category{Name: "Discussion-" + title}
	require.NoError(t, db.DB.Create(&category).Error)

	post := models.Post{
		Pid:        utils.NewPid(),
		UserID:     authorID,
		CategoryID: category.ID,
		Title:      title,
	}
	require.NoError(t, db.DB.Create(&post).Error)
	return &post
}

func reloadPost(t *testing.T, id uint) *models.Post {
	t.Helper()

	var post models.Post
	require.NoError(t, db.DB.First(&post, id).Error)
	return &post
}
