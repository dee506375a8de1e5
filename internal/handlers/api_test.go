package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campuslink/internal/db"
	"campuslink/internal/middleware"
	"campuslink/internal/models"
	"campuslink/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// forceUser stands in for the session middleware in tests.
func forceUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	}
}

func setupAPITest(t *testing.T, user *models.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:h_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	db.InitForTesting(conn)

	r := gin.New()
	r.Use(forceUser(user))

	voteHandler := NewVoteHandler()
	commentHandler := NewCommentHandler()
	reportHandler := NewReportHandler()

	authorized := r.Group("/api")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/votes/:type/:id", voteHandler.Cast)
		authorized.GET("/votes/:type/:id", voteHandler.Get)
		authorized.POST("/posts/:pid/comments", commentHandler.Create)
		authorized.POST("/reports", reportHandler.Create)
	}
	return r
}

func seedPost(t *testing.T, authorName string) (*models.User, *models.Post) {
	t.Helper()

	author := models.User{Username: authorName, Email: authorName + "@campus.test", Password: "x", IsActivated: true}
	require.NoError(t, db.DB.Create(&author).Error)

	category := models.Category{Name: "Discussion"}
	require.NoError(t, db.DB.Create(&category).Error)

	post := models.Post{Pid: utils.NewPid(), UserID: author.ID, CategoryID: category.ID, Title: "seeded"}
	require.NoError(t, db.DB.Create(&post).Error)
	return &author, &post
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestVoteEndpoint(t *testing.T) {
	voter := &models.User{Username: "voter", Email: "voter@campus.test", Password: "x", IsActivated: true}
	r := setupAPITest(t, voter)
	require.NoError(t, db.DB.Create(voter).Error)
	_, post := seedPost(t, "author")

	path := fmt.Sprintf("/api/votes/post/%d", post.ID)

	w := doJSON(r, http.MethodPost, path, `{"direction":"up"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"upvotes":1`)

	w = doJSON(r, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"vote":"up"`)

	w = doJSON(r, http.MethodPost, path, `{"direction":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/votes/post/99999", `{"direction":"up"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVoteEndpointRequiresAuth(t *testing.T) {
	r := setupAPITest(t, nil)
	w := doJSON(r, http.MethodPost, "/api/votes/post/1", `{"direction":"up"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommentEndpointDuplicate(t *testing.T) {
	commenter := &models.User{Username: "commenter", Email: "commenter@campus.test", Password: "x", IsActivated: true}
	r := setupAPITest(t, commenter)
	require.NoError(t, db.DB.Create(commenter).Error)
	_, post := seedPost(t, "author")

	path := "/api/posts/" + post.Pid + "/comments"

	w := doJSON(r, http.MethodPost, path, `{"text":"first"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, path, `{"text":"second"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReportEndpoint(t *testing.T) {
	reporter := &models.User{Username: "reporter", Email: "reporter@campus.test", Password: "x", IsActivated: true}
	r := setupAPITest(t, reporter)
	require.NoError(t, db.DB.Create(reporter).Error)
	_, post := seedPost(t, "author")

	body := fmt.Sprintf(`{"content_type":"post","content_id":%d,"category":"spam"}`, post.ID)
	w := doJSON(r, http.MethodPost, "/api/reports", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same reporter, same content.
	w = doJSON(r, http.MethodPost, "/api/reports", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	// "other" without a reason.
	body = fmt.Sprintf(`{"content_type":"post","content_id":%d,"category":"other"}`, post.ID)
	w = doJSON(r, http.MethodPost, "/api/reports", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
