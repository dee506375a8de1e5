package handlers

import (
	"net/http"

	"campuslink/internal/middleware"
	"campuslink/internal/models"
	"campuslink/internal/services"
	"campuslink/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

func voteTarget(c *gin.Context) (string, uint, bool) {
	targetType := c.Param("type")
	if targetType != models.TargetPost && targetType != models.TargetComment {
		Fail(c, http.StatusBadRequest, "target type must be post or comment")
		return "", 0, false
	}
	targetID := utils.StringToUint(c.Param("id"))
	if targetID == 0 {
		Fail(c, http.StatusBadRequest, "invalid target id")
		return "", 0, false
	}
	return targetType, targetID, true
}

type castVoteRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// Cast records, flips, or retracts the caller's vote and returns the updated
// tallies. Sending the direction already on record retracts it.
func (h *VoteHandler) Cast(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetType, targetID, ok := voteTarget(c)
	if !ok {
		return
	}

	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "direction is required")
		return
	}

	var value int
	switch req.Direction {
	case "up":
		value = services.VoteUp
	case "down":
		value = services.VoteDown
	default:
		Fail(c, http.StatusBadRequest, "direction must be up or down")
		return
	}

	tally, err := services.CastVote(user.ID, targetType, targetID, value)
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"upvotes":   tally.Upvotes,
		"downvotes": tally.Downvotes,
	})
}

// Get returns the caller's current vote on a target: "up", "down", or "".
func (h *VoteHandler) Get(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	targetType, targetID, ok := voteTarget(c)
	if !ok {
		return
	}

	vote, err := services.GetVote(user.ID, targetType, targetID)
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vote": vote})
}
