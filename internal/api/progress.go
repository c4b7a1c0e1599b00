package api

import (
	"net/http" // HTTP status codes

	"chainvora/internal/progress" // Milestones and status updates

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// MilestoneRequest adds a milestone for a center
type MilestoneRequest struct {
	CenterName string `json:"centerName"`
	Milestone  string `json:"milestone"`
}

// StatusUpdateRequest posts a progress note for a center
type StatusUpdateRequest struct {
	CenterName string `json:"centerName"`
	Update     string `json:"update"`
	Date       string `json:"date"` // YYYY-MM-DD, defaults to today
}

func ListMilestonesHandler(t *progress.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		milestones, err := t.ListMilestones(c.Request.Context(), c.Query("centerName"))
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "milestones"})
			return
		}
		c.JSON(http.StatusOK, milestones)
	}
}

func AddMilestoneHandler(t *progress.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MilestoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		m, err := t.AddMilestone(c.Request.Context(), req.CenterName, req.Milestone)
		if err != nil {
			respondError(c, err, logrus.Fields{"center": req.CenterName})
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func CompleteMilestoneHandler(t *progress.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		m, err := t.CompleteMilestone(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, logrus.Fields{"milestone_id": id})
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func ListStatusUpdatesHandler(t *progress.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		updates, err := t.ListStatusUpdates(c.Request.Context(), c.Query("centerName"))
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "status-updates"})
			return
		}
		c.JSON(http.StatusOK, updates)
	}
}

func PostStatusUpdateHandler(t *progress.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		u, err := t.PostStatusUpdate(c.Request.Context(), req.CenterName, req.Update, req.Date)
		if err != nil {
			respondError(c, err, logrus.Fields{"center": req.CenterName})
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}
