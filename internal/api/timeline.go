package api

import (
	"net/http" // HTTP status codes

	"chainvora/internal/timeline" // Derived views

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// FundTimelineHandler returns contributions, allocations and requests as one feed
func FundTimelineHandler(tl *timeline.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := tl.Timeline(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "fund-timeline"})
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// StatusFeedHandler returns request statuses with their remarks, newest first
func StatusFeedHandler(tl *timeline.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		feed, err := tl.StatusFeed(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"list": "status"})
			return
		}
		c.JSON(http.StatusOK, feed)
	}
}
