package controllers

import (
	"net/http"
	"peer-review-api/config"
	"peer-review-api/services"

	"github.com/gin-gonic/gin"
)

type SubmitReviewRequest struct {
	// ReviewType is the kind the client rendered the form for. Optional; when
	// set it must still match the currently open window.
	ReviewType string `json:"review_type"`
	// Scores maps "{criterion}-{netID}" field keys to raw string values, one
	// per (criterion, teammate) pair.
	Scores map[string]string `json:"scores" binding:"required"`
}

// GetReviewForm gates the submission form on availability and returns the
// roster and criteria the client must render, in store order. When the gate is
// Completed or Unavailable no form data is returned and the client must
// navigate away.
func GetReviewForm(c *gin.Context) {
	netID := c.GetString("netID")
	secCode := c.GetString("sectionCode")
	teamNum := c.GetString("teamNum")

	availability := services.NewAvailabilityService(config.DB, Sessions)

	status, err := availability.ResolveSubmission(netID, secCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if status == services.AvailabilityCompleted {
		c.JSON(http.StatusOK, gin.H{"status": status, "redirect": "/review/success"})
		return
	}
	if status == services.AvailabilityUnavailable {
		c.JSON(http.StatusOK, gin.H{"status": status, "redirect": "/review/unavailable"})
		return
	}

	// status now names the open review type
	roster := services.NewRosterService(config.DB, Sessions)

	criteria, err := roster.LoadCriteria(netID, status, secCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	members, err := roster.LoadTeamMembers(netID, teamNum, secCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"review_type":  status,
		"team_members": members,
		"criteria":     criteria,
	})
}

// SubmitReview validates and commits a full score matrix. Availability is
// re-resolved here rather than trusted from the session: the window may have
// closed, or another submission may have completed, since the form was loaded.
func SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	netID := c.GetString("netID")
	secCode := c.GetString("sectionCode")
	teamNum := c.GetString("teamNum")

	availability := services.NewAvailabilityService(config.DB, Sessions)

	status, err := availability.ResolveSubmission(netID, secCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if status == services.AvailabilityCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "Peer review already submitted"})
		return
	}
	if status == services.AvailabilityUnavailable {
		c.JSON(http.StatusForbidden, gin.H{"error": "Peer review is not available"})
		return
	}

	// A stale form can carry a kind whose window has since closed, or one that
	// was never configured at all.
	if req.ReviewType != "" && req.ReviewType != status {
		if err := availability.EnsureKind(secCode, req.ReviewType); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Review window has changed, reload the form"})
		return
	}

	members, criteria, err := reviewFormData(netID, teamNum, secCode, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tuples, err := services.ValidateScoreMatrix(members, criteria, req.Scores)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := services.NewCommitService(config.DB).Commit(secCode, netID, status, tuples); err != nil {
		respondServiceError(c, err)
		return
	}

	// The one place a cache write is authoritative: it reflects the commit
	// that just happened, not a prediction.
	Sessions.Update(netID, func(session *services.ReviewSession) {
		session.PRAvailability = services.AvailabilityCompleted
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Peer review submitted successfully",
		"status":   services.AvailabilityCompleted,
		"redirect": "/review/success",
	})
}

// reviewFormData returns the roster and criteria backing the submission form,
// from the session snapshot when it survived the round trip and still matches
// the resolved kind, otherwise reloaded from the store.
func reviewFormData(netID, teamNum, secCode, reviewType string) ([]services.TeamMember, []services.CriterionInfo, error) {
	if session, ok := Sessions.Get(netID); ok {
		if members, criteria, fresh := session.FormSnapshot(reviewType); fresh {
			return members, criteria, nil
		}
	}

	roster := services.NewRosterService(config.DB, Sessions)

	criteria, err := roster.LoadCriteria(netID, reviewType, secCode)
	if err != nil {
		return nil, nil, err
	}

	members, err := roster.LoadTeamMembers(netID, teamNum, secCode)
	if err != nil {
		return nil, nil, err
	}

	return members, criteria, nil
}
