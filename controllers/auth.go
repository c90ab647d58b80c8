package controllers

import (
	"errors"
	"net/http"
	"os"
	"peer-review-api/config"
	"peer-review-api/middleware"
	"peer-review-api/models"
	"peer-review-api/services"
	"peer-review-api/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Sessions holds the per-student review session snapshots. Wired up in main
// after the environment is loaded.
var Sessions *services.SessionStore

type LoginRequest struct {
	NetID    string `json:"net_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token              string         `json:"token"`
	Student            models.Student `json:"student"`
	SectionCode        string         `json:"section_code"`
	TeamNumber         string         `json:"team_number"`
	PRAvailability     string         `json:"pr_availability"`
	ScoresAvailability string         `json:"scores_availability"`
	Message            string         `json:"message"`
}

// Login handles student authentication
func Login(c *gin.Context) {
	var req LoginRequest

	// Bind request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.NetID = utils.SanitizeInput(req.NetID)

	// Find student by net id
	var student models.Student
	if err := config.DB.Where("stu_net_id = ? AND delete_at IS NULL", req.NetID).
		First(&student).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid net id or password"})
		return
	}

	if !verifyPassword(req.Password, student.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid net id or password"})
		return
	}

	// First login still carries the registrar-issued password
	if student.MustChangePassword {
		c.JSON(http.StatusForbidden, gin.H{
			"error":                    "Password change required",
			"change_password_required": true,
		})
		return
	}

	// Section and team come from the membership relation
	var membership models.TeamMembership
	if err := config.DB.Where("stu_net_id = ? AND delete_at IS NULL", student.NetID).
		First(&membership).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Student is not enrolled in a section"})
		return
	}

	teamNumber := strconv.Itoa(membership.TeamNum)

	// Generate JWT token
	token, err := generateToken(student, membership.SecCode, teamNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Seed the review session snapshot, then resolve both availability gates
	Sessions.Put(services.ReviewSession{
		NetID:       student.NetID,
		UtdID:       student.UtdID,
		Name:        student.Name,
		SectionCode: membership.SecCode,
		TeamNumber:  teamNumber,
	})

	availability := services.NewAvailabilityService(config.DB, Sessions)

	prAvailability, err := availability.ResolveSubmission(student.NetID, membership.SecCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	scoresAvailability, err := availability.ResolveScores(student.NetID, membership.SecCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:              token,
		Student:            student,
		SectionCode:        membership.SecCode,
		TeamNumber:         teamNumber,
		PRAvailability:     prAvailability,
		ScoresAvailability: scoresAvailability,
		Message:            "Login successful",
	})
}

// GetProfile returns current student profile
func GetProfile(c *gin.Context) {
	netID, _ := c.Get("netID")

	var student models.Student
	if err := config.DB.Preload("Membership").
		Where("stu_net_id = ?", netID).
		First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student": student,
	})
}

// ChangePassword handles password change. It is authenticated by net id +
// current password rather than a bearer token: a student still on the
// registrar-issued password is refused a token at login and has only this
// endpoint to rotate it.
func ChangePassword(c *gin.Context) {
	type PasswordChangeRequest struct {
		NetID           string `json:"net_id"`
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match. Try again."})
		return
	}

	if valid, message := utils.ValidatePassword(req.NewPassword); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return
	}

	// Claims win when the request did come through the auth middleware
	netID := c.GetString("netID")
	if netID == "" {
		netID = utils.SanitizeInput(req.NetID)
	}
	if !utils.ValidateNetID(netID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid net id"})
		return
	}

	// Get current student
	var student models.Student
	if err := config.DB.Where("stu_net_id = ? AND delete_at IS NULL", netID).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	// Verify current password
	if !verifyPassword(req.CurrentPassword, student.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	student.Password = hashedPassword
	student.MustChangePassword = false
	student.UpdateAt = &now

	if err := config.DB.Save(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Logout clears the student's review session snapshot.
func Logout(c *gin.Context) {
	netID := c.GetString("netID")
	Sessions.Clear(netID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// respondServiceError maps engine errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var incomplete *services.IncompleteSubmissionError
	var badScore *services.InvalidScoreFormatError
	var commitErr *services.CommitFailureError

	switch {
	case errors.Is(err, services.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	case errors.Is(err, services.ErrInvalidConfiguration):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review is not configured for this section"})
	case errors.Is(err, services.ErrInvalidTeamNumber):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid team number"})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please fill out all scores before submitting."})
	case errors.As(err, &badScore):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": badScore.Error()})
	case errors.As(err, &commitErr):
		c.JSON(http.StatusConflict, gin.H{"error": commitErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// verifyPassword checks a candidate against the stored hash, falling back to a
// plain comparison for records cmd/migrate-passwords has not rewritten yet.
func verifyPassword(password, stored string) bool {
	if len(stored) > 1 && stored[:2] == "$2" {
		return CheckPasswordHash(password, stored)
	}
	return password == stored
}

// generateToken creates JWT token
func generateToken(student models.Student, secCode, teamNum string) (string, error) {
	// Get expiration hours from env
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24 // default 24 hours
	}

	// Create claims
	claims := middleware.Claims{
		NetID:       student.NetID,
		SectionCode: secCode,
		TeamNum:     teamNum,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	// Create token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign token
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
