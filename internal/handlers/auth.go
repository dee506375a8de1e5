package handlers

import (
	"net/http"
	"strings"

	"campuslink/internal/db"
	"campuslink/internal/middleware"
	"campuslink/internal/models"
	"campuslink/internal/services"
	"campuslink/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	mailService    *services.MailService
	captchaService *services.CaptchaService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		mailService:    services.NewMailService(),
		captchaService: services.NewCaptchaService(),
	}
}

// Captcha issues a math problem for the signup form; the answer is kept in
// the session.
func (h *AuthHandler) Captcha(c *gin.Context) {
	question, answer := h.captchaService.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set("captcha_answer", answer)
	session.Save()
	c.JSON(http.StatusOK, gin.H{"captcha": question})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Captcha  string `json:"captcha"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	session := sessions.Default(c)
	expectedAnswer, ok := session.Get("captcha_answer").(int)
	if !ok || !h.captchaService.Verify(req.Captcha, expectedAnswer) {
		Fail(c, http.StatusBadRequest, "wrong captcha answer")
		return
	}
	session.Delete("captcha_answer")
	session.Save()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		Fail(c, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < 6 {
		Fail(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = parts[0]
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "failed to process password")
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		Fail(c, http.StatusConflict, "email already registered")
		return
	}

	// Send activation code
	code := utils.GenerateRandomCode(6)
	user.VerifyCode = code
	db.DB.Save(&user)
	h.mailService.SendVerificationEmail(email, code)

	c.JSON(http.StatusCreated, gin.H{
		"message": "registered; a verification code has been emailed to you",
		"user_id": user.ID,
	})
}

type verifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifyEmail activates an account with the mailed code. Posting requires an
// activated account; browsing does not.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "email and code are required")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		Fail(c, http.StatusNotFound, "no account with that email")
		return
	}
	if user.IsActivated {
		c.JSON(http.StatusOK, gin.H{"message": "account already verified"})
		return
	}
	if user.VerifyCode == "" || user.VerifyCode != req.Code {
		Fail(c, http.StatusBadRequest, "wrong verification code")
		return
	}

	db.DB.Model(&user).Updates(map[string]interface{}{
		"is_activated": true,
		"verify_code":  "",
	})
	c.JSON(http.StatusOK, gin.H{"message": "account verified"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		Fail(c, http.StatusUnauthorized, "wrong email or password")
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		Fail(c, http.StatusUnauthorized, "wrong email or password")
		return
	}
	if user.IsBanned {
		Fail(c, http.StatusForbidden, "this account has been banned")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type forgotRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword mails a reset code. The response is identical whether or not
// the address is registered, so it leaks nothing.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "email is required")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err == nil {
		code := utils.GenerateRandomCode(6)
		db.DB.Model(&user).Update("verify_code", code)
		h.mailService.SendPasswordResetEmail(user.Email, code)
	}
	c.JSON(http.StatusOK, gin.H{"message": "if that email is registered, a reset code has been sent"})
}

type resetRequest struct {
	Email    string `json:"email" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword sets a new password using the mailed code.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "email, code and password are required")
		return
	}
	if len(req.Password) < 6 {
		Fail(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		Fail(c, http.StatusNotFound, "no account with that email")
		return
	}
	if user.VerifyCode == "" || user.VerifyCode != req.Code {
		Fail(c, http.StatusBadRequest, "wrong reset code")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "failed to process password")
		return
	}

	db.DB.Model(&user).Updates(map[string]interface{}{
		"password":    hash,
		"verify_code": "",
	})
	c.JSON(http.StatusOK, gin.H{"message": "password updated, you can log in now"})
}

// Me returns the authenticated user with profile counters.
func (h *AuthHandler) Me(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	c.JSON(http.StatusOK, gin.H{
		"user":                     user,
		"daily_post_count":         services.CountTodayPosts(user.ID),
		"monthly_image_post_count": services.CountMonthlyImagePosts(user.ID),
		"text_post_count":          services.CountTextPosts(user.ID),
	})
}
