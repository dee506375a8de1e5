package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"campuslink/internal/db"
	"campuslink/internal/models"
	"campuslink/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var googleOauthConfig *oauth2.Config

// InitGoogleOAuth wires the Google sign-in config from the environment.
// Call once at startup before registering routes.
func InitGoogleOAuth() {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}

	googleOauthConfig = &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  siteURL + "/api/auth/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// GoogleLogin starts the OAuth dance. The state token lives in the session
// until the callback verifies it.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		Fail(c, http.StatusInternalServerError, "failed to generate state token")
		return
	}

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Save()

	url := googleOauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback exchanges the auth code, then signs the member in,
// registering them on first contact. Google-verified emails skip the code
// verification step.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState := session.Get("oauth_state")

	if savedState == nil || c.Query("state") != savedState.(string) {
		Fail(c, http.StatusBadRequest, "invalid oauth state")
		return
	}
	session.Delete("oauth_state")
	session.Save()

	code := c.Query("code")
	if code == "" {
		Fail(c, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		Fail(c, http.StatusBadGateway, "token exchange failed")
		return
	}

	userInfo, err := h.getGoogleUserInfo(token.AccessToken)
	if err != nil {
		Fail(c, http.StatusBadGateway, "failed to fetch google profile")
		return
	}
	if !userInfo.VerifiedEmail {
		Fail(c, http.StatusBadRequest, "google account email is not verified")
		return
	}

	var user models.User
	err = db.DB.Where("google_id = ?", userInfo.ID).
		Or("email = ?", strings.ToLower(userInfo.Email)).
		First(&user).Error
	if err != nil {
		username := userInfo.GivenName
		if username == "" {
			username = strings.Split(userInfo.Email, "@")[0]
		}
		// Random throwaway password; the member can set a real one later.
		hash, err := utils.HashPassword(utils.GenerateRandomCode(16))
		if err != nil {
			Fail(c, http.StatusInternalServerError, "failed to create account")
			return
		}
		user = models.User{
			Username:    username,
			Email:       strings.ToLower(userInfo.Email),
			Password:    hash,
			GoogleID:    userInfo.ID,
			AvatarURL:   userInfo.Picture,
			IsActivated: true,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "failed to create account")
			return
		}
	} else {
		if user.IsBanned {
			Fail(c, http.StatusForbidden, "this account has been banned")
			return
		}
		updates := map[string]interface{}{"is_activated": true}
		if user.GoogleID == "" {
			updates["google_id"] = userInfo.ID
		}
		if user.AvatarURL == "" && userInfo.Picture != "" {
			updates["avatar_url"] = userInfo.Picture
		}
		db.DB.Model(&user).Updates(updates)
	}

	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) getGoogleUserInfo(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo googleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}
	return &userInfo, nil
}
