package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/response"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleHandler drives the OAuth login handshake. The orchestrator only
// ever sees the resolved profile; provider verification happens here.
type GoogleHandler struct {
	userService *service.UserService
	oauth       *oauth2.Config
}

func NewGoogleHandler(userService *service.UserService, clientID, clientSecret, redirectURL string) *GoogleHandler {
	return &GoogleHandler{
		userService: userService,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (h *GoogleHandler) Login(c *fiber.Ctx) error {
	return c.Redirect(h.oauth.AuthCodeURL("state-token"), fiber.StatusTemporaryRedirect)
}

func (h *GoogleHandler) Redirect(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return response.BadRequest(c, "missing authorization code")
	}

	token, err := h.oauth.Exchange(c.Context(), code)
	if err != nil {
		return response.BadRequest(c, "authorization code exchange failed")
	}

	resp, err := h.oauth.Client(c.Context(), token).Get(googleUserInfoURL)
	if err != nil {
		return response.BadRequest(c, "failed to fetch user profile")
	}
	defer resp.Body.Close()

	var profile struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return response.BadRequest(c, "failed to decode user profile")
	}

	tokens, err := h.userService.OAuthLogin(c.Context(), service.OAuthProfile{
		Email:     profile.Email,
		FirstName: profile.GivenName,
		LastName:  profile.FamilyName,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, "Login successful", tokens)
}
