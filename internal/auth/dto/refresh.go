package dto

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"-"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}
