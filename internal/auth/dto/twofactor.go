package dto

type Verify2FAInput struct {
	Token string `json:"token"`
}

type TwoFactorSecretOutput struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauth_url"`
}
