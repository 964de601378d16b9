package dto

type VerifyEmailInput struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type ResendTokenInput struct {
	Email string `json:"email"`
}

type VerifyTokenInput struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type RequestEmailChangeInput struct {
	Email string `json:"email"`
}

type ChangeEmailInput struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
