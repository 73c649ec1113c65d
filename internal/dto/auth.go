package dto

import "time"

// SignupRequest creates the single planner account.
type SignupRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=4"`
	Courses  []string `json:"courses" validate:"omitempty,max=3,dive,required"`
}

// LoginRequest authenticates the planner account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries an issued access token and the signed-in profile.
type AuthResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresIn   int64           `json:"expiresIn"`
	IssuedAt    time.Time       `json:"issuedAt"`
	Student     StudentResponse `json:"student"`
}
