package sso

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginRequest is the credential payload the boundary extracts from a login
// form or JSON body.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	HubID    int64  `json:"hub_id" form:"hub_id"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.HubID, validation.Required, validation.Min(int64(1))),
	)
}

// RecoverRequest asks for a password-recovery link.
type RecoverRequest struct {
	Email string `json:"email" form:"email"`
	HubID int64  `json:"hub_id" form:"hub_id"`
}

func (r RecoverRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.HubID, validation.Required, validation.Min(int64(1))),
	)
}

// UpdateProfileRequest is the self-service profile update. An empty password
// keeps the current one.
type UpdateProfileRequest struct {
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Password, validation.Length(8, 128)),
	)
}

// RegisterRequest creates a new account in a hub.
type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
	HubID    int64  `json:"hub_id" form:"hub_id"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.HubID, validation.Required, validation.Min(int64(1))),
	)
}
