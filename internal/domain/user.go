package domain

import "time"

type Role string

const (
	RoleMentor Role = "mentor"
	RoleMember Role = "member"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMentor, RoleMember:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	DisplayName    string    `json:"display_name"`
	Bio            string    `json:"bio"`
	AvatarUploadID *string   `json:"avatar_upload_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Identity is the already-authenticated caller attached to a request.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
}

type RegisterReq struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	Role        string `json:"role" validate:"required,oneof=mentor member"`
	DisplayName string `json:"display_name" validate:"required,max=80"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type MentorProfile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Bio         string  `json:"bio"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}
