package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are issued by the storefront's auth provider after phone-OTP sign-in.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
