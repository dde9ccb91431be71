package model

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// User is a photographer account. Billing lives in the payment provider;
// we only keep the subscription snapshot needed for plan gating.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Status       UserStatus `db:"status" json:"status"`
	PlanLimit    int        `db:"plan_limit" json:"plan_limit"`
	StripeCustID string     `db:"stripe_customer_id" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Usage is a per-owner monthly send counter. Period is the first day of
// the month in the billing time zone, formatted YYYY-MM.
type Usage struct {
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Period    string    `db:"period" json:"period"`
	SentCount int       `db:"sent_count" json:"sent_count"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
