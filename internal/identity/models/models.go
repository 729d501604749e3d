package models

import (
	"time"

	id "brandgate/pkg/domain"
)

// Admin is a principal with full read/write over exactly one brand.
//
// Invariants:
//   - Email is unique across all admins
//   - PasswordHash is a bcrypt hash; the plaintext is never stored or logged
//   - BrandID references an existing brand and never changes
type Admin struct {
	ID           id.AdminID `json:"id"`
	BrandID      id.BrandID `json:"brand_id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Member is a principal scoped to one brand with reduced privilege: self
// data and own donation history only.
//
// Invariants:
//   - Email is unique per brand; the same email may register independently
//     under different brands
//   - PasswordHash is a bcrypt hash; the plaintext is never stored or logged
//   - A deactivated member (IsActive false) cannot log in until an admin of
//     the same brand reactivates them
type Member struct {
	ID           id.MemberID `json:"id"`
	BrandID      id.BrandID  `json:"brand_id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	IsActive     bool        `json:"is_active"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
}
