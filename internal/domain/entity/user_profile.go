package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of staff roles. Capabilities are derived from the
// role through CapabilitiesFor, never stored per user.
type Role string

const (
	RoleDispatchPersonnel Role = "dispatch_personnel"
	RoleCallTriage        Role = "call_triage"
	RoleAdministrator     Role = "administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDispatchPersonnel, RoleCallTriage, RoleAdministrator:
		return true
	}
	return false
}

// Display returns the human-readable role label.
func (r Role) Display() string {
	switch r {
	case RoleDispatchPersonnel:
		return "Dispatch Personnel"
	case RoleCallTriage:
		return "Call Triage"
	case RoleAdministrator:
		return "Administrator"
	}
	return string(r)
}

// Capabilities is the named permission set derived from a role.
type Capabilities struct {
	CanView           bool `json:"can_view_referrals"`
	CanTriage         bool `json:"can_triage_referrals"`
	CanTransfer       bool `json:"can_transfer_referrals"`
	CanCreateReferral bool `json:"can_create_referrals"`
	IsAdmin           bool `json:"is_admin_user"`
}

// CapabilitiesFor maps a role to its capability set. Referral creation is
// reserved for the open external-intake path, so it is false for all staff.
// A superuser is an admin regardless of role.
func CapabilitiesFor(role Role, superuser bool) Capabilities {
	return Capabilities{
		CanView:           true,
		CanTriage:         role == RoleCallTriage,
		CanTransfer:       role == RoleDispatchPersonnel,
		CanCreateReferral: false,
		IsAdmin:           role == RoleAdministrator || superuser,
	}
}

// UserProfile extends a User with role and contact details. Created lazily
// on first access with the dispatch_personnel default.
type UserProfile struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Role          Role      `gorm:"type:varchar(20);not null;default:'dispatch_personnel'" json:"role"`
	Department    string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	ContactNumber string    `gorm:"type:varchar(20)" json:"contact_number,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
