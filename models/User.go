package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email" gorm:"uniqueIndex"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"-"`
	AvatarURL       string `json:"avatarURL"`
	IsEmailVerified *bool  `json:"isEmailVerified"`
	Role            string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, host, admin, super_admin
	Boats           []Boat `json:"boats" gorm:"foreignKey:HostID;references:ID"`

	// Host profile. Flattened onto the user row; empty HostStatus means the
	// user never applied.
	HostBio             string         `json:"hostBio" gorm:"type:text"`
	ResponseTime        string         `json:"responseTime" gorm:"size:64"`
	IsSuperHost         bool           `json:"isSuperHost" gorm:"default:false"`
	HostRating          float32        `json:"hostRating" gorm:"check:host_rating >= 0 AND host_rating <= 5"`
	HostReviewCount     int            `json:"hostReviewCount"`
	HostStatus          string         `json:"hostStatus" gorm:"type:varchar(20);index"` // pending, approved, denied
	HostApplication     string         `json:"hostApplication" gorm:"type:text"`
	HostDocuments       datatypes.JSON `json:"hostDocuments"`
	HostRejectionReason string         `json:"hostRejectionReason" gorm:"type:text"`
	HostProcessedAt     *time.Time     `json:"hostProcessedAt"`
}

// Custom JSON marshaling to expand jsonb fields and hide relations
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		HostDocuments []string `json:"hostDocuments"`
		Boats         []Boat   `json:"boats,omitempty"`
		*Alias
	}{
		HostDocuments: []string{},
		Alias:         (*Alias)(u),
	}

	if u.HostDocuments != nil {
		var docs []string
		if err := json.Unmarshal(u.HostDocuments, &docs); err == nil {
			aux.HostDocuments = docs
		}
	}

	// Boats are excluded to prevent circular references
	return json.Marshal(aux)
}

// IsHost reports whether the user currently holds host privileges.
func (u *User) IsHost() bool {
	return u.Role == "host"
}

// HostStatusTransitions lists the permitted host application transitions.
// Re-approval after denial and revocation after approval are both allowed.
var HostStatusTransitions = map[string][]string{
	"pending":  {"approved", "denied"},
	"denied":   {"approved"},
	"approved": {"denied"},
}

// CanTransitionHostStatus reports whether a host application may move from
// one status to another via admin action.
func CanTransitionHostStatus(from, to string) bool {
	for _, next := range HostStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
