package model

import "time"

// Role is the single role held by a user profile.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleSalesRep      Role = "sales_representative"
	RoleProductionRep Role = "production_representative"
	RoleInventoryRep  Role = "inventory_representative"
	DefaultRole            = RoleAdmin
	DefaultStatus          = "active"
)

// ReservedAdmin is the user created once at bootstrap.
var ReservedAdmin = User{
	Username:  "Allan",
	FirstName: "Lutalo",
	LastName:  "Allan",
	Email:     "lutaloallan6@gmail.com",
}

// User is an operator of the back office. Every user has exactly one profile.
type User struct {
	BaseModel
	Username   string       `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName  string       `gorm:"type:varchar(150)" json:"first_name"`
	LastName   string       `gorm:"type:varchar(150)" json:"last_name"`
	Email      string       `gorm:"type:varchar(254);index" json:"email"`
	DateJoined time.Time    `gorm:"autoCreateTime" json:"-"`
	Profile    *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"userprofile"`
}

// UserProfile holds the role and status of a user.
type UserProfile struct {
	BaseModel
	UserID uint   `gorm:"uniqueIndex;not null" json:"user"`
	Role   Role   `gorm:"type:varchar(255);not null" json:"role"`
	Status string `gorm:"type:varchar(255)" json:"status"`
}

// HasRole reports whether the user's profile carries one of roles.
func (u *User) HasRole(roles ...Role) bool {
	if u.Profile == nil {
		return false
	}
	for _, r := range roles {
		if u.Profile.Role == r {
			return true
		}
	}
	return false
}

// ProfileInput carries optional role/status overrides.
type ProfileInput struct {
	Role   *Role   `json:"role" validate:"omitempty,oneof=admin sales_representative production_representative inventory_representative"`
	Status *string `json:"status" validate:"omitempty,max=255"`
}

// Apply overrides only the fields that were supplied.
func (in *ProfileInput) Apply(p *UserProfile) {
	if in == nil {
		return
	}
	if in.Role != nil {
		p.Role = *in.Role
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
}

type UserInput struct {
	Username    string        `json:"username" validate:"required,max=150"`
	FirstName   string        `json:"first_name" validate:"max=150"`
	LastName    string        `json:"last_name" validate:"max=150"`
	Email       string        `json:"email" validate:"omitempty,email,max=254"`
	UserProfile *ProfileInput `json:"userprofile"`
}

func (in *UserInput) Apply(u *User) {
	u.Username = in.Username
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Email = in.Email
}

// Input returns the user's fields; the profile block stays nil so an
// update without one leaves the profile untouched.
func (u *User) Input() UserInput {
	return UserInput{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// UserProfileInput is used by the profile endpoints directly.
type UserProfileInput struct {
	User   uint   `json:"user" validate:"required"`
	Role   Role   `json:"role" validate:"required,oneof=admin sales_representative production_representative inventory_representative"`
	Status string `json:"status" validate:"max=255"`
}

func (p *UserProfile) Input() UserProfileInput {
	return UserProfileInput{User: p.UserID, Role: p.Role, Status: p.Status}
}

// AuthToken is the long-lived API token of a user. One per user.
type AuthToken struct {
	Key     string    `gorm:"type:varchar(512);primaryKey" json:"token"`
	UserID  uint      `gorm:"uniqueIndex;not null" json:"-"`
	User    *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Created time.Time `gorm:"autoCreateTime" json:"-"`
}
