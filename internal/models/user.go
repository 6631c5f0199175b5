package models

import "time"

// User represents a registered author account.
// Password holds the bcrypt digest and is never serialized.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"size:64;not null" json:"firstName"`
	LastName     string `gorm:"size:64;not null" json:"lastName"`
	EmailAddress string `gorm:"size:128;uniqueIndex;not null" json:"emailAddress"`
	UserName     string `gorm:"size:64;uniqueIndex;not null" json:"userName"`
	Password     string `gorm:"size:255;not null" json:"-"`

	PhoneNumber    string `gorm:"size:32" json:"phoneNumber,omitempty"`
	Bio            string `gorm:"size:512" json:"bio,omitempty"`
	Status         string `gorm:"size:128" json:"status,omitempty"`
	SecondaryEmail string `gorm:"size:128" json:"secondaryEmail,omitempty"`
	ProfilePicture string `gorm:"size:255" json:"profilePicture,omitempty"`

	IsDeleted bool `gorm:"index;not null;default:false" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
