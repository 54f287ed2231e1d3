package models

type User struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Phone          string
	Bio            string
	Address        string
	ProfilePicture string

	// Farmer-only fields. Approved gates login for farmers; customers are
	// approved at registration.
	FarmName    string
	Location    string
	Approved    bool `gorm:"default:false"`
	LicenseFile string

	RoleID uint `gorm:"index;not null"`
	Role   Role
}
