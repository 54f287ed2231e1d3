package models

const (
	RoleAdmin    = "admin"
	RoleFarmer   = "farmer"
	RoleCustomer = "customer"
)

type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
}
