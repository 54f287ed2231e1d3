package models

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64 `gorm:"not null"`
	Quantity    uint    `gorm:"not null"` // stock on hand, decremented only by checkout
	Image       string
	Approved    bool `gorm:"default:false"`

	FarmerID   uint `gorm:"index;not null"`
	Farmer     User
	CategoryID *uint `gorm:"index"` // nullable
	Category   *Category
}
