package models

// Product represents a catalogue entry.
type Product struct {
	ID         uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	PartNumber string  `json:"partNumber" gorm:"uniqueIndex;type:varchar(100);not null"`
	PartName   string  `json:"partName" gorm:"type:varchar(255);not null"`
	Category   string  `json:"category" gorm:"index;type:varchar(100);not null"`
	Price      float64 `json:"price" gorm:"not null"`
	Stock      int     `json:"stock" gorm:"not null"`
}

// ProductRequest is the body accepted when adding a product.
// Fields are pointers so that an absent value can be told apart from a zero value.
type ProductRequest struct {
	PartNumber *string  `json:"partNumber" validate:"required"`
	PartName   *string  `json:"partName" validate:"required"`
	Category   *string  `json:"category" validate:"required"`
	Price      *float64 `json:"price" validate:"required"`
	Stock      *int     `json:"stock" validate:"required"`
}
