package domain

import (
	"time"

	"github.com/google/uuid"
)

type Orders struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	LaptopID    uuid.UUID `gorm:"column:laptop_id;type:uuid;not null" json:"laptop_id"`
	AddressID   uint      `gorm:"column:address_id" json:"address_id"`
	Quantity    int       `gorm:"column:quantity;not null" json:"quantity"`
	PriceEach   float64   `gorm:"column:price_each;type:numeric" json:"price_each"`
	Subtotal    float64   `gorm:"column:subtotal;type:numeric" json:"subtotal"`
	OrderStatus string    `gorm:"column:order_status;type:text" json:"order_status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Orders) TableName() string {
	return "orders"
}
