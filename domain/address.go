package domain

import "time"

type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Label     string    `gorm:"column:label;type:text" json:"label"`
	Recipient string    `gorm:"column:recipient;type:text;not null" json:"recipient"`
	Phone     string    `gorm:"column:phone;type:text" json:"phone"`
	Line1     string    `gorm:"column:line1;type:text;not null" json:"line1"`
	Line2     string    `gorm:"column:line2;type:text" json:"line2"`
	City      string    `gorm:"column:city;type:text" json:"city"`
	State     string    `gorm:"column:state;type:text" json:"state"`
	Postcode  string    `gorm:"column:postcode;type:text" json:"postcode"`
	IsDefault bool      `gorm:"column:is_default;default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "addresses"
}
