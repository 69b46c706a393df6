package models

// Product price is free text ("$39.00", "free", ...) and is never parsed server side.
type Product struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Img   string `json:"img"`
	Tag   string `json:"tag"`
}
