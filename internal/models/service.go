package models

// ServiceItem - позиция прайс-листа психолога или учебного центра
type ServiceItem struct {
	BaseModel
	OwnerID     string  `gorm:"not null;index" json:"owner_id"` // user id владельца
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
}
