package models

// PromotionRequest - запись леджера о покупке продвижения.
// Никогда не удаляется: служит историей платежей.
type PromotionRequest struct {
	BaseModel
	UserID    string          `gorm:"not null;index" json:"user_id"`
	Type      PromotionType   `gorm:"type:varchar(20);not null" json:"type"`
	EntityID  string          `gorm:"not null;index" json:"entity_id"`
	PaymentID string          `gorm:"uniqueIndex;not null" json:"payment_id"` // ID платежа у провайдера
	Amount    float64         `json:"amount"`
	Tier      int             `json:"tier"`
	Status    PromotionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
