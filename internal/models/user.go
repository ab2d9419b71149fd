package models

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Name         string   `gorm:"not null" json:"name"`
	Phone        string   `json:"phone"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	IsVerified   bool     `gorm:"default:false" json:"is_verified"`
	IsActive     bool     `gorm:"default:true" json:"is_active"`

	// Relations
	PsychologistProfile *PsychologistProfile `gorm:"foreignKey:UserID" json:"-"`
	InstituteProfile    *InstituteProfile    `gorm:"foreignKey:UserID" json:"-"`
	ClientProfile       *ClientProfile       `gorm:"foreignKey:UserID" json:"-"`
}
