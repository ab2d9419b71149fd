package models

import "time"

// Appointment - запись клиента на услугу к психологу
type Appointment struct {
	BaseModel
	ClientID       string            `gorm:"not null;index" json:"client_id"`
	PsychologistID string            `gorm:"not null;index" json:"psychologist_id"` // user id психолога
	ServiceID      string            `gorm:"not null;index" json:"service_id"`
	ScheduledAt    time.Time         `gorm:"not null" json:"scheduled_at"`
	Status         AppointmentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Comment        string            `json:"comment"`

	// Relations
	Service *ServiceItem `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
