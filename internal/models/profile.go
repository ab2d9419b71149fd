package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// PromotionState - платное "топ"-размещение профиля в каталоге.
// Инвариант: IsTop=true влечет ненулевой TopUntil; PromotionTier
// имеет смысл только пока IsTop=true.
type PromotionState struct {
	IsTop         bool       `gorm:"default:false" json:"is_top"`
	TopUntil      *time.Time `json:"top_until"`
	PromotionTier *int       `json:"promotion_tier"`
}

type PsychologistProfile struct {
	BaseModel
	UserID          string         `gorm:"uniqueIndex;not null" json:"user_id"`
	City            string         `json:"city"`
	Experience      int            `json:"experience"` // years
	PricePerHour    float64        `json:"price_per_hour"`
	Description     string         `json:"description"`
	Specializations datatypes.JSON `gorm:"type:jsonb" json:"specializations"` // ["КПТ", "тревожность"]
	Languages       datatypes.JSON `gorm:"type:jsonb" json:"languages"`       // ["русский", "казахский"]
	Certifications  datatypes.JSON `gorm:"type:jsonb" json:"certifications"`
	Rating          float64        `gorm:"default:0" json:"rating"`
	ProfileViews    int            `gorm:"default:0" json:"profile_views"`
	IsPublic        bool           `gorm:"default:true" json:"is_public"`
	PromotionState  `gorm:"embedded"`
}

type InstituteProfile struct {
	BaseModel
	UserID         string         `gorm:"uniqueIndex;not null" json:"user_id"`
	City           string         `json:"city"`
	Address        string         `json:"address"`
	Website        string         `json:"website"`
	Description    string         `json:"description"`
	Programs       datatypes.JSON `gorm:"type:jsonb" json:"programs"` // направления обучения
	Rating         float64        `gorm:"default:0" json:"rating"`
	IsPublic       bool           `gorm:"default:true" json:"is_public"`
	PromotionState `gorm:"embedded"`
}

type ClientProfile struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`
	City   string `json:"city"`
	About  string `json:"about"`
}

// JSON-списки парсятся один раз на границе модели,
// а не заново в каждом обработчике.

func (p *PsychologistProfile) GetSpecializations() []string {
	return decodeStringList(p.Specializations)
}

func (p *PsychologistProfile) SetSpecializations(values []string) {
	p.Specializations = encodeStringList(values)
}

func (p *PsychologistProfile) GetLanguages() []string {
	return decodeStringList(p.Languages)
}

func (p *PsychologistProfile) SetLanguages(values []string) {
	p.Languages = encodeStringList(values)
}

func (p *PsychologistProfile) GetCertifications() []string {
	return decodeStringList(p.Certifications)
}

func (p *PsychologistProfile) SetCertifications(values []string) {
	p.Certifications = encodeStringList(values)
}

func (p *InstituteProfile) GetPrograms() []string {
	return decodeStringList(p.Programs)
}

func (p *InstituteProfile) SetPrograms(values []string) {
	p.Programs = encodeStringList(values)
}

func decodeStringList(data datatypes.JSON) []string {
	var values []string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &values)
	}
	return values
}

func encodeStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}

// EmptyStringList - дефолт для JSON-колонок новых профилей
func EmptyStringList() datatypes.JSON {
	return datatypes.JSON(`[]`)
}
