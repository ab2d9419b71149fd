package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Article - публикация психолога или учебного центра
type Article struct {
	BaseModel
	AuthorID    string         `gorm:"not null;index" json:"author_id"`
	Title       string         `gorm:"not null" json:"title"`
	Content     string         `gorm:"type:text" json:"content"`
	Tags        datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	IsPublished bool           `gorm:"default:true" json:"is_published"`
}

func (a *Article) GetTags() []string {
	var tags []string
	if len(a.Tags) > 0 {
		_ = json.Unmarshal(a.Tags, &tags)
	}
	return tags
}

func (a *Article) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	a.Tags = datatypes.JSON(data)
}
