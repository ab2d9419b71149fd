package dto

import "time"

type CreateServiceRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	DurationMin int     `json:"duration_min" validate:"min=0"`
}

type UpdateServiceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	DurationMin *int     `json:"duration_min" validate:"omitempty,min=0"`
	IsActive    *bool    `json:"is_active"`
}

type CreateArticleRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

type UpdateArticleRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"is_published"`
}

type ArticleListQuery struct {
	AuthorID string `form:"author_id"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type CreateAppointmentRequest struct {
	ServiceID   string    `json:"service_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Comment     string    `json:"comment"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}
