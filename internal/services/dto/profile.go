package dto

type UpdatePsychologistProfileRequest struct {
	City            *string   `json:"city"`
	Experience      *int      `json:"experience" validate:"omitempty,min=0"`
	PricePerHour    *float64  `json:"price_per_hour" validate:"omitempty,min=0"`
	Description     *string   `json:"description"`
	Specializations *[]string `json:"specializations"`
	Languages       *[]string `json:"languages"`
	Certifications  *[]string `json:"certifications"`
	IsPublic        *bool     `json:"is_public"`
}

type UpdateInstituteProfileRequest struct {
	City        *string   `json:"city"`
	Address     *string   `json:"address"`
	Website     *string   `json:"website" validate:"omitempty,url"`
	Description *string   `json:"description"`
	Programs    *[]string `json:"programs"`
	IsPublic    *bool     `json:"is_public"`
}

type UpdateClientProfileRequest struct {
	City  *string `json:"city"`
	About *string `json:"about"`
}

type CatalogQuery struct {
	City     string `form:"city"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
