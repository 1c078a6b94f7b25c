package dto

type SectionGeometry struct {
	Id     string  `json:"id" validate:"required"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Height float64 `json:"height" validate:"gte=0"`
}

type ActiveSectionRequest struct {
	Sections       []SectionGeometry `json:"sections" validate:"dive"`
	ViewportHeight float64           `json:"viewport_height" validate:"gt=0"`
	HeaderOffset   *float64          `json:"header_offset,omitempty" validate:"omitempty,gte=0"`
	Current        string            `json:"current"`
}

type ActiveSectionResponse struct {
	Active string `json:"active"`
}
