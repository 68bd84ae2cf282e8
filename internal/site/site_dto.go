package site

type CreateSiteRequest struct {
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude    float64 `json:"longitude" binding:"required,min=-180,max=180"`
	RadiusMeters float64 `json:"radius_meters"`
}

type UpdateSiteRequest struct {
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude    float64 `json:"longitude" binding:"required,min=-180,max=180"`
	RadiusMeters float64 `json:"radius_meters"`
	IsActive     *bool   `json:"is_active"`
}

type SiteResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
}
