package pair

type CreatePairRequest struct {
	SiteID      string `json:"site_id" binding:"required,uuid"`
	EmployeeAID string `json:"employee_a_id" binding:"required,uuid"`
	EmployeeBID string `json:"employee_b_id" binding:"required,uuid"`
}

type PairResponse struct {
	ID          string `json:"id"`
	SiteID      string `json:"site_id"`
	EmployeeAID string `json:"employee_a_id"`
	EmployeeBID string `json:"employee_b_id"`
	IsActive    bool   `json:"is_active"`
}
