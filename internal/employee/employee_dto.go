package employee

type RegisterEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	Password         string `json:"password" binding:"required,min=6"`
	Role             string `json:"role"`
	BiometricRef     string `json:"biometric_ref"`
	SecurityQuestion string `json:"security_question" binding:"required"`
	SecurityAnswer   string `json:"security_answer" binding:"required"`
	ConsentLocation  bool   `json:"consent_location"`
	ConsentBiometric bool   `json:"consent_biometric"`
	ConsentPrivacy   bool   `json:"consent_privacy"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	EmployeeNumber   string `json:"employee_number"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Role             string `json:"role"`
	SecurityQuestion string `json:"security_question,omitempty"`
	ConsentLocation  bool   `json:"consent_location"`
	ConsentBiometric bool   `json:"consent_biometric"`
	ConsentPrivacy   bool   `json:"consent_privacy"`
	IsActive         bool   `json:"is_active"`
}
