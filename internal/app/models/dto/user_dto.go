package dto

// UpdateProfileRequest changes self-service profile fields; nil fields are left unchanged
type UpdateProfileRequest struct {
	FullName *string  `json:"fullName,omitempty" binding:"omitempty,max=255"`
	College  *string  `json:"college,omitempty" binding:"omitempty,max=255"`
	Course   *string  `json:"course,omitempty" binding:"omitempty,max=255"`
	Branch   *string  `json:"branch,omitempty" binding:"omitempty,max=255"`
	Year     *int     `json:"year,omitempty" binding:"omitempty,min=1,max=10"`
	Skills   []string `json:"skills,omitempty" binding:"omitempty,dive,skill"`
	About    *string  `json:"about,omitempty"`
}

// UpdateAdminFieldsRequest changes the admin-only profile fields
type UpdateAdminFieldsRequest struct {
	AdminAbout  *string  `json:"adminAbout,omitempty"`
	AdminSkills []string `json:"adminSkills,omitempty" binding:"omitempty,dive,skill"`
}

// ChangeRoleRequest asks for a role transition; Passphrase is only consulted for promotion
type ChangeRoleRequest struct {
	Role       string `json:"role" binding:"required,oneof=student admin" example:"admin"`
	Passphrase string `json:"passphrase,omitempty"`
}
