package request

type Consultation struct {
	Name        string `json:"name"        validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Preferences string `json:"preferences"`
}
