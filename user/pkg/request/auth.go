package request

import "encoding/json"

type Register struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r Register) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"name":     r.Name,
		"email":    r.Email,
		"password": "***",
	})
}

type Login struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (l Login) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"email":    l.Email,
		"password": "***",
	})
}
