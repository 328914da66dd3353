package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequestMasksPassword(t *testing.T) {
	expected, _ := json.Marshal(map[string]string{"email": "email", "password": "***"})
	loginReq := Login{Email: "email", Password: "password"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "password", loginReq.Password)
}

func TestRegisterRequestMasksPassword(t *testing.T) {
	registerReq := Register{Name: "name", Email: "email", Password: "password"}

	actual, _ := json.Marshal(registerReq)

	assert.NotContains(t, string(actual), "password\":\"password")
	assert.Contains(t, string(actual), `"password":"***"`)
}
