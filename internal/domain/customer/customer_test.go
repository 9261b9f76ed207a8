package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInfo() Info {
	return Info{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 Flavor Street, Foodville",
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, Validate(validInfo()))
}

func TestValidate_SingleViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Info)
		want   string
	}{
		{"empty name", func(i *Info) { i.Name = "" }, "Name is required"},
		{"whitespace name", func(i *Info) { i.Name = "   " }, "Name is required"},
		{"missing at sign", func(i *Info) { i.Email = "asha.example.com" }, "Valid email is required"},
		{"no domain dot", func(i *Info) { i.Email = "asha@example" }, "Valid email is required"},
		{"space in email", func(i *Info) { i.Email = "a sha@example.com" }, "Valid email is required"},
		{"short phone", func(i *Info) { i.Phone = "12345" }, "Valid 10-digit phone number is required"},
		{"long phone", func(i *Info) { i.Phone = "98765432100" }, "Valid 10-digit phone number is required"},
		{"letters in phone", func(i *Info) { i.Phone = "98765abc10" }, "Valid 10-digit phone number is required"},
		{"empty address", func(i *Info) { i.Address = "" }, "Delivery address is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.mutate(&info)

			errs := Validate(info)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.want, errs[0])
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	errs := Validate(Info{})
	assert.Equal(t, []string{
		"Name is required",
		"Valid email is required",
		"Valid 10-digit phone number is required",
		"Delivery address is required",
	}, errs)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Violations: []string{"Name is required", "Delivery address is required"}}
	assert.Equal(t, "invalid customer info: Name is required; Delivery address is required", err.Error())
}
