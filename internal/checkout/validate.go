package checkout

import (
	"regexp"
	"strings"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/domain"
)

var (
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

// Validate checks the delivery fields locally. It returns a *ValidationError
// for the first problem found.
func Validate(info domain.CustomerInfo) error {
	required := []struct {
		field string
		value string
	}{
		{"name", info.Name},
		{"phone", info.Phone},
		{"address", info.Address},
		{"city", info.City},
		{"pincode", info.Pincode},
		{"state", info.State},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{
				Field:   r.field,
				Title:   "Please fill all fields",
				Message: "All delivery information fields are required.",
			}
		}
	}

	if !phonePattern.MatchString(info.Phone) {
		return &ValidationError{
			Field:   "phone",
			Title:   "Invalid phone number",
			Message: "Please enter a valid 10-digit phone number.",
		}
	}

	if !pincodePattern.MatchString(info.Pincode) {
		return &ValidationError{
			Field:   "pincode",
			Title:   "Invalid pincode",
			Message: "Please enter a valid 6-digit pincode.",
		}
	}

	return nil
}
