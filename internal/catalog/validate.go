package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/vehicledesk/internal/api"
)

// Year bounds accepted by the add form, inclusive.
const (
	MinYear = 1950
	MaxYear = 2024
)

// Form is the raw add-vehicle input as typed.
type Form struct {
	Name     string
	Category string
	Model    string
	Year     string
}

// ValidationError is a local input failure. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidateForm checks name, category, model, then year, and reports the first
// failure. On success it returns the trimmed request body.
func ValidateForm(f Form) (api.NewVehicle, error) {
	name := strings.TrimSpace(f.Name)
	category := strings.TrimSpace(f.Category)
	model := strings.TrimSpace(f.Model)
	switch {
	case name == "":
		return api.NewVehicle{}, &ValidationError{Field: "name", Message: "Vehicle name is required."}
	case category == "":
		return api.NewVehicle{}, &ValidationError{Field: "category", Message: "Category is required."}
	case model == "":
		return api.NewVehicle{}, &ValidationError{Field: "model", Message: "Model is required."}
	}
	year, err := strconv.Atoi(strings.TrimSpace(f.Year))
	if err != nil || year < MinYear || year > MaxYear {
		return api.NewVehicle{}, &ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("Enter a valid year (%d-%d).", MinYear, MaxYear),
		}
	}
	return api.NewVehicle{Name: name, Category: category, Model: model, Year: year}, nil
}
