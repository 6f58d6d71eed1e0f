package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateFormOrder(t *testing.T) {
	tests := []struct {
		name  string
		form  Form
		field string
	}{
		{name: "all empty reports name", form: Form{}, field: "name"},
		{name: "whitespace name", form: Form{Name: "  ", Category: "c", Model: "m", Year: "2000"}, field: "name"},
		{name: "category before model", form: Form{Name: "n", Year: "1"}, field: "category"},
		{name: "model before year", form: Form{Name: "n", Category: "c", Year: "abc"}, field: "model"},
		{name: "year not a number", form: Form{Name: "n", Category: "c", Model: "m", Year: "twenty"}, field: "year"},
		{name: "year blank", form: Form{Name: "n", Category: "c", Model: "m"}, field: "year"},
		{name: "year too old", form: Form{Name: "n", Category: "c", Model: "m", Year: "1949"}, field: "year"},
		{name: "year too new", form: Form{Name: "n", Category: "c", Model: "m", Year: "2025"}, field: "year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateForm(tt.form)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.field, ve.Field)
			require.NotEmpty(t, ve.Message)
			require.True(t, IsValidation(err))
		})
	}
}

func TestValidateFormBoundsInclusive(t *testing.T) {
	for _, year := range []string{"1950", "2024", " 1999 "} {
		body, err := ValidateForm(Form{Name: " Truck A ", Category: "Heavy ", Model: " X100", Year: year})
		require.NoError(t, err, year)
		require.Equal(t, "Truck A", body.Name)
		require.Equal(t, "Heavy", body.Category)
		require.Equal(t, "X100", body.Model)
	}
}
