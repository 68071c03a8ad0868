package numbeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCityURL(t *testing.T) {
	builder := NewURLBuilder(
		DefaultBaseURL+"/",
		map[string]string{"Lucknow": "Lucknow-Lakhnau"},
		[]string{"imphal"},
	)

	tests := []struct {
		name    string
		city    string
		country string
		want    string
	}{
		{"plain city", "Pune", "India", DefaultBaseURL + "/Pune"},
		{"spaces become hyphens", "New Delhi", "India", DefaultBaseURL + "/New-Delhi"},
		{"country suffixed city", "Imphal", "India", DefaultBaseURL + "/Imphal-India"},
		{"country suffix is case-insensitive", "IMPHAL", "India", DefaultBaseURL + "/IMPHAL-India"},
		{"country suffix needs a country", "Imphal", "", DefaultBaseURL + "/Imphal"},
		{"city slug override", "lucknow", "India", DefaultBaseURL + "/Lucknow-Lakhnau"},
		{"trims whitespace", "  Pune ", "India", DefaultBaseURL + "/Pune"},
		{"escapes path characters", "Foo/Bar", "", DefaultBaseURL + "/Foo%2FBar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, builder.CityURL(tt.city, tt.country))
		})
	}
}

func TestNewURLBuilderDefaultBase(t *testing.T) {
	builder := NewURLBuilder("", nil, nil)
	assert.Equal(t, DefaultBaseURL+"/Pune", builder.CityURL("Pune", "India"))
}
