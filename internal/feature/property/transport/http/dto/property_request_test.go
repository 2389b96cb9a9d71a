package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFromJSON(t *testing.T) {
	t.Parallel()

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Cozy Flat",
		"price": 15000,
		"amenities": ["WiFi", "Lift", 3],
		"details": {"1RK": {"price": "15000"}},
		"featured": true,
		"gmapLink": null
	}`), &body))

	fields := FieldsFromJSON(body)

	assert.Equal(t, []string{"Cozy Flat"}, fields["title"])
	assert.Equal(t, []string{"15000"}, fields["price"])
	assert.Equal(t, []string{"WiFi", "Lift", "3"}, fields["amenities"])
	assert.JSONEq(t, `{"1RK":{"price":"15000"}}`, fields["details"][0])
	assert.Equal(t, []string{"true"}, fields["featured"])
	assert.NotContains(t, fields, "gmapLink")
}
