package totals_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/totals"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `12.5`, 12.5},
		{"integer", `7`, 7},
		{"numeric_string", `"42.25"`, 42.25},
		{"thousands_separator", `"1,250.50"`, 1250.5},
		{"padded_string", `"  3 "`, 3},
		{"empty_string", `""`, 0},
		{"garbage_string", `"abc"`, 0},
		{"null", `null`, 0},
		{"bool", `true`, 0},
		{"object", `{"a":1}`, 0},
		{"negative", `"-5"`, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v struct {
				N totals.Number `json:"n"`
			}
			err := json.Unmarshal([]byte(`{"n":`+tt.raw+`}`), &v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.N.Float64())
		})
	}
}

func TestNumber_MissingFieldIsZero(t *testing.T) {
	var v struct {
		N totals.Number `json:"n"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &v))
	assert.Zero(t, v.N.Float64())
}

func TestParseNumber_NonFinite(t *testing.T) {
	assert.Zero(t, totals.ParseNumber("NaN"))
	assert.Zero(t, totals.ParseNumber("Inf"))
}

func TestOptionalNumber(t *testing.T) {
	var v struct {
		Paid totals.OptionalNumber `json:"paid"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{}`), &v))
	assert.False(t, v.Paid.Valid)
	assert.Nil(t, v.Paid.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`{"paid":null}`), &v))
	assert.False(t, v.Paid.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"paid":"150"}`), &v))
	require.NotNil(t, v.Paid.Ptr())
	assert.Equal(t, 150.0, *v.Paid.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`{"paid":"oops"}`), &v))
	assert.True(t, v.Paid.Valid)
	assert.Equal(t, 0.0, *v.Paid.Ptr())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"paid":0}`, string(out))
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Zero Rupees Only"},
		{5, "Five Rupees Only"},
		{246, "Two Hundred and Forty Six Rupees Only"},
		{1000, "One Thousand Rupees Only"},
		{100000, "One Lakh Rupees Only"},
		{1234567.89, "Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven Rupees and Eighty Nine Paise Only"},
		{100000000, "Ten Crore Rupees Only"},
		{0.5, "Zero Rupees and Fifty Paise Only"},
		{99999999999999, "Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Rupees Only"},
		{1e17, "100000000000000000.00 Rupees Only"},
		{1e19, "10000000000000000000.00 Rupees Only"},
		{-1e19, "Minus 10000000000000000000.00 Rupees Only"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, totals.AmountInWords(tt.in))
	}
}
