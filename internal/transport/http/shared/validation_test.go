package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorCollectsAndSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("name", "", "name is required")
	v.NonNegative("amount", -5)
	v.IntRange("month", 13, 1, 12)

	require.True(t, v.HasIssues())
	issues := v.Issues()
	require.Len(t, issues, 3)
	assert.Equal(t, "amount", issues[0].Field)
	assert.Equal(t, "month", issues[1].Field)
	assert.Equal(t, "name", issues[2].Field)
}

func TestValidatorPasses(t *testing.T) {
	v := NewValidator()
	v.Required("name", "Asha", "name is required")
	v.NonNegative("amount", 0)
	v.Period(6, 2025)

	assert.False(t, v.HasIssues())
	rec := httptest.NewRecorder()
	assert.False(t, v.Reject(rec, "req-1"))
	assert.Zero(t, rec.Body.Len())
}

func TestValidatorEnum(t *testing.T) {
	allowed := []string{"Active", "Inactive"}

	v := NewValidator()
	v.Enum("status", "active", allowed, "unknown status")
	assert.False(t, v.HasIssues(), "enum match is case-insensitive")

	v = NewValidator()
	v.Enum("status", "Archived", allowed, "unknown status")
	assert.True(t, v.HasIssues())

	v = NewValidator()
	v.Enum("status", "", allowed, "unknown status")
	assert.False(t, v.HasIssues(), "empty enum value is Required's job")
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()

	parsed, ok := v.Date("date", "2025-06-15")
	require.True(t, ok)
	assert.Equal(t, 2025, parsed.Year())

	_, ok = v.Date("other", "15/06/2025")
	assert.False(t, ok)
	assert.True(t, v.HasIssues())
}

func TestRejectWritesEnvelope(t *testing.T) {
	v := NewValidator()
	v.Required("employeeId", "", "employee id is required")

	rec := httptest.NewRecorder()
	require.True(t, v.Reject(rec, "req-42"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "validation_error", envelope.Error.Code)
	assert.Equal(t, "req-42", envelope.RequestID)
	require.Len(t, envelope.Error.Details.Fields, 1)
	assert.Equal(t, "employeeId", envelope.Error.Details.Fields[0].Field)
}

func TestPeriodBounds(t *testing.T) {
	tests := []struct {
		name       string
		month      int
		year       int
		wantIssues bool
	}{
		{name: "valid", month: 1, year: 2025},
		{name: "month too high", month: 13, year: 2025, wantIssues: true},
		{name: "month zero", month: 0, year: 2025, wantIssues: true},
		{name: "year out of range", month: 6, year: 1999, wantIssues: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			v.Period(tc.month, tc.year)
			assert.Equal(t, tc.wantIssues, v.HasIssues())
		})
	}
}
