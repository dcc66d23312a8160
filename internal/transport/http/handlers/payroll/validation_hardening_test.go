package payrollhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madmenmarketingindia/mad-rating/internal/domain/payroll"
)

func validRecord() payroll.Record {
	return payroll.Record{
		EmployeeID:  "9c7af4f2-4d6f-4a0a-9a57-0f7f3c1f2a11",
		Month:       6,
		Year:        2025,
		TotalDays:   30,
		BasicSalary: 25000,
		HRA:         5000,
	}
}

func validationFields(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Fields []struct {
					Field  string `json:"field"`
					Reason string `json:"reason"`
				} `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.False(t, envelope.Success)
	require.Equal(t, "validation_error", envelope.Error.Code)
	fields := make(map[string]string, len(envelope.Error.Details.Fields))
	for _, issue := range envelope.Error.Details.Fields {
		fields[issue.Field] = issue.Reason
	}
	return fields
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()

	ok := h.validate(rec, "req-1", validRecord())

	assert.True(t, ok)
	assert.Empty(t, rec.Body.String())
}

func TestValidateRejectsNegativeDayCounts(t *testing.T) {
	h := &Handler{}
	payload := validRecord()
	payload.Absent = -1
	payload.Leaves = -3
	payload.LateAdjusted = -2
	rec := httptest.NewRecorder()

	ok := h.validate(rec, "req-2", payload)

	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := validationFields(t, rec.Body.Bytes())
	assert.Contains(t, fields, "absent")
	assert.Contains(t, fields, "leaves")
	assert.Contains(t, fields, "lateAdjusted")
	assert.Equal(t, "absent must not be negative", fields["absent"])
}

func TestValidateRejectsEachNegativeDayField(t *testing.T) {
	for _, field := range []string{"leaves", "leaveAdjusted", "absent", "lateIn", "lateAdjusted"} {
		t.Run(field, func(t *testing.T) {
			payload := validRecord()
			switch field {
			case "leaves":
				payload.Leaves = -1
			case "leaveAdjusted":
				payload.LeaveAdjusted = -1
			case "absent":
				payload.Absent = -1
			case "lateIn":
				payload.LateIn = -1
			case "lateAdjusted":
				payload.LateAdjusted = -1
			}
			rec := httptest.NewRecorder()

			ok := (&Handler{}).validate(rec, "req-3", payload)

			require.False(t, ok)
			fields := validationFields(t, rec.Body.Bytes())
			assert.Contains(t, fields, field)
		})
	}
}

func TestValidateRejectsTotalDaysOutOfRange(t *testing.T) {
	h := &Handler{}

	for _, total := range []int{-1, payroll.MaxTotalDays + 1} {
		payload := validRecord()
		payload.TotalDays = total
		rec := httptest.NewRecorder()

		ok := h.validate(rec, "req-4", payload)

		require.False(t, ok, "totalDays %d", total)
		fields := validationFields(t, rec.Body.Bytes())
		assert.Contains(t, fields, "totalDays")
	}
}
