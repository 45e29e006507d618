package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calbot/models"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		timeStr string
		want    models.DateTime
		wantErr string
	}{
		{
			name:    "valid padded afternoon",
			dateStr: "15-06-2024",
			timeStr: "02:30 PM",
			want:    models.DateTime{Year: 2024, Month: 6, Day: 15, Hour: 14, Minute: 30},
		},
		{
			name:    "unpadded hour and lowercase meridiem",
			dateStr: "1-1-2025",
			timeStr: "9:05 am",
			want:    models.DateTime{Year: 2025, Month: 1, Day: 1, Hour: 9, Minute: 5},
		},
		{
			name:    "surrounding whitespace on time",
			dateStr: "15-06-2024",
			timeStr: "  11:45 pm ",
			want:    models.DateTime{Year: 2024, Month: 6, Day: 15, Hour: 23, Minute: 45},
		},
		{
			name:    "twelve PM is noon",
			dateStr: "15-06-2024",
			timeStr: "12:00 PM",
			want:    models.DateTime{Year: 2024, Month: 6, Day: 15, Hour: 12, Minute: 0},
		},
		{
			name:    "wrong date delimiter",
			dateStr: "15/06/2024",
			timeStr: "02:30 PM",
			wantErr: "Date must be in DD-MM-YYYY format.",
		},
		{
			name:    "two date components",
			dateStr: "15-06",
			timeStr: "02:30 PM",
			wantErr: "Date must be in DD-MM-YYYY format.",
		},
		{
			name:    "non-numeric date component",
			dateStr: "15-Jun-2024",
			timeStr: "02:30 PM",
			wantErr: "Date must be in DD-MM-YYYY format.",
		},
		{
			name:    "24-hour clock rejected",
			dateStr: "15-06-2024",
			timeStr: "14:30",
			wantErr: "Time must be in HH:MM AM/PM format.",
		},
		{
			name:    "missing meridiem marker",
			dateStr: "15-06-2024",
			timeStr: "02:30",
			wantErr: "Time must be in HH:MM AM/PM format.",
		},
		{
			name:    "minute out of range",
			dateStr: "15-06-2024",
			timeStr: "02:60 PM",
			wantErr: "Time must be in HH:MM AM/PM format.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.dateStr, tt.timeStr)
			if tt.wantErr != "" {
				require.Error(t, err)
				var formatErr *FormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The parser checks syntax only: day/month values are not validated against
// the calendar, so an impossible date like 31 February parses cleanly and
// its fields are preserved verbatim. The calendar provider is the layer
// that rejects such dates. Changing this requires a coordinated change in
// the flow's validation stages, not a local fix here.
func TestParseDateTimeSkipsRangeValidation(t *testing.T) {
	got, err := ParseDateTime("31-02-2024", "02:30 PM")
	require.NoError(t, err)
	assert.Equal(t, 31, got.Day)
	assert.Equal(t, 2, got.Month)
	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, "2024-02-31T14:30:00", got.ISO8601())
}

func TestDateTimeOrdering(t *testing.T) {
	base := models.DateTime{Year: 2024, Month: 6, Day: 15, Hour: 14, Minute: 30}

	later := base
	later.Minute = 31
	assert.True(t, later.After(base))
	assert.False(t, base.After(later))
	assert.False(t, base.After(base))

	nextDay := base
	nextDay.Day = 16
	nextDay.Hour = 0
	nextDay.Minute = 0
	assert.True(t, nextDay.After(base))
}
