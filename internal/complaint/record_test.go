package complaint_test

import (
	"testing"
	"time"

	"cdash/internal/complaint"

	"github.com/stretchr/testify/assert"
)

func TestExtractReporter(t *testing.T) {
	tests := map[string]struct {
		subject string
		want    string
	}{
		"SimpleMatch": {
			subject: "Issue X reported by Jane Doe",
			want:    "Jane Doe",
		},
		"TrailingWhitespace": {
			subject: "Damaged item reported by Bob Smith   ",
			want:    "Bob Smith",
		},
		"NoMatch": {
			subject: "Damaged item in tote",
			want:    "Unknown",
		},
		"EmptySubject": {
			subject: "",
			want:    "Unknown",
		},
		"WhitespaceSubject": {
			subject: "   ",
			want:    "Unknown",
		},
		"CaseSensitive": {
			subject: "Issue Reported By Jane Doe",
			want:    "Unknown",
		},
		"ReporterIsRestOfLine": {
			subject: "wrong barcode reported by Jane Doe (night shift)",
			want:    "Jane Doe (night shift)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, complaint.ExtractReporter(tt.subject))
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Undefined", complaint.NormalizeCategory(""))
	assert.Equal(t, "Undefined", complaint.NormalizeCategory("   "))
	assert.Equal(t, "Wrong Item", complaint.NormalizeCategory("Wrong Item"))
	assert.Equal(t, "Wrong Item", complaint.NormalizeCategory("  Wrong Item "))
}

func TestRecordDerive(t *testing.T) {
	r := complaint.Record{
		ReportTime: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
	}
	r.Derive()

	assert.Equal(t, "2026-03-02", r.Date)
	assert.Equal(t, "Monday", r.Day)
	assert.Equal(t, 14, r.Hour)
}
