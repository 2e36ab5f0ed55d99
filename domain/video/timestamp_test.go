package video

import (
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Timestamp
		wantErr bool
		errMsg  string
	}{
		{
			name:  "hours minutes seconds",
			input: "01:30:45",
			want:  Timestamp(5445000),
		},
		{
			name:  "with milliseconds",
			input: "00:00:10.250",
			want:  Timestamp(10250),
		},
		{
			name:  "short fraction is tenths",
			input: "00:00:01.5",
			want:  Timestamp(1500),
		},
		{
			name:  "minutes and seconds only",
			input: "02:05",
			want:  Timestamp(125000),
		},
		{
			name:  "all zeros",
			input: "00:00:00",
			want:  Timestamp(0),
		},
		{
			name:  "plain seconds",
			input: "40",
			want:  Timestamp(40000),
		},
		{
			name:  "fractional seconds with suffix",
			input: "12.5s",
			want:  Timestamp(12500),
		},
		{
			name:  "explicit milliseconds",
			input: "1500ms",
			want:  Timestamp(1500),
		},
		{
			name:  "surrounding whitespace",
			input: "  10  ",
			want:  Timestamp(10000),
		},
		{
			name:    "wrong separator",
			input:   "01-30-45",
			wantErr: true,
			errMsg:  "invalid timestamp format",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
			errMsg:  "invalid timestamp format",
		},
		{
			name:    "negative seconds",
			input:   "-5",
			wantErr: true,
			errMsg:  "invalid timestamp format",
		},
		{
			name:    "seconds overflow int64",
			input:   "99999999999999999999",
			wantErr: true,
			errMsg:  "invalid timestamp",
		},
		{
			name:    "seconds overflow milliseconds",
			input:   "9223372036854775",
			wantErr: true,
			errMsg:  "out of range",
		},
		{
			name:    "milliseconds overflow int64",
			input:   "99999999999999999999ms",
			wantErr: true,
			errMsg:  "invalid timestamp",
		},
		{
			name:    "minutes too high",
			input:   "01:60:00",
			wantErr: true,
			errMsg:  "minutes must be 0-59",
		},
		{
			name:    "seconds too high",
			input:   "01:30:60",
			wantErr: true,
			errMsg:  "seconds must be 0-59",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimestamp(%q) expected error, got nil", tt.input)
					return
				}
				if tt.errMsg != "" && !contains(err.Error(), tt.errMsg) {
					t.Errorf("ParseTimestamp(%q) error = %v, want error containing %q", tt.input, err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseTimestamp(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimestamp_String(t *testing.T) {
	tests := []struct {
		timestamp Timestamp
		want      string
	}{
		{0, "00:00:00.000"},
		{1, "00:00:00.001"},
		{3723004, "01:02:03.004"},
		{45296789, "12:34:56.789"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.timestamp.String(); got != tt.want {
				t.Errorf("Timestamp.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimestamp_Seconds(t *testing.T) {
	tests := []struct {
		timestamp Timestamp
		want      float64
	}{
		{0, 0},
		{1000, 1},
		{10500, 10.5},
		{250, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.timestamp.String(), func(t *testing.T) {
			if got := tt.timestamp.Seconds(); got != tt.want {
				t.Errorf("Timestamp.Seconds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{30, "30"},
		{10.5, "10.5"},
		{0.25, "0.25"},
		{0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSeconds(tt.in); got != tt.want {
				t.Errorf("FormatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimestamp_BeforeAfter(t *testing.T) {
	earlier := Timestamp(30000)
	later := Timestamp(60000)

	if !earlier.Before(later) {
		t.Error("expected earlier to be before later")
	}
	if later.Before(earlier) {
		t.Error("expected later to not be before earlier")
	}
	if earlier.Before(earlier) {
		t.Error("expected timestamp to not be before itself")
	}
	if !later.After(earlier) {
		t.Error("expected later to be after earlier")
	}
	if later.After(later) {
		t.Error("expected timestamp to not be after itself")
	}
}

func TestFromSeconds(t *testing.T) {
	if got := FromSeconds(120.0); got != 120000 {
		t.Errorf("FromSeconds(120) = %d, want 120000", got)
	}
	if got := FromSeconds(12.3456); got != 12345 {
		t.Errorf("FromSeconds(12.3456) = %d, want 12345", got)
	}
}

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
