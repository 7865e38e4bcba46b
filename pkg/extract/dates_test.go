package extract

import "testing"

func TestParseDateStr(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"month_day_year", "7/21/2021", "2021-07-21"},
		{"month_day_short_year", "7/21/21", "2021-07-21"},
		{"month_year", "07/2021", "2021-07-01"},
		{"month_short_year", "7/21", "2021-07-01"},
		{"padded", "  12/31/2030  ", "2030-12-31"},
		{"markup_trimmed", "*07/2021*", "2021-07-01"},
		{"empty", "", ""},
		{"not_a_date", "TBD", ""},
		{"wrong_separator", "2021-07-01", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseDateStr(tc.in); got != tc.want {
				t.Errorf("ParseDateStr(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractDates(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		wantStart string
		wantEnd   string
	}{
		{"full_range", "07/2021 - 06/2025", "2021-07-01", "2025-06-01"},
		{"day_granular", "7/1/2021-6/30/2025", "2021-07-01", "2025-06-30"},
		{"en_dash", "07/2021 – 06/2025", "2021-07-01", "2025-06-01"},
		{"em_dash", "07/2021—06/2025", "2021-07-01", "2025-06-01"},
		{"embedded_in_text", "Project/Proposal Start and End Date: 1/1/2026 - 12/31/2030 (anticipated)", "2026-01-01", "2030-12-31"},
		{"no_range", "ongoing", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := ExtractDates(tc.in)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Errorf("ExtractDates(%q) = (%q, %q), want (%q, %q)",
					tc.in, start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}
