package qna

import "testing"

func TestFormatMinorUnits(t *testing.T) {
	cases := map[int64]string{
		0:      "0",
		100:    "1",
		50000:  "500",
		1280:   "12.80",
		105:    "1.05",
		999999: "9999.99",
	}
	for in, want := range cases {
		if got := formatMinorUnits(in); got != want {
			t.Errorf("formatMinorUnits(%d) = %q, want %q", in, got, want)
		}
	}
}
