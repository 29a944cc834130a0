package ratings

import (
	"strings"
	"testing"
)

func TestAverage(t *testing.T) {
	cases := []struct {
		values []int
		want   float64
	}{
		{nil, 0},
		{[]int{}, 0},
		{[]int{5}, 5},
		{[]int{1, 2, 3, 4, 5}, 3},
		{[]int{4, 5}, 4.5},
		{[]int{1, 1, 5}, 7.0 / 3.0},
	}
	for _, c := range cases {
		if got := Average(c.values); got != c.want {
			t.Errorf("Average(%v) = %v, want %v", c.values, got, c.want)
		}
	}
}

func TestParseRatingInput(t *testing.T) {
	value, comment, err := parseRatingInput(strings.NewReader(`{"value":4,"comment":"solid"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 4 || comment != "solid" {
		t.Fatalf("got value=%d comment=%q", value, comment)
	}
}

func TestParseRatingInputIgnoresIdentityFields(t *testing.T) {
	// spoofed name and id fields in the body must not surface anywhere
	value, comment, err := parseRatingInput(strings.NewReader(
		`{"value":5,"comment":"great","userName":"someone_else","userId":"usr_fake"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 5 || comment != "great" {
		t.Fatalf("got value=%d comment=%q", value, comment)
	}
}

func TestParseRatingInputRejectsBadValues(t *testing.T) {
	for _, body := range []string{`{"value":0}`, `{"value":6}`, `{}`, `not json`} {
		if _, _, err := parseRatingInput(strings.NewReader(body)); err == nil {
			t.Fatalf("body %q accepted", body)
		}
	}
}
