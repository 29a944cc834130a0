package utils

import (
	"net/http/httptest"
	"testing"
)

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Fatalf("expected length 16, got %d", len(s))
	}
	if s == GenerateRandomString(16) {
		t.Fatal("two generated ids should not collide")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":        "photo.jpg",
		"../../etc/passwd": "passwd",
		"a b?c.png":        "a_b_c.png",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	if !ContainsIgnoreCase("Galaxy S24 Ultra", "galaxy") {
		t.Fatal("expected case-insensitive match")
	}
	if ContainsIgnoreCase("Galaxy S24 Ultra", "pixel") {
		t.Fatal("unexpected match")
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/catalog/products?skip=20&limit=50", nil)
	skip, limit := ParsePagination(r, 10, 100)
	if skip != 20 || limit != 50 {
		t.Fatalf("got skip=%d limit=%d", skip, limit)
	}

	r = httptest.NewRequest("GET", "/api/catalog/products", nil)
	skip, limit = ParsePagination(r, 10, 100)
	if skip != 0 || limit != 10 {
		t.Fatalf("defaults: got skip=%d limit=%d", skip, limit)
	}

	r = httptest.NewRequest("GET", "/api/catalog/products?skip=-5&limit=9999", nil)
	skip, limit = ParsePagination(r, 10, 100)
	if skip != 0 || limit != 100 {
		t.Fatalf("clamping: got skip=%d limit=%d", skip, limit)
	}
}
