package catalog

import "testing"

func TestClampStock(t *testing.T) {
	cases := []struct {
		stock, quantity, want int
	}{
		{10, 3, 7},
		{5, 5, 0},
		{2, 5, 0},
		{0, 1, 0},
		{1, 1, 0},
	}
	for _, c := range cases {
		if got := ClampStock(c.stock, c.quantity); got != c.want {
			t.Errorf("ClampStock(%d, %d) = %d, want %d", c.stock, c.quantity, got, c.want)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, name := range []string{"Tv", "Mobile", "Laptop", "Fashion"} {
		if !ValidCategory(name) {
			t.Errorf("%s should be a valid category", name)
		}
	}
	for _, name := range []string{"tv", "Groceries", "", "AllProducts"} {
		if ValidCategory(name) {
			t.Errorf("%s should not be a valid category", name)
		}
	}
}

func TestResolveBucketUnknown(t *testing.T) {
	if _, err := ResolveBucket("Groceries"); err == nil {
		t.Fatal("unknown category must error, not fall back")
	}
	if coll, err := ResolveBucket("Mobile"); err != nil || coll == nil {
		t.Fatalf("Mobile bucket should resolve, got %v", err)
	}
}
