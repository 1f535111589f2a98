package validate_test

import (
	"testing"

	"rewear/internal/validate"
)

func TestQ(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", true},
		{"  denim  ", "denim", true},
		{"summer dress", "summer dress", true},
		{"<script>", "", false},
		{"drop;table", "", false},
	}
	for _, tc := range cases {
		got, ok := validate.Q(tc.in)
		if ok != tc.ok {
			t.Fatalf("Q(%q): want ok=%v, got %v", tc.in, tc.ok, ok)
		}
		if ok && got != tc.want {
			t.Fatalf("Q(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestCategoryAndCondition(t *testing.T) {
	for _, s := range []string{"", "All", "Outerwear", "Shoes"} {
		if _, ok := validate.Category(s); !ok {
			t.Fatalf("Category(%q) should be accepted", s)
		}
	}
	if _, ok := validate.Category("Hats"); ok {
		t.Fatal("unknown category accepted")
	}
	for _, s := range []string{"", "All", "Like New", "Fair"} {
		if _, ok := validate.Condition(s); !ok {
			t.Fatalf("Condition(%q) should be accepted", s)
		}
	}
	if _, ok := validate.Condition("Mint"); ok {
		t.Fatal("unknown condition accepted")
	}
}

func TestSortKey(t *testing.T) {
	for _, s := range []string{"", "newest", "oldest", "points-low", "points-high"} {
		if _, ok := validate.SortKey(s); !ok {
			t.Fatalf("SortKey(%q) should be accepted", s)
		}
	}
	if _, ok := validate.SortKey("price-desc"); ok {
		t.Fatal("unknown sort key accepted")
	}
}

func TestImage(t *testing.T) {
	good := []string{
		"items/0b6a9c2e.jpg",
		"items/photo_1.jpeg",
		"https://images.example.com/dress.jpg",
	}
	for _, s := range good {
		if !validate.Image(s) {
			t.Fatalf("Image(%q) should be accepted", s)
		}
	}
	bad := []string{
		"",
		"ftp://host/a.jpg",
		"items/../../etc/passwd",
		"items/shot.gif",
	}
	for _, s := range bad {
		if validate.Image(s) {
			t.Fatalf("Image(%q) should be rejected", s)
		}
	}
}

func TestPassword(t *testing.T) {
	if !validate.Password("Passw0rd!") {
		t.Fatal("known-good password rejected")
	}
	for _, s := range []string{"short1!", "alllowercase1!", "NOLOWER1!", "NoDigits!!", "NoSymbol11"} {
		if validate.Password(s) {
			t.Fatalf("Password(%q) should be rejected", s)
		}
	}
}
