package schema_test

import (
	"testing"

	"item-store/internal/schema"
)

func TestAnalyzeMeaning(t *testing.T) {
	cases := map[string]string{
		"name":         "name",
		"email":        "email",
		"phone":        "phone",
		"note":         "description",
		"contact_tel":  "phone",
		"user_nm":      "name",
		"home_addr":    "address",
		"Company Name": "company",
		"zip":          "zipcode",
		"foo_bar":      "foo bar",
	}

	for in, want := range cases {
		if got := schema.AnalyzeMeaning(in); got != want {
			t.Errorf("AnalyzeMeaning(%q) = %q, want %q", in, got, want)
		}
	}
}
