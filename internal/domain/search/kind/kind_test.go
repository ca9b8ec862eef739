package kind

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		k    Kind
		want bool
	}{
		{Page, true},
		{Section, true},
		{Faq, true},
		{Blog, true},
		{Menu, true},
		{"", false},
		{"post", false},
	}
	for _, tc := range tests {
		if got := tc.k.IsValid(); got != tc.want {
			t.Errorf("Kind(%q).IsValid() = %v, want %v", tc.k, got, tc.want)
		}
	}
}

func TestIsStatic(t *testing.T) {
	for _, k := range []Kind{Page, Section} {
		if !k.IsStatic() {
			t.Errorf("expected %q to be static", k)
		}
	}
	for _, k := range []Kind{Faq, Blog, Menu} {
		if k.IsStatic() {
			t.Errorf("expected %q to be non-static", k)
		}
	}
}
