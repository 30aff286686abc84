package domain

import "testing"

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cool T-Shirt", "cool_t-shirt"},
		{"Men's Chill Crew Neck Sweatshirt", "mens_chill_crew_neck_sweatshirt"},
		{"Jackets, Coats. Etc", "jackets_coats_etc"},
		{"already_normalized", "already_normalized"},
	}
	for _, tc := range cases {
		if got := NormalizeSlug(tc.in); got != tc.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSlug_Idempotent(t *testing.T) {
	inputs := []string{"Cool T-Shirt", "Men's Quilted Shirt Jacket", "a.b,c'd e"}
	for _, in := range inputs {
		once := NormalizeSlug(in)
		if twice := NormalizeSlug(once); twice != once {
			t.Errorf("NormalizeSlug not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestEnsureSlug_FallsBackToTitle(t *testing.T) {
	p := Product{Title: "Cool T-Shirt"}
	p.EnsureSlug()
	if p.Slug != "cool_t-shirt" {
		t.Fatalf("expected slug derived from title, got %q", p.Slug)
	}

	p = Product{Title: "Cool T-Shirt", Slug: "Custom Slug"}
	p.EnsureSlug()
	if p.Slug != "custom_slug" {
		t.Fatalf("expected supplied slug normalized, got %q", p.Slug)
	}
}

func TestHasAnyRole(t *testing.T) {
	u := User{Roles: []Role{RoleUser}}
	if !u.HasAnyRole([]Role{RoleUser, RoleAdmin}) {
		t.Fatalf("expected overlap to allow")
	}
	if u.HasAnyRole([]Role{RoleAdmin}) {
		t.Fatalf("expected no overlap to deny")
	}
	if u.HasAnyRole(nil) {
		t.Fatalf("empty requirement must not match")
	}

	none := User{}
	if none.HasAnyRole([]Role{RoleUser}) {
		t.Fatalf("user without roles must never match")
	}
}
