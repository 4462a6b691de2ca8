package models

import "testing"

func TestRoleID_Name(t *testing.T) {
	tests := []struct {
		role RoleID
		want string
	}{
		{RoleAdmin, "admin"},
		{RolePublicador, "publicador"},
		{RoleAdoptante, "adoptante"},
		{RoleRefugio, "refugio"},
		{RoleID(99), ""},
	}

	for _, tt := range tests {
		if got := tt.role.Name(); got != tt.want {
			t.Errorf("RoleID(%d).Name() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestRoleID_Valid(t *testing.T) {
	for _, role := range []RoleID{RoleAdmin, RolePublicador, RoleAdoptante, RoleRefugio} {
		if !role.Valid() {
			t.Errorf("RoleID(%d) should be valid", role)
		}
	}
	if RoleID(0).Valid() || RoleID(5).Valid() {
		t.Error("out-of-range role ids should be invalid")
	}
}

func TestDefaultRoles(t *testing.T) {
	roles := DefaultRoles()
	if len(roles) != 2 {
		t.Fatalf("expected 2 default roles, got %d", len(roles))
	}
	set := RoleSet(roles)
	if !set.Has(RolePublicador) || !set.Has(RoleAdoptante) {
		t.Errorf("default roles should be publicador and adoptante, got %v", set.Names())
	}
	if set.Has(RoleAdmin) || set.Has(RoleRefugio) {
		t.Error("admin and refugio are never granted by default")
	}
}

func TestRoleSet_Names(t *testing.T) {
	set := RoleSet{RoleAdmin, RoleRefugio}
	names := set.Names()
	if len(names) != 2 || names[0] != "admin" || names[1] != "refugio" {
		t.Errorf("unexpected names: %v", names)
	}
}
