package models

import (
	"errors"
	"testing"
)

func TestUser_CanAuthenticate(t *testing.T) {
	tests := []struct {
		name    string
		activo  bool
		estado  string
		wantErr error
	}{
		{"active account", true, UserStateActivo, nil},
		{"deactivated account", false, UserStateActivo, ErrAccountInactive},
		{"blocked account", true, UserStateBloqueado, ErrAccountBlocked},
		{"deactivated takes precedence", false, UserStateBloqueado, ErrAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Activo: tt.activo, Estado: tt.estado}
			err := u.CanAuthenticate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanAuthenticate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidAdoptionTarget(t *testing.T) {
	if !ValidAdoptionTarget(AdoptionStateAceptada) || !ValidAdoptionTarget(AdoptionStateRechazada) {
		t.Error("aceptada and rechazada are legal targets")
	}
	for _, estado := range []string{AdoptionStatePendiente, "", "cancelada", "ACEPTADA"} {
		if ValidAdoptionTarget(estado) {
			t.Errorf("%q should not be a legal target", estado)
		}
	}
}
