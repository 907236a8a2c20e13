package auth

import "testing"

func TestRegisterAndResolve_RoundTrips(t *testing.T) {
	r := NewResolver()
	if err := r.Register("token-abc", "user-1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	userID, err := r.Resolve("token-abc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Resolve() = %s, want user-1", userID)
	}
}

func TestResolve_UnknownTokenFails(t *testing.T) {
	r := NewResolver()
	if _, err := r.Resolve("never-registered"); err == nil {
		t.Error("Resolve() succeeded for an unregistered token, want error")
	}
}

func TestRegister_IsIdempotentForSameToken(t *testing.T) {
	r := NewResolver()
	if err := r.Register("token-abc", "user-1"); err != nil {
		t.Fatalf("Register (1st): %v", err)
	}
	if err := r.Register("token-abc", "user-1"); err != nil {
		t.Fatalf("Register (2nd): %v", err)
	}

	userID, err := r.Resolve("token-abc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Resolve() = %s, want user-1", userID)
	}
}
