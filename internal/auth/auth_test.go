package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, Claims{
		UserID:     "u-1",
		EmployeeID: "e-1",
		Role:       RoleHR,
		Name:       "Priya",
	}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "u-1" || claims.EmployeeID != "e-1" || claims.Role != RoleHR {
		t.Fatalf("claims round-trip mismatch: %+v", claims)
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, Claims{UserID: "u-1", Role: RoleAdmin}, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = ParseToken(testSecret, token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, Claims{UserID: "u-1", Role: RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = ParseToken("other-secret", token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := CheckPassword(hash, "hunter2hunter2"); err != nil {
		t.Fatalf("CheckPassword with correct password: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("CheckPassword must reject a wrong password")
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{role: RoleAdmin, permission: PermPayrollWrite, want: true},
		{role: RoleHR, permission: PermPayrollWrite, want: true},
		{role: RoleEmployee, permission: PermPayrollWrite, want: false},
		{role: RoleEmployee, permission: PermSalarySelfRead, want: true},
		{role: RoleEmployee, permission: PermUsersRead, want: false},
		{role: "Unknown", permission: PermDashboardRead, want: false},
	}

	for _, tc := range tests {
		if got := HasPermission(tc.role, tc.permission); got != tc.want {
			t.Fatalf("HasPermission(%q, %q) = %v, want %v", tc.role, tc.permission, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleHR, RoleEmployee} {
		if !ValidRole(role) {
			t.Fatalf("ValidRole(%q) = false", role)
		}
	}
	if ValidRole("Superuser") {
		t.Fatal(`ValidRole("Superuser") = true`)
	}
}
