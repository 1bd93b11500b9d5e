package utils

import (
	"testing"
)

func TestOTPGenerationAndCheck(t *testing.T) {
	code, err := GenerateOTP()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("Expected 6-digit code, got %q", code)
	}

	hash, err := HashOTP(code)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !CheckOTP(code, hash) {
		t.Errorf("Expected OTP check to pass")
	}

	wrong := "000000"
	if wrong == code {
		wrong = "999999"
	}
	if CheckOTP(wrong, hash) {
		t.Errorf("Expected OTP check to fail for wrong code")
	}
}

func TestJWT(t *testing.T) {
	secret := "supersecret"
	userID := "123"
	role := "worker"

	token, err := GenerateToken(userID, role, secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("Expected UserID %s, got %s", userID, claims.UserID)
	}

	if claims.Role != role {
		t.Errorf("Expected Role %s, got %s", role, claims.Role)
	}

	_, err = ValidateToken(token, "wrongsecret")
	if err == nil {
		t.Errorf("Expected error with wrong secret")
	}
}
