package auth

import (
	"testing"
)

func TestSessionService_IssueValidate(t *testing.T) {
	svc := NewSessionService("secret", 1)

	token, err := svc.Issue()
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !claims.Admin {
		t.Errorf("claims.Admin = false, want true")
	}
}

func TestSessionService_RejectsBadTokens(t *testing.T) {
	svc := NewSessionService("secret", 1)
	other := NewSessionService("different-secret", 1)

	otherToken, err := other.Issue()
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"wrong secret", otherToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Validate(tt.token); err == nil {
				t.Errorf("Validate(%q) succeeded, want error", tt.name)
			}
		})
	}
}

func TestSessionService_RejectsExpired(t *testing.T) {
	svc := NewSessionService("secret", -1) // already expired when issued

	token, err := svc.Issue()
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := svc.Validate(token); err == nil {
		t.Errorf("Validate() accepted an expired token")
	}
}
