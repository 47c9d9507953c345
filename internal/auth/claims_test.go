package auth

import (
	"context"
	"testing"

	"skyharbor/dispatch/internal/constants"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(constants.RoleAdmin, "ops@example.com", 42)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if !claims.IsAdmin() {
		t.Error("admin token must report IsAdmin")
	}
	if claims.Email() != "ops@example.com" {
		t.Errorf("Email = %q", claims.Email())
	}
	if claims.WorkerID() != 42 {
		t.Errorf("WorkerID = %d", claims.WorkerID())
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("expected parse error")
	}
}

func TestClientClaims(t *testing.T) {
	token, err := IssueToken(constants.RoleClient, "buyer@example.com", 0)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.IsAdmin() {
		t.Error("client token must not report IsAdmin")
	}
}

func TestActorClaimsContext(t *testing.T) {
	if got := GetActorClaims(context.Background()); got != nil {
		t.Errorf("empty context claims = %v, want nil", got)
	}

	claims := &TokenClaims{RoleValue: string(constants.RoleAdmin), EmailValue: "a@b.c"}
	ctx := SetActorClaims(context.Background(), claims)
	if got := GetActorClaims(ctx); got == nil || got.Email() != "a@b.c" {
		t.Errorf("round-tripped claims = %v", got)
	}
}
