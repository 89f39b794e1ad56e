package governance

import (
	"context"
	"testing"
)

func TestDefaultPolicyEngine_Evaluate(t *testing.T) {
	engine := NewDefaultPolicyEngine()
	ctx := context.Background()

	// Test Allow (Default)
	req1 := Request{Statement: "SELECT * FROM artists LIMIT 5"}
	res1, err := engine.Evaluate(ctx, req1)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res1.Effect != EffectAllow {
		t.Errorf("Expected EffectAllow, got %s", res1.Effect)
	}

	// Test Deny
	if err := engine.DenyStatements(`(?i)^\s*(insert|update|delete|drop|alter|truncate)\b`); err != nil {
		t.Fatalf("DenyStatements failed: %v", err)
	}
	req2 := Request{Statement: "DROP TABLE artists"}
	res2, err := engine.Evaluate(ctx, req2)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res2.Effect != EffectDeny {
		t.Errorf("Expected EffectDeny, got %s", res2.Effect)
	}

	req3 := Request{Statement: "  update albums set Title = 'x'"}
	res3, err := engine.Evaluate(ctx, req3)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res3.Effect != EffectDeny {
		t.Errorf("Expected EffectDeny for mutating statement, got %s", res3.Effect)
	}
}

func TestDenyStatementsBadPattern(t *testing.T) {
	engine := NewDefaultPolicyEngine()
	if err := engine.DenyStatements("("); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
