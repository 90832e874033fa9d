package bridge

import (
	"context"
	"testing"
)

func TestSession(t *testing.T) {
	session := NewSession()
	if _, ok := session.Context(); ok {
		t.Fatal("New session should be detached")
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "runtime")
	session.Attach(ctx)
	got, ok := session.Context()
	if !ok || got != ctx {
		t.Errorf("Context() = (%v, %v), want attached context", got, ok)
	}

	session.Detach()
	if _, ok := session.Context(); ok {
		t.Error("Session should be detached after Detach")
	}
}
