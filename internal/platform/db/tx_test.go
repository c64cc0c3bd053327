package db

import (
	"context"
	"testing"
)

func TestTxFromContext_EmptyContext(t *testing.T) {
	if tx := TxFromContext(context.Background()); tx != nil {
		t.Errorf("expected nil tx on empty context, got %v", tx)
	}
}
