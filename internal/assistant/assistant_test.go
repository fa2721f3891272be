package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logisnap/internal/store"
)

type fakeProvider struct {
	reply  string
	err    error
	system string
	user   string
}

func (f *fakeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestSnapshotContents(t *testing.T) {
	a := New(store.NewDemo(store.ReceivingPolicy{}), &fakeProvider{})

	snap, err := a.Snapshot(context.Background())
	require.NoError(t, err)

	// Stock rows carry sku, location and status so the model can answer
	// "where is X" questions.
	assert.Contains(t, snap, "LGS-001")
	assert.Contains(t, snap, "A-01-01")
	assert.Contains(t, snap, "quarantine")
	// Only pending inbound orders are summarized.
	assert.Contains(t, snap, "TechGiant Ltd")
	assert.NotContains(t, snap, "Global Imports")
	// Billing rules are summarized name: fee currency.
	assert.Contains(t, snap, "Inbound Handling: 0.50 ILS")
}

func TestChatInjectsSnapshotIntoSystemPrompt(t *testing.T) {
	fake := &fakeProvider{reply: "יש 250 יחידות של LGS-001."}
	a := New(store.NewDemo(store.ReceivingPolicy{}), fake)

	reply, ok := a.Chat(context.Background(), "כמה אוזניות יש במלאי?")
	require.True(t, ok)
	assert.Equal(t, "יש 250 יחידות של LGS-001.", reply)

	assert.Contains(t, fake.system, "LogiBot")
	assert.Contains(t, fake.system, "LGS-001")
	assert.Equal(t, "כמה אוזניות יש במלאי?", fake.user)
}

func TestChatDegradesToApology(t *testing.T) {
	fake := &fakeProvider{err: errors.New("upstream timeout")}
	a := New(store.NewDemo(store.ReceivingPolicy{}), fake)

	reply, ok := a.Chat(context.Background(), "שלום")
	assert.False(t, ok)
	assert.Equal(t, Apology, reply)
}
