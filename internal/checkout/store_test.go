package checkout

import (
	"testing"

	"foodexpress/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("key", []byte("value")))
	got, ok, err := kv.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, kv.Delete("key"))
	_, ok, err = kv.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileKV_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set("checkoutDraft", []byte(`{"address":"12 MG Road"}`)))

	// A fresh store over the same directory sees the value, the way a
	// reloaded page sees session storage.
	reopened, err := NewFileKV(dir)
	require.NoError(t, err)
	got, ok, err := reopened.Get("checkoutDraft")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"address":"12 MG Road"}`, string(got))

	require.NoError(t, reopened.Delete("checkoutDraft"))
	_, ok, err = kv.Get("checkoutDraft")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileKV_DeleteMissing(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, kv.Delete("nothing"))
}

func TestDraftStore_Roundtrip(t *testing.T) {
	drafts := NewDraftStore(NewMemoryKV())

	_, ok, err := drafts.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	draft := Draft{
		Items:         []model.OrderItemRequest{{Name: "Pizza", Price: 200, Quantity: 2}},
		PaymentMethod: "COD",
		Address:       "12 MG Road",
		Notes:         "extra cheese",
	}
	require.NoError(t, drafts.Save(draft))

	got, ok, err := drafts.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, draft, got)

	require.NoError(t, drafts.Clear())
	_, ok, err = drafts.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDraft_Valid(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  bool
	}{
		{
			name: "valid",
			draft: Draft{
				Items:         []model.OrderItemRequest{{Name: "Pizza", Price: 200, Quantity: 1}},
				PaymentMethod: "UPI",
				Address:       "12 MG Road",
			},
			want: true,
		},
		{
			name:  "no items",
			draft: Draft{PaymentMethod: "COD", Address: "12 MG Road"},
			want:  false,
		},
		{
			name: "no payment method",
			draft: Draft{
				Items:   []model.OrderItemRequest{{Name: "Pizza", Price: 200, Quantity: 1}},
				Address: "12 MG Road",
			},
			want: false,
		},
		{
			name: "whitespace address",
			draft: Draft{
				Items:         []model.OrderItemRequest{{Name: "Pizza", Price: 200, Quantity: 1}},
				PaymentMethod: "COD",
				Address:       "  ",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.Valid())
		})
	}
}

func TestSessionStore_TokenAndCart(t *testing.T) {
	session := NewSessionStore(NewMemoryKV())

	token, err := session.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, session.SetToken("tok-123"))
	token, err = session.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	items := []model.OrderItemRequest{{Name: "Burger", Price: 120, Quantity: 1}}
	require.NoError(t, session.SetCart(items))
	got, ok, err := session.Cart()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, items, got)

	require.NoError(t, session.ClearCart())
	_, ok, err = session.Cart()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewClientKey_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := NewClientKey()
		require.NotEmpty(t, key)
		assert.False(t, seen[key], "client keys must not repeat")
		seen[key] = true
	}
}
