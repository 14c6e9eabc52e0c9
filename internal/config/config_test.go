package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSyncAccounts(t *testing.T) {
	accounts, err := ParseSyncAccounts([]string{"proj1:act_123", " proj2:act_456:usd ", ""}, "TWD")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, SyncAccount{ProjectID: "proj1", AccountID: "act_123", Currency: "TWD"}, accounts[0])
	assert.Equal(t, SyncAccount{ProjectID: "proj2", AccountID: "act_456", Currency: "USD"}, accounts[1])
}

func TestParseSyncAccounts_InvalidEntry(t *testing.T) {
	for _, entry := range []string{"proj1", ":act_1", "a:b:c:d"} {
		_, err := ParseSyncAccounts([]string{entry}, "TWD")
		assert.Error(t, err, entry)
	}
}
