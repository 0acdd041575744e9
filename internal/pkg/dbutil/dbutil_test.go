package dbutil

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestFinalizeRebinds(t *testing.T) {
	query, args := Finalize("SELECT id FROM users WHERE username=? AND ctime>?", []interface{}{"alice", int64(0)})
	require.Equal(t, "SELECT id FROM users WHERE username=$1 AND ctime>$2", query)
	require.Len(t, args, 2)
}

func TestIsConflict(t *testing.T) {
	require.True(t, IsConflict(&pq.Error{Code: "23505"}))
	require.False(t, IsConflict(&pq.Error{Code: "23503"}))
	require.False(t, IsConflict(errors.New("other")))
	require.False(t, IsConflict(nil))
}
