package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ", DefaultPoolOptions)
	assert.ErrorIs(t, err, ErrEmptyDSN)
}

func TestOpenWithoutDSNSelectsMemory(t *testing.T) {
	db, cleanup, err := Open(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Nil(t, db)
	cleanup()
}
