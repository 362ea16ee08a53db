package repomanager

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bailbridge/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryManager_SharesDirectory(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	ctx := context.Background()

	require.NoError(t, m.RunMigrations(ctx, nil))

	_, err := m.Users(nil).Create(ctx, &models.User{ID: "1", Email: "a@b.c", Role: models.RoleUser})
	require.NoError(t, err)

	got, err := m.Users(nil).GetUserByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}
