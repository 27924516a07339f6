package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-io/taskboard/internal/models"
)

func TestMenuService_CreateAppliesDefaultIcon(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := NewMenuService(zerolog.Nop(), newFakeMenuRepo(roles))

	menu, err := svc.Create(context.Background(), MenuParams{
		Name:  "reports",
		Label: "Reports",
	})
	require.NoError(t, err)
	assert.Equal(t, "ri-circle-line", menu.Icon)

	withIcon, err := svc.Create(context.Background(), MenuParams{
		Name:  "settings",
		Label: "Settings",
		Icon:  "ri-settings-line",
	})
	require.NoError(t, err)
	assert.Equal(t, "ri-settings-line", withIcon.Icon)
}

func TestMenuService_CreateRejectsDuplicateName(t *testing.T) {
	svc := NewMenuService(zerolog.Nop(), newFakeMenuRepo(newFakeRoleRepo()))

	_, err := svc.Create(context.Background(), MenuParams{Name: "reports", Label: "Reports"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), MenuParams{Name: "reports", Label: "Other"})
	assert.ErrorIs(t, err, ErrMenuAlreadyExists)
}

func TestMenuService_DeleteRefusedWhileLinked(t *testing.T) {
	roles := newFakeRoleRepo()
	menuRepo := newFakeMenuRepo(roles)
	svc := NewMenuService(zerolog.Nop(), menuRepo)

	menu, err := svc.Create(context.Background(), MenuParams{Name: "kanban", Label: "Kanban Board"})
	require.NoError(t, err)

	role := &models.Role{Name: "Employee"}
	require.NoError(t, roles.Create(context.Background(), role, []int64{menu.ID}))

	err = svc.Delete(context.Background(), menu.ID)
	assert.ErrorIs(t, err, ErrMenuInUse)

	_, err = menuRepo.FindByID(context.Background(), menu.ID)
	assert.NoError(t, err)

	// Unlinking the menu makes the delete legal.
	require.NoError(t, roles.Rename(context.Background(), role.ID, "Employee", nil))
	require.NoError(t, svc.Delete(context.Background(), menu.ID))
}
