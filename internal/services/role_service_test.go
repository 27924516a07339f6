package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-io/taskboard/internal/models"
)

func TestRoleService_CreateRejectsDuplicateName(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := NewRoleService(zerolog.Nop(), roles, newFakeUserRepo(roles))

	_, err := svc.Create(context.Background(), "Support", nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Support", nil)
	assert.ErrorIs(t, err, ErrRoleAlreadyExists)
}

func TestRoleService_UpdateReplacesMenuSet(t *testing.T) {
	roles := newFakeRoleRepo()
	menus := newFakeMenuRepo(roles)
	svc := NewRoleService(zerolog.Nop(), roles, newFakeUserRepo(roles))

	var menuIDs []int64
	for _, name := range []string{"dashboard", "kanban", "users"} {
		menu := &models.Menu{Name: name, Label: name, Icon: "ri-circle-line"}
		require.NoError(t, menus.Create(context.Background(), menu))
		menuIDs = append(menuIDs, menu.ID)
	}

	role, err := svc.Create(context.Background(), "Support", menuIDs[:1])
	require.NoError(t, err)

	err = svc.Update(context.Background(), role.ID, "Support", menuIDs[1:])
	require.NoError(t, err)

	granted, err := roles.MenusForRole(context.Background(), role.ID)
	require.NoError(t, err)
	require.Len(t, granted, 2)
	assert.Equal(t, "kanban", granted[0].Name)
	assert.Equal(t, "users", granted[1].Name)
}

func TestRoleService_UpdateIsIdempotent(t *testing.T) {
	roles := newFakeRoleRepo()
	menus := newFakeMenuRepo(roles)
	svc := NewRoleService(zerolog.Nop(), roles, newFakeUserRepo(roles))

	menu := &models.Menu{Name: "kanban", Label: "Kanban Board", Icon: "ri-circle-line"}
	require.NoError(t, menus.Create(context.Background(), menu))

	role, err := svc.Create(context.Background(), "Support", nil)
	require.NoError(t, err)

	// Submitting the same set twice must leave exactly that set.
	for i := 0; i < 2; i++ {
		err = svc.Update(context.Background(), role.ID, "Support", []int64{menu.ID})
		require.NoError(t, err)
	}

	granted, err := roles.MenusForRole(context.Background(), role.ID)
	require.NoError(t, err)
	assert.Len(t, granted, 1)
}

func TestRoleService_DeleteRefusedWhileAssigned(t *testing.T) {
	roles := newFakeRoleRepo()
	users := newFakeUserRepo(roles)
	svc := NewRoleService(zerolog.Nop(), roles, users)

	role, err := svc.Create(context.Background(), "Support", nil)
	require.NoError(t, err)

	err = users.Create(context.Background(), &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "digest",
		RoleID:   role.ID,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), role.ID)
	assert.ErrorIs(t, err, ErrRoleInUse)

	// The role must survive the refused delete.
	_, err = roles.FindByID(context.Background(), role.ID)
	assert.NoError(t, err)
}

func TestRoleService_DeleteUnassignedRole(t *testing.T) {
	roles := newFakeRoleRepo()
	svc := NewRoleService(zerolog.Nop(), roles, newFakeUserRepo(roles))

	role, err := svc.Create(context.Background(), "Support", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), role.ID))

	err = svc.Delete(context.Background(), role.ID)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
