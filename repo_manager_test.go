package sso_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/pushkind/sso"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (context.Context, sso.RepositoryManager) {
	t.Helper()

	ctx := context.Background()

	db, err := sso.OpenSQLite(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sso.CreateSchema(ctx, db))

	repos := sso.NewRepositoryManager(db)
	repos.MustValidate()

	return ctx, repos
}

func TestUsersRepository(t *testing.T) {
	ctx, repos := setupRepos(t)

	hub, err := repos.Hubs().Create(ctx, &sso.Hub{Name: "north"})
	require.NoError(t, err)

	adminRole, err := repos.Roles().Create(ctx, &sso.Role{Name: "admin"})
	require.NoError(t, err)
	editorRole, err := repos.Roles().Create(ctx, &sso.Role{Name: "editor"})
	require.NoError(t, err)

	user, err := repos.Users().Register(ctx, &sso.User{
		Email:        "Person@Example.COM",
		Name:         "Person",
		HubID:        hub.ID,
		PasswordHash: hashFor("super-secret"),
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "person@example.com", user.Email, "emails are stored lower-cased")

	require.NoError(t, repos.Users().AssignRoles(ctx, user.ID, []int64{adminRole.ID}))

	t.Run("find by email is case-insensitive and loads roles", func(t *testing.T) {
		found, err := repos.Users().FindByEmailAndHub(ctx, "PERSON@example.com", hub.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, []string{"admin"}, found.RoleNames())
	})

	t.Run("miss in another hub", func(t *testing.T) {
		_, err := repos.Users().FindByEmailAndHub(ctx, "person@example.com", hub.ID+1)
		assert.True(t, goerrors.IsNotFound(err))
	})

	t.Run("assign roles replaces the set", func(t *testing.T) {
		require.NoError(t, repos.Users().AssignRoles(ctx, user.ID, []int64{editorRole.ID}))

		found, err := repos.Users().FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"editor"}, found.RoleNames())
	})

	t.Run("update profile", func(t *testing.T) {
		user.Name = "Renamed"
		require.NoError(t, repos.Users().Update(ctx, user))

		found, err := repos.Users().FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", found.Name)
	})

	t.Run("list by hub", func(t *testing.T) {
		list, err := repos.Users().ListByHub(ctx, hub.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, user.ID, list[0].ID)
	})

	t.Run("delete removes the user and its assignments", func(t *testing.T) {
		require.NoError(t, repos.Users().Delete(ctx, user.ID))

		_, err := repos.Users().FindByID(ctx, user.ID)
		assert.True(t, goerrors.IsNotFound(err))
	})
}

func TestRolesRepositoryProtectsBaseAdminRole(t *testing.T) {
	ctx, repos := setupRepos(t)

	// First insert takes the reserved id.
	adminRole, err := repos.Roles().Create(ctx, &sso.Role{Name: "admin"})
	require.NoError(t, err)
	require.Equal(t, sso.AdminRoleID, adminRole.ID)

	err = repos.Roles().Delete(ctx, sso.AdminRoleID)
	assert.ErrorIs(t, err, sso.ErrSelfActionForbidden)

	list, err := repos.Roles().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestHubsRepository(t *testing.T) {
	ctx, repos := setupRepos(t)

	north, err := repos.Hubs().Create(ctx, &sso.Hub{Name: "north"})
	require.NoError(t, err)
	_, err = repos.Hubs().Create(ctx, &sso.Hub{Name: "south"})
	require.NoError(t, err)

	list, err := repos.Hubs().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "north", list[0].Name)

	require.NoError(t, repos.Hubs().Delete(ctx, north.ID))

	_, err = repos.Hubs().GetByID(ctx, north.ID)
	assert.True(t, goerrors.IsNotFound(err))
}

func TestMenusRepositoryHubScoped(t *testing.T) {
	ctx, repos := setupRepos(t)

	north, err := repos.Hubs().Create(ctx, &sso.Hub{Name: "north"})
	require.NoError(t, err)
	south, err := repos.Hubs().Create(ctx, &sso.Hub{Name: "south"})
	require.NoError(t, err)

	menu, err := repos.Menus().Create(ctx, &sso.Menu{HubID: north.ID, Name: "Orders", URL: "/orders"})
	require.NoError(t, err)

	got, err := repos.Menus().GetByID(ctx, menu.ID, north.ID)
	require.NoError(t, err)
	assert.Equal(t, "Orders", got.Name)

	// The same menu is invisible from another hub.
	_, err = repos.Menus().GetByID(ctx, menu.ID, south.ID)
	assert.True(t, goerrors.IsNotFound(err))

	list, err := repos.Menus().ListByHub(ctx, north.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := repos.Menus().ListByHub(ctx, south.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
