package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoFactories lets the behavioural tests run against every backend.
func repoFactories() map[string]func(t *testing.T) Repository {
	return map[string]func(t *testing.T) Repository{
		"memory": func(t *testing.T) Repository { return NewMemoryRepository() },
		"sqlite": newSQLiteRepo,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	for name, factory := range repoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			u, err := repo.Create(ctx, &models.User{
				UserName: "jonathan", PasswordHash: []byte("ph"), SecondFactorHash: []byte("fh"), Role: models.RoleStandard,
			})
			require.NoError(t, err)
			assert.NotZero(t, u.ID)

			got, err := repo.GetUserByLogin(ctx, "jonathan")
			require.NoError(t, err)
			assert.Equal(t, u.ID, got.ID)
			assert.Equal(t, []byte("ph"), got.PasswordHash)
			assert.Equal(t, []byte("fh"), got.SecondFactorHash)
			assert.Equal(t, models.RoleStandard, got.Role)

			_, err = repo.GetUserByLogin(ctx, "Jonathan")
			assert.ErrorIs(t, err, common.ErrorNotFound, "lookup is case sensitive")
		})
	}
}

func TestRepository_DuplicateUsername(t *testing.T) {
	for name, factory := range repoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			_, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: []byte("1"), SecondFactorHash: []byte("1"), Role: models.RoleStandard})
			require.NoError(t, err)

			_, err = repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: []byte("2"), SecondFactorHash: []byte("2"), Role: models.RoleStandard})
			assert.ErrorIs(t, err, common.ErrAlreadyExists)

			got, err := repo.GetUserByLogin(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, []byte("1"), got.PasswordHash, "first registration wins")
		})
	}
}

func TestRepository_ConcurrentCreateSameName(t *testing.T) {
	for name, factory := range repoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			const n = 16

			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := repo.Create(context.Background(), &models.User{
						UserName: "race", PasswordHash: []byte("p"), SecondFactorHash: []byte("f"), Role: models.RoleStandard,
					})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)

			created, exists := 0, 0
			for err := range errs {
				switch {
				case err == nil:
					created++
				case errors.Is(err, common.ErrAlreadyExists):
					exists++
				default:
					t.Fatalf("unexpected error: %v", err)
				}
			}
			assert.Equal(t, 1, created)
			assert.Equal(t, n-1, exists)
		})
	}
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	_, err := repo.Create(ctx, &models.User{UserName: "bob", Role: models.RoleStandard})
	require.NoError(t, err)

	got, err := repo.GetUserByLogin(ctx, "bob")
	require.NoError(t, err)
	got.Role = models.RoleAdministrator

	again, err := repo.GetUserByLogin(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStandard, again.Role)
}
