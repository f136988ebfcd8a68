package queries

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/dmitrijs2005/spellcheckd/internal/dbx"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/repotest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoFactories() map[string]func(t *testing.T) Repository {
	return map[string]func(t *testing.T) Repository{
		"memory": func(t *testing.T) Repository { return NewMemoryRepository() },
		"sqlite": func(t *testing.T) Repository { return NewSQLRepository(repotest.OpenSQLite(t), dbx.SQLite) },
	}
}

var at = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestRepository_AppendGetForUser(t *testing.T) {
	for name, factory := range repoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			first, err := repo.Append(ctx, &models.QueryRecord{UserName: "jonathan", Text: "my dawg is kewl.", Misspelled: []string{"dawg", "kewl"}, CreatedAt: at})
			require.NoError(t, err)
			second, err := repo.Append(ctx, &models.QueryRecord{UserName: "bob", Text: "fine", CreatedAt: at})
			require.NoError(t, err)
			third, err := repo.Append(ctx, &models.QueryRecord{UserName: "jonathan", Text: "zzz", Misspelled: []string{"zzz"}, CreatedAt: at})
			require.NoError(t, err)
			assert.Equal(t, []int64{1, 2, 3}, []int64{first.ID, second.ID, third.ID})

			got, err := repo.Get(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, "jonathan", got.UserName)
			assert.Equal(t, "my dawg is kewl.", got.Text)
			assert.Equal(t, []string{"dawg", "kewl"}, got.Misspelled)

			bob, err := repo.Get(ctx, 2)
			require.NoError(t, err)
			assert.Empty(t, bob.Misspelled)

			_, err = repo.Get(ctx, 99)
			assert.ErrorIs(t, err, common.ErrorNotFound)

			list, err := repo.ForUser(ctx, "jonathan")
			require.NoError(t, err)
			ids := make([]int64, 0, len(list))
			for _, r := range list {
				ids = append(ids, r.ID)
			}
			assert.Empty(t, cmp.Diff([]int64{1, 3}, ids))

			empty, err := repo.ForUser(ctx, "ghost")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestRepository_StoredWordsAreIsolated(t *testing.T) {
	for name, factory := range repoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			words := []string{"dawg"}
			_, err := repo.Append(ctx, &models.QueryRecord{UserName: "a", Text: "dawg", Misspelled: words, CreatedAt: at})
			require.NoError(t, err)
			words[0] = "changed"

			got, err := repo.Get(ctx, 1)
			require.NoError(t, err)
			got.Misspelled[0] = "also changed"

			again, err := repo.Get(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"dawg"}, again.Misspelled)
		})
	}
}

func TestRepository_ConcurrentAppendsAreGapFree(t *testing.T) {
	for name, factory := range repoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			const writers, perWriter = 8, 10

			var wg sync.WaitGroup
			ids := make(chan int64, writers*perWriter)
			for w := 0; w < writers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < perWriter; i++ {
						rec, err := repo.Append(context.Background(), &models.QueryRecord{
							UserName: fmt.Sprintf("user%d", w), Text: "t", CreatedAt: at,
						})
						if err != nil {
							t.Errorf("Append: %v", err)
							return
						}
						ids <- rec.ID
					}
				}(w)
			}
			wg.Wait()
			close(ids)

			got := make([]int64, 0, writers*perWriter)
			for id := range ids {
				got = append(got, id)
			}
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			require.Len(t, got, writers*perWriter)
			for i, id := range got {
				require.Equal(t, int64(i+1), id)
			}
		})
	}
}
