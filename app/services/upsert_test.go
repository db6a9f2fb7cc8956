package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/app/models/fortune"
	"mahjong/app/models/user"
	"mahjong/app/repositories"
)

func TestFortuneCreateOrGetKeepsFirstRow(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewFortuneRepository(db)
	ctx := context.Background()

	first, err := repo.CreateOrGet(ctx, fortune.New(fortune.Data{
		Date:           "2025-03-08",
		LunarDate:      "A",
		ChineseZodiac:  "兔",
		StarSign:       "角宿",
		LuckyDirection: "东",
		LuckyNumber:    1,
	}, fortune.SourceAI))
	require.NoError(t, err)

	second, err := repo.CreateOrGet(ctx, fortune.New(fortune.Data{
		Date:           "2025-03-08",
		LunarDate:      "B",
		ChineseZodiac:  "龙",
		StarSign:       "亢宿",
		LuckyDirection: "西",
		LuckyNumber:    2,
	}, fortune.SourceLocal))
	require.NoError(t, err)

	assert.Equal(t, "A", second.LunarDate)
	assert.Equal(t, fortune.SourceAI, second.Source)
	assert.Equal(t, first.Data(), second.Data())
	assert.Equal(t, int64(1), countRows(t, db, &fortune.DailyFortune{}))
}

func TestUserGetOrCreateConcurrent(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	const workers = 8
	ids := make([]uint64, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := repo.GetOrCreate(ctx, "fp-shared")
			errs[i] = err
			if u != nil {
				ids[i] = u.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.NotZero(t, ids[0])
	assert.Equal(t, int64(1), countRows(t, db, &user.User{}))
}
