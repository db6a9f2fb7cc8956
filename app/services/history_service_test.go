package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/app/repositories"
	"mahjong/pkg/app"
)

func TestHistory(t *testing.T) {
	db := newTestDB(t)
	predictions := newPredictionService(t, db, newFakeAI(), 3)
	svc := NewHistoryService(repositories.NewUserRepository(db), repositories.NewHistoryRepository(db, app.Location()))
	ctx := context.Background()

	for _, in := range []PredictInput{
		sampleInput("张三", "device-a"),
		sampleInput("李四", "device-a"),
		sampleInput("王五", "device-b"),
	} {
		_, err := predictions.Predict(ctx, in)
		require.NoError(t, err)
	}

	recent, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "王五", recent[0].Name)
	assert.Equal(t, "东南", recent[0].Direction)
	assert.Equal(t, "2025-03-08", recent[0].Date)
	assert.NotEmpty(t, recent[0].CreatedAt)

	limited, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	mine, err := svc.ForDevice(ctx, "device-a", 20)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "李四", mine[0].Name)
	assert.Equal(t, "张三", mine[1].Name)

	// 新设备没有记录，但会建立用户
	empty, err := svc.ForDevice(ctx, "device-new", 20)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
