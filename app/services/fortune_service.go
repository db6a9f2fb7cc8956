package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mahjong/app/models/fortune"
	"mahjong/app/repositories"
	"mahjong/pkg/ai"
	"mahjong/pkg/almanac"
	"mahjong/pkg/app"
	"mahjong/pkg/logger"
)

// 运势来源配置
const (
	FortuneSourceAI    = "ai"
	FortuneSourceLocal = "local"
	FortuneSourceNone  = "none"
)

// FortuneOptions 运势服务配置
type FortuneOptions struct {
	Source        string // ai、local、none
	LocalFallback bool   // AI 失败时退回本地推算
}

// FortuneService 每日运势
type FortuneService struct {
	repo  *repositories.FortuneRepository
	ai    ai.Service
	cache Cache
	opts  FortuneOptions
	now   Clock
}

// NewFortuneService 创建服务，cache 可以为 nil
func NewFortuneService(repo *repositories.FortuneRepository, aiService ai.Service, cache Cache, opts FortuneOptions) *FortuneService {
	if opts.Source == "" {
		opts.Source = FortuneSourceAI
	}
	return &FortuneService{
		repo:  repo,
		ai:    aiService,
		cache: cache,
		opts:  opts,
		now:   app.TimenowInTimezone,
	}
}

// WithClock 替换时钟
func (s *FortuneService) WithClock(now Clock) *FortuneService {
	s.now = now
	return s
}

// Today 获取今天的运势。同一天多次调用返回数据库中同一条记录
func (s *FortuneService) Today(ctx context.Context) (fortune.Data, error) {
	now := s.now()
	date := app.BusinessDate(now)

	var key string
	if s.cache != nil {
		key = s.cache.Key("fortune", date)
		var cached fortune.Data
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			logger.Warn("Fortune", zap.String("cache", key), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	row, err := s.repo.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fortune.Data{}, fmt.Errorf("load daily fortune: %w", err)
	}

	if row == nil {
		data, source, err := s.generate(ctx, now)
		if err != nil {
			return fortune.Data{}, err
		}
		data.Date = date
		if row, err = s.repo.CreateOrGet(ctx, fortune.New(data, source)); err != nil {
			return fortune.Data{}, err
		}
		logger.Info("Fortune", zap.String("date", date), zap.String("source", string(row.Source)))
	}

	data := row.Data()
	if s.cache != nil {
		ttl := app.EndOfBusinessDay(now).Sub(now)
		if err := s.cache.SetJSON(ctx, key, data, ttl); err != nil {
			logger.Warn("Fortune", zap.String("cache", key), zap.Error(err))
		}
	}
	return data, nil
}

func (s *FortuneService) generate(ctx context.Context, now time.Time) (fortune.Data, fortune.Source, error) {
	switch s.opts.Source {
	case FortuneSourceNone:
		return fortune.Data{}, "", ErrFortuneNotFound
	case FortuneSourceLocal:
		return almanac.SynthesizeFortune(now), fortune.SourceLocal, nil
	}

	data, err := s.ai.DailyFortune(ctx, now)
	if err == nil {
		return data, fortune.SourceAI, nil
	}
	if s.opts.LocalFallback {
		logger.Warn("Fortune", zap.String("fallback", FortuneSourceLocal), zap.Error(err))
		return almanac.SynthesizeFortune(now), fortune.SourceLocal, nil
	}
	return fortune.Data{}, "", fmt.Errorf("generate daily fortune: %w", err)
}
