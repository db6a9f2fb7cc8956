package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mahjong/app/models/prediction"
	"mahjong/app/repositories"
	"mahjong/pkg/ai"
	"mahjong/pkg/app"
	"mahjong/pkg/logger"
)

// DefaultDailyLimit 每台设备每天默认可测算次数
const DefaultDailyLimit = 3

// PredictInput 已验证的测算请求
type PredictInput struct {
	Name              string
	Gender            string
	Birthdate         string
	Birth             time.Time
	HasHour           bool
	Province          string
	City              string
	District          string
	DeviceFingerprint string
}

// PredictOutcome 测算结果和当天剩余次数
type PredictOutcome struct {
	Result         prediction.Result
	RemainingCount int
	Reused         bool // 命中已有的相同测算
}

// PredictionService 麻将方位测算
type PredictionService struct {
	users       *repositories.UserRepository
	predictions *repositories.PredictionRepository
	ai          ai.Service
	dailyLimit  int
	now         Clock
}

// NewPredictionService 创建服务，dailyLimit <= 0 时使用默认值
func NewPredictionService(users *repositories.UserRepository, predictions *repositories.PredictionRepository, aiService ai.Service, dailyLimit int) *PredictionService {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	return &PredictionService{
		users:       users,
		predictions: predictions,
		ai:          aiService,
		dailyLimit:  dailyLimit,
		now:         app.TimenowInTimezone,
	}
}

// WithClock 替换时钟
func (s *PredictionService) WithClock(now Clock) *PredictionService {
	s.now = now
	return s
}

// Predict 测算今日方位。相同身份信息当天只生成一次，之后直接返回已有结果
func (s *PredictionService) Predict(ctx context.Context, in PredictInput) (*PredictOutcome, error) {
	now := s.now()
	today := app.BusinessDate(now)

	u, err := s.users.GetOrCreate(ctx, in.DeviceFingerprint)
	if err != nil {
		return nil, err
	}

	count, err := s.predictions.CountByUserAndDate(ctx, u.ID, today)
	if err != nil {
		return nil, fmt.Errorf("count predictions: %w", err)
	}
	used := int(count)
	if used >= s.dailyLimit {
		return nil, ErrDailyLimitReached
	}

	identity := prediction.Identity{
		Name:      in.Name,
		Gender:    in.Gender,
		Birthdate: in.Birthdate,
		Province:  in.Province,
		City:      in.City,
		District:  in.District,
		Date:      today,
	}

	existing, err := s.predictions.FindExisting(ctx, identity)
	switch {
	case err == nil:
		return &PredictOutcome{
			Result:         existing.Result(),
			RemainingCount: s.dailyLimit - used,
			Reused:         true,
		}, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("find existing prediction: %w", err)
	}

	reading, err := s.ai.PersonalizedReading(ctx, ai.Params{
		Name:     in.Name,
		Gender:   in.Gender,
		Birth:    in.Birth,
		HasHour:  in.HasHour,
		Province: in.Province,
		City:     in.City,
		District: in.District,
		Today:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("personalized reading: %w", err)
	}

	p := prediction.New(u.ID, identity, reading)
	if err := s.predictions.CreateWithHistory(ctx, p); err != nil {
		return nil, err
	}
	logger.Info("Prediction", zap.Uint64("id", p.ID), zap.Uint64("user", u.ID), zap.String("date", today))

	return &PredictOutcome{
		Result:         p.Result(),
		RemainingCount: s.dailyLimit - used - 1,
	}, nil
}

// Get 根据 ID 获取测算结果
func (s *PredictionService) Get(ctx context.Context, id uint64) (prediction.Result, error) {
	p, err := s.predictions.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return prediction.Result{}, ErrPredictionNotFound
	}
	if err != nil {
		return prediction.Result{}, err
	}
	return p.Result(), nil
}
