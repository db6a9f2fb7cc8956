package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"mahjong/app/requests"
	"mahjong/app/services"
	"mahjong/pkg/response"
)

// PredictionController 麻将方位测算
type PredictionController struct {
	predictions *services.PredictionService
}

// NewPredictionController 创建控制器
func NewPredictionController(predictions *services.PredictionService) *PredictionController {
	return &PredictionController{predictions: predictions}
}

// Store POST /api/mahjong-prediction
func (pc *PredictionController) Store(c *gin.Context) {
	// 1. 请求验证，失败时不写库
	request, err := requests.ValidatePrediction(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// 2. 测算
	outcome, err := pc.predictions.Predict(c.Request.Context(), services.PredictInput{
		Name:              request.Name,
		Gender:            request.Gender,
		Birthdate:         request.Birthdate,
		Birth:             request.Birth,
		HasHour:           request.HasHour,
		Province:          request.Province,
		City:              request.City,
		District:          request.District,
		DeviceFingerprint: request.DeviceFingerprint,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	response.DataWithRemaining(c, outcome.Result, outcome.RemainingCount)
}

// Show GET /api/prediction/:id
func (pc *PredictionController) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Abort400(c, "无效的测算 ID")
		return
	}

	result, err := pc.predictions.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	response.Data(c, result)
}
