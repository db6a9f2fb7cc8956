package config

import "mahjong/pkg/config"

func init() {
	config.Add("prediction", func() map[string]interface{} {
		return map[string]interface{}{
			// 每个设备每天最多测算次数
			"daily_limit": config.Env("PREDICTION_DAILY_LIMIT", 3),
		}
	})

	config.Add("fortune", func() map[string]interface{} {
		return map[string]interface{}{
			// 每日运势来源：ai（调用大模型）、local（本地黄历推算）、none（只读）
			"source": config.Env("FORTUNE_SOURCE", "ai"),

			// AI 生成失败时是否退回本地推算
			"local_fallback": config.Env("FORTUNE_LOCAL_FALLBACK", false),
		}
	})
}
