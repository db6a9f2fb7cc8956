package almanac

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/mroth/weightedrand/v2"

	"mahjong/app/models/fortune"
)

var (
	directions = []string{"东", "南", "西", "北", "东南", "西南", "东北", "西北"}
	colors     = []string{"红色", "黄色", "蓝色", "绿色", "紫色", "白色", "黑色"}
	items      = []string{"硬币", "红绳", "玉佩", "手链", "小挂件", "纸条", "茶叶"}

	defaultGood = []string{"打牌", "聚会", "投资", "出行", "谈判", "签约", "装修", "搬家", "开业", "求财", "祭祀", "结婚"}
	defaultBad  = []string{"动土", "安葬", "诉讼", "远行", "开张", "交易", "入宅", "开工", "破土", "安门"}
)

// SynthesizeFortune 本地推算某天的运势。同一天的结果固定，不依赖外部服务
func SynthesizeFortune(t time.Time) fortune.Data {
	day := DayFacts(t)
	rng := rand.New(rand.NewSource(seed(day.Solar)))

	// 喜神所在方位权重更高
	dirChoices := make([]weightedrand.Choice[string, uint], 0, len(directions))
	for _, d := range directions {
		weight := uint(1)
		if d == day.XiDirection || d+"方" == day.XiDirection || "正"+d == day.XiDirection {
			weight = 4
		}
		dirChoices = append(dirChoices, weightedrand.NewChoice(d, weight))
	}

	// 中间的数字更常见
	numChoices := make([]weightedrand.Choice[int, uint], 0, 9)
	for n := 1; n <= 9; n++ {
		weight := uint(5 - abs(5-n))
		numChoices = append(numChoices, weightedrand.NewChoice(n, weight))
	}

	return fortune.Data{
		Date:           day.Solar,
		LunarDate:      day.LunarDate,
		ChineseZodiac:  day.DayZodiac,
		StarSign:       day.Mansion,
		LuckyDirection: pick(rng, dirChoices, directions[0]),
		LuckyNumber:    pick(rng, numChoices, 5),
		LuckyColor:     colors[rng.Intn(len(colors))],
		LuckyItem:      items[rng.Intn(len(items))],
		GoodFor:        sample(rng, orDefault(day.Yi, defaultGood), 3+rng.Intn(3)),
		BadFor:         sample(rng, orDefault(day.Ji, defaultBad), 2+rng.Intn(3)),
	}
}

func pick[T any](rng *rand.Rand, choices []weightedrand.Choice[T, uint], fallback T) T {
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return fallback
	}
	return chooser.PickSource(rng)
}

// sample 不重复地取 n 项，保持原有顺序
func sample(rng *rand.Rand, pool []string, n int) []string {
	if n >= len(pool) {
		out := make([]string, len(pool))
		copy(out, pool)
		return out
	}
	idx := rng.Perm(len(pool))[:n]
	chosen := make(map[int]bool, n)
	for _, i := range idx {
		chosen[i] = true
	}
	out := make([]string, 0, n)
	for i, s := range pool {
		if chosen[i] {
			out = append(out, s)
		}
	}
	return out
}

func orDefault(list, fallback []string) []string {
	if len(list) == 0 {
		return fallback
	}
	return list
}

func seed(date string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(date))
	return int64(h.Sum64())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
