package gamify

// 成就条件类型。requirement_type 设计为开放集合：
// 新类型通过 RegisterMetric 注册即可，评估主循环无需改动
const (
	RequirementXP            = "xp"
	RequirementStreak        = "streak"
	RequirementQuizzesPassed = "quizzes_passed"
	RequirementCardsMastered = "cards_mastered"
)

// ProfileSnapshot 评估成就时用到的用户指标快照
type ProfileSnapshot struct {
	XPPoints      int
	StreakDays    int
	QuizzesPassed int
	CardsMastered int
}

// Requirement 一条成就目录记录的评估视图
type Requirement struct {
	AchievementID uint
	Type          string
	Value         int
	XPReward      int
	Active        bool
}

// EarnedAchievement 本次评估中新达成的成就
type EarnedAchievement struct {
	AchievementID uint
	XPReward      int
}

// MetricFunc 从快照中取出某个条件类型对应的指标值
type MetricFunc func(ProfileSnapshot) int

var metricRegistry = map[string]MetricFunc{
	RequirementXP:            func(p ProfileSnapshot) int { return p.XPPoints },
	RequirementStreak:        func(p ProfileSnapshot) int { return p.StreakDays },
	RequirementQuizzesPassed: func(p ProfileSnapshot) int { return p.QuizzesPassed },
	RequirementCardsMastered: func(p ProfileSnapshot) int { return p.CardsMastered },
}

// RegisterMetric 注册新的成就条件类型
func RegisterMetric(requirementType string, fn MetricFunc) {
	metricRegistry[requirementType] = fn
}

// EvaluateAchievements 按目录顺序扫描未获得的成就，返回新达成的条目
// 未知条件类型永不匹配（向前兼容的空操作）；同一成就在一次评估中至多出现一次，
// 结果对相同输入是确定且幂等的——alreadyEarned 集合是防止重复授予的唯一依据
func EvaluateAchievements(profile ProfileSnapshot, alreadyEarned map[uint]bool, catalog []Requirement) []EarnedAchievement {
	var earned []EarnedAchievement

	for _, req := range catalog {
		if !req.Active || alreadyEarned[req.AchievementID] {
			continue
		}

		metric, known := metricRegistry[req.Type]
		if !known {
			continue
		}

		if metric(profile) >= req.Value {
			earned = append(earned, EarnedAchievement{
				AchievementID: req.AchievementID,
				XPReward:      req.XPReward,
			})
		}
	}

	return earned
}
