package gamify

import "errors"

// ErrNegativeXPDelta XP只增不减，负增量在任何状态变更前被拒绝
var ErrNegativeXPDelta = errors.New("xp delta must be non-negative")

// XPPerProfileLevel 用户档案等级曲线：每200XP升一级
const XPPerProfileLevel = 200

// ApplyXP 将非负XP增量累加到档案总XP
func ApplyXP(xpPoints, delta int) (int, error) {
	if delta < 0 {
		return xpPoints, ErrNegativeXPDelta
	}
	return xpPoints + delta, nil
}

// LevelForXP 由总XP推导档案等级及下一级所需XP
func LevelForXP(xp int) (level, nextLevelXP int) {
	level = xp / XPPerProfileLevel
	nextLevelXP = (level + 1) * XPPerProfileLevel
	return level, nextLevelXP
}
