package gamify

import "time"

// MaxMasteryLevel 闪卡掌握度上限
const MaxMasteryLevel = 5

// MasteryState 单个(用户,闪卡)对的掌握度状态
type MasteryState struct {
	CorrectCount   int
	IncorrectCount int
	MasteryLevel   int
	LastReviewed   time.Time
}

// UpdateMastery 根据一次复习结果计算新的掌握度状态
// current 为 nil 时按首次复习处理（全零记录）
// 掌握度每次答对+1答错-1，始终限制在 [0,MaxMasteryLevel]
func UpdateMastery(current *MasteryState, wasCorrect bool, now time.Time) MasteryState {
	next := MasteryState{}
	if current != nil {
		next = *current
	}

	if wasCorrect {
		next.CorrectCount++
		if next.MasteryLevel < MaxMasteryLevel {
			next.MasteryLevel++
		}
	} else {
		next.IncorrectCount++
		if next.MasteryLevel > 0 {
			next.MasteryLevel--
		}
	}
	next.LastReviewed = now

	return next
}
