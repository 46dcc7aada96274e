package gamify

import "math"

// ScoredQuestion 评分所需的题目答案键
type ScoredQuestion struct {
	ID            uint
	CorrectOption int
	Points        int
}

type GradeResult struct {
	Score          int // 0-100
	TotalQuestions int
	CorrectCount   int
	Passed         bool
	XPEarned       int
	TimeTaken      int
	Correctness    map[uint]bool
}

// Grade 对一次测验提交评分
// 未作答的题目按答错计；totalQuestions 为 0 时返回 0 分未通过，不会除零
func Grade(questions []ScoredQuestion, answers map[uint]int, passingPercent, xpPerCorrect, timeTakenSeconds int) GradeResult {
	result := GradeResult{
		TotalQuestions: len(questions),
		TimeTaken:      timeTakenSeconds,
		Correctness:    make(map[uint]bool, len(questions)),
	}

	for _, q := range questions {
		selected, answered := answers[q.ID]
		correct := answered && selected == q.CorrectOption
		result.Correctness[q.ID] = correct
		if correct {
			result.CorrectCount++
		}
	}

	if result.TotalQuestions > 0 {
		result.Score = int(math.Round(100 * float64(result.CorrectCount) / float64(result.TotalQuestions)))
		result.Passed = result.Score >= passingPercent
	}
	result.XPEarned = result.CorrectCount * xpPerCorrect

	return result
}
