package gamify

import (
	"errors"
	"time"
)

// 宠物动作的数值表。来源产品中 play 存在两套数值（+15/-10 与 +25/-20），
// 这里统一采用 +25/-20：页面的 energy<20 前置条件只有配合 -20 的消耗才成立。
const (
	feedHungerGain    = 20
	feedHappinessGain = 10
	playHappinessGain = 25
	playEnergyCost    = 20
	restEnergyGain    = 40
	restHappinessGain = 5
)

// 动作前置条件阈值
const (
	feedHungerCeiling = 90 // hunger > 90 时不允许喂食
	playEnergyFloor   = 20 // energy < 20 时不允许玩耍
	restEnergyCeiling = 90 // energy > 90 时不允许休息
)

// 前置条件不满足属于业务结果而非系统故障，状态保持不变
var (
	ErrPetTooFull   = errors.New("pet is already well fed")
	ErrPetTooTired  = errors.New("pet is too tired to play")
	ErrPetTooRested = errors.New("pet is not tired enough to rest")
)

type EvolutionStage string

const (
	StageBaby   EvolutionStage = "baby"
	StageTeen   EvolutionStage = "teen"
	StageAdult  EvolutionStage = "adult"
	StageMaster EvolutionStage = "master"
)

// PetState 宠物状态机的输入输出，三项属性始终在 [0,100]
type PetState struct {
	Happiness  int
	Hunger     int
	Energy     int
	Level      int
	XP         int
	LastFed    time.Time
	LastPlayed time.Time
}

// PetTuning 动作XP与升级曲线，来自配置
type PetTuning struct {
	FeedXP     int
	PlayXP     int
	RestXP     int
	XPPerLevel int
}

// FeedPet 喂食：hunger+20 happiness+10，记录喂食时间并结算XP
func FeedPet(s PetState, t PetTuning, now time.Time) (PetState, error) {
	if s.Hunger > feedHungerCeiling {
		return s, ErrPetTooFull
	}

	s.Hunger = clampStat(s.Hunger + feedHungerGain)
	s.Happiness = clampStat(s.Happiness + feedHappinessGain)
	s.LastFed = now
	s.XP += t.FeedXP

	return settleLevel(s, t.XPPerLevel), nil
}

// PlayWithPet 玩耍：happiness+25 energy-20
func PlayWithPet(s PetState, t PetTuning, now time.Time) (PetState, error) {
	if s.Energy < playEnergyFloor {
		return s, ErrPetTooTired
	}

	s.Happiness = clampStat(s.Happiness + playHappinessGain)
	s.Energy = clampStat(s.Energy - playEnergyCost)
	s.LastPlayed = now
	s.XP += t.PlayXP

	return settleLevel(s, t.XPPerLevel), nil
}

// RestPet 休息：energy+40 happiness+5
func RestPet(s PetState, t PetTuning, now time.Time) (PetState, error) {
	if s.Energy > restEnergyCeiling {
		return s, ErrPetTooRested
	}

	s.Energy = clampStat(s.Energy + restEnergyGain)
	s.Happiness = clampStat(s.Happiness + restHappinessGain)
	s.XP += t.RestXP

	return settleLevel(s, t.XPPerLevel), nil
}

// StageForLevel 进化阶段是等级的纯函数，master 为最终形态
func StageForLevel(level int) EvolutionStage {
	switch {
	case level < 5:
		return StageBaby
	case level < 10:
		return StageTeen
	case level < 15:
		return StageAdult
	default:
		return StageMaster
	}
}

// settleLevel 累计XP跨过升级阈值时逐级结转，余量XP保留
func settleLevel(s PetState, xpPerLevel int) PetState {
	if xpPerLevel <= 0 {
		return s
	}
	if s.Level < 1 {
		s.Level = 1
	}
	for s.XP >= s.Level*xpPerLevel {
		s.XP -= s.Level * xpPerLevel
		s.Level++
	}
	return s
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
