package recommend

import (
	"math"
	"time"

	"goalie/internal/model"
)

const (
	priorityFactor   = 10
	difficultyCeil   = 11
	difficultyFactor = 2
	timeBudget       = 120
	timeFactor       = 10
	day              = 24 * time.Hour
)

// Score ranks an eligible task; higher is better.
//
//	priority weight * 10
//	+ (11 - difficulty) * 2
//	+ max(1, 120 - timeEstimate) / 10
//	+ urgency bonus from the due date
func Score(task *model.Task, now time.Time) float64 {
	score := float64(task.Priority.Weight() * priorityFactor)
	score += float64((difficultyCeil - task.Difficulty) * difficultyFactor)
	score += math.Max(1, float64(timeBudget-task.TimeEstimate)) / timeFactor
	score += urgencyBonus(task.DueDate, now)
	return score
}

// DaysUntil returns the whole days from now until due, rounded up.
// Overdue dates yield zero or negative values.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(float64(due.Sub(now)) / float64(day)))
}

func urgencyBonus(due *time.Time, now time.Time) float64 {
	if due == nil {
		return 0
	}
	switch days := DaysUntil(*due, now); {
	case days <= 1:
		return 20
	case days <= 3:
		return 10
	case days <= 7:
		return 5
	default:
		return 0
	}
}
