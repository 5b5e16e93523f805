package recommend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalie/internal/model"
	"goalie/internal/recommend"
	"goalie/internal/testsupport"
)

var now = time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)

func ids(candidates []recommend.Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Task.ID)
	}
	return out
}

func TestAvailableFollowsDependencyCompletion(t *testing.T) {
	repo := testsupport.NewRepository(t)
	a := testsupport.Task("A", "first")
	b := testsupport.Task("B", "needs A", "A")
	c := testsupport.Task("C", "done already", "A")
	c.Status = model.TaskCompleted
	testsupport.SeedGoal(t, repo, testsupport.Goal("g1", "G"), a, b, c)

	engine := recommend.NewEngine(repo, nil).WithClock(testsupport.Clock(now))

	available, err := engine.Available("")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids(available))

	a.Status = model.TaskCompleted
	require.NoError(t, repo.SaveTask("g1", a))

	available, err = engine.Available("")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, ids(available))
	assert.Equal(t, "g1", available[0].GoalID)
}

func TestUnresolvedDependencyBlocks(t *testing.T) {
	pool := []*model.Task{testsupport.Task("1", "orphan", "99")}
	assert.False(t, recommend.Eligible(pool[0], pool))

	done := testsupport.Task("99", "late arrival")
	done.Status = model.TaskCompleted
	pool = append(pool, done)
	assert.True(t, recommend.Eligible(pool[0], pool))
}

func TestOnlyTodoTasksAreEligible(t *testing.T) {
	for _, status := range []model.TaskStatus{model.TaskInProgress, model.TaskCompleted, model.TaskStatus("blocked")} {
		task := testsupport.Task("1", "x")
		task.Status = status
		assert.False(t, recommend.Eligible(task, []*model.Task{task}), "status %s", status)
	}
}

func TestScoreOrdering(t *testing.T) {
	base := func(id string) *model.Task {
		task := testsupport.Task(id, id)
		task.Difficulty = 5
		task.TimeEstimate = 60
		return task
	}

	high, low := base("high"), base("low")
	high.Priority = model.PriorityHigh
	low.Priority = model.PriorityLow
	assert.Greater(t, recommend.Score(high, now), recommend.Score(low, now))

	easy, hard := base("easy"), base("hard")
	easy.Difficulty = 2
	hard.Difficulty = 9
	assert.Greater(t, recommend.Score(easy, now), recommend.Score(hard, now))

	due, undated := base("due"), base("undated")
	tomorrow := now.Add(24 * time.Hour)
	due.DueDate = &tomorrow
	assert.Greater(t, recommend.Score(due, now), recommend.Score(undated, now))
}

func TestScoreFormula(t *testing.T) {
	task := testsupport.Task("1", "x")
	task.Priority = model.PriorityMedium
	task.Difficulty = 3
	task.TimeEstimate = 45
	// 2*10 + (11-3)*2 + (120-45)/10
	assert.InDelta(t, 20+16+7.5, recommend.Score(task, now), 1e-9)

	task.TimeEstimate = 500
	// time term floors at 1/10
	assert.InDelta(t, 20+16+0.1, recommend.Score(task, now), 1e-9)
}

func TestUrgencyBonus(t *testing.T) {
	cases := []struct {
		name  string
		due   time.Time
		bonus float64
	}{
		{"overdue", now.Add(-72 * time.Hour), 20},
		{"later today", now.Add(2 * time.Hour), 20},
		{"two days", now.Add(36 * time.Hour), 10},
		{"three days", now.Add(72 * time.Hour), 10},
		{"week", now.Add(7 * 24 * time.Hour), 5},
		{"eight days", now.Add(7*24*time.Hour + time.Minute), 0},
	}
	undated := testsupport.Task("u", "u")
	baseline := recommend.Score(undated, now)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := testsupport.Task("d", "d")
			due := tc.due
			task.DueDate = &due
			assert.InDelta(t, tc.bonus, recommend.Score(task, now)-baseline, 1e-9)
		})
	}
}

func TestSelectPrefersFirstOnTie(t *testing.T) {
	candidates := []recommend.Candidate{
		{GoalID: "g", Task: testsupport.Task("first", "same")},
		{GoalID: "g", Task: testsupport.Task("second", "same")},
	}
	best := recommend.Select(candidates, now)
	require.NotNil(t, best)
	assert.Equal(t, "first", best.Task.ID)
	assert.Positive(t, best.Score)

	assert.Nil(t, recommend.Select(nil, now))
}

func TestRecommendScopesGoals(t *testing.T) {
	repo := testsupport.NewRepository(t)

	quick := testsupport.Task("1", "quick win")
	quick.Priority = model.PriorityHigh
	paused := testsupport.Goal("paused", "Paused")
	paused.Status = model.GoalPaused
	testsupport.SeedGoal(t, repo, paused, quick)

	slow := testsupport.Task("1", "slow")
	slow.Priority = model.PriorityLow
	slow.Difficulty = 9
	testsupport.SeedGoal(t, repo, testsupport.Goal("active", "Active"), slow)

	engine := recommend.NewEngine(repo, nil).WithClock(testsupport.Clock(now))

	best, err := engine.Recommend("")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "active", best.GoalID)

	best, err = engine.Recommend("paused")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "paused", best.GoalID)
	assert.Equal(t, "quick win", best.Task.Title)

	best, err = engine.Recommend("missing")
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestRecommendNothingEligible(t *testing.T) {
	repo := testsupport.NewRepository(t)
	blocked := testsupport.Task("2", "blocked", "1")
	first := testsupport.Task("1", "in flight")
	first.Status = model.TaskInProgress
	testsupport.SeedGoal(t, repo, testsupport.Goal("g", "G"), first, blocked)

	best, err := recommend.NewEngine(repo, nil).Recommend("")
	require.NoError(t, err)
	assert.Nil(t, best)
}
