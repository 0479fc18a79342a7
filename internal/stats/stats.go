// Package stats computes the dashboard KPIs. Compute is a pure function of
// the task snapshot; nothing here is cached or persisted.
package stats

import (
	"math"

	"github.com/athenahq/athena/models"
)

// Compute derives the KPI snapshot from the given task set.
//
//   - AutonomousClosureRate: rounded percentage of closed tasks (completed or
//     exceptional) whose history never passed through blocked. 0 when no task
//     is closed.
//   - BlockageIndex: blocked entries summed across every task's history, so a
//     task blocked three times contributes 3.
//   - ResultsByArea: per fixed area, the count of tasks with a non-empty
//     tangible result; every area appears even at zero.
func Compute(tasks []models.Task) models.Stats {
	var closed, autonomous, blockage int
	resultCounts := make(map[models.Area]int)

	for _, task := range tasks {
		if task.Status.IsCompletion() {
			closed++
			if !task.WasBlocked() {
				autonomous++
			}
		}
		for _, s := range task.StatusHistory {
			if s == models.StatusBlocked {
				blockage++
			}
		}
		if task.TangibleResult != "" {
			resultCounts[task.Area]++
		}
	}

	rate := 0
	if closed > 0 {
		rate = int(math.Round(float64(autonomous) / float64(closed) * 100))
	}

	areas := models.Areas()
	results := make([]models.AreaResult, 0, len(areas))
	for _, area := range areas {
		results = append(results, models.AreaResult{Area: area, Total: resultCounts[area]})
	}

	return models.Stats{
		AutonomousClosureRate: rate,
		BlockageIndex:         blockage,
		ResultsByArea:         results,
	}
}
