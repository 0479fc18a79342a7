package stats

import (
	"testing"

	"github.com/athenahq/athena/models"
)

func task(status models.TaskStatus, history []models.TaskStatus, area models.Area, result string) models.Task {
	return models.Task{
		Status:         status,
		StatusHistory:  history,
		Area:           area,
		TangibleResult: result,
	}
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil)
	if got.AutonomousClosureRate != 0 {
		t.Errorf("rate = %d, want 0", got.AutonomousClosureRate)
	}
	if got.BlockageIndex != 0 {
		t.Errorf("blockage = %d, want 0", got.BlockageIndex)
	}
	if len(got.ResultsByArea) != len(models.Areas()) {
		t.Errorf("areas = %d, want %d", len(got.ResultsByArea), len(models.Areas()))
	}
	for _, r := range got.ResultsByArea {
		if r.Total != 0 {
			t.Errorf("area %s total = %d, want 0", r.Area, r.Total)
		}
	}
}

func TestCompute_AutonomousClosureRate(t *testing.T) {
	inProgress := []models.TaskStatus{models.StatusInProgress}
	closedClean := []models.TaskStatus{models.StatusInProgress, models.StatusCompleted}
	closedBlocked := []models.TaskStatus{models.StatusInProgress, models.StatusBlocked, models.StatusInProgress, models.StatusCompleted}

	tests := []struct {
		name  string
		tasks []models.Task
		want  int
	}{
		{
			name:  "no closed tasks",
			tasks: []models.Task{task(models.StatusInProgress, inProgress, models.AreaContent, "")},
			want:  0,
		},
		{
			name: "two of three closed autonomously rounds to 67",
			tasks: []models.Task{
				task(models.StatusCompleted, closedClean, models.AreaContent, ""),
				task(models.StatusExceptional, closedClean, models.AreaLegal, ""),
				task(models.StatusCompleted, closedBlocked, models.AreaSales, ""),
			},
			want: 67,
		},
		{
			name: "one of three rounds to 33",
			tasks: []models.Task{
				task(models.StatusCompleted, closedClean, models.AreaContent, ""),
				task(models.StatusCompleted, closedBlocked, models.AreaLegal, ""),
				task(models.StatusCompleted, closedBlocked, models.AreaSales, ""),
			},
			want: 33,
		},
		{
			name: "open blocked tasks do not dilute the rate",
			tasks: []models.Task{
				task(models.StatusCompleted, closedClean, models.AreaContent, ""),
				task(models.StatusBlocked, []models.TaskStatus{models.StatusInProgress, models.StatusBlocked}, models.AreaLegal, ""),
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.tasks).AutonomousClosureRate; got != tt.want {
				t.Errorf("rate = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompute_BlockageIndex(t *testing.T) {
	// A task blocked twice counts twice; current status is irrelevant.
	tasks := []models.Task{
		task(models.StatusInProgress, []models.TaskStatus{
			models.StatusInProgress, models.StatusBlocked, models.StatusInProgress, models.StatusBlocked, models.StatusInProgress,
		}, models.AreaCollections, ""),
		task(models.StatusCompleted, []models.TaskStatus{
			models.StatusInProgress, models.StatusBlocked, models.StatusInProgress, models.StatusCompleted,
		}, models.AreaContent, ""),
		task(models.StatusInProgress, []models.TaskStatus{models.StatusInProgress}, models.AreaSales, ""),
	}
	if got := Compute(tasks).BlockageIndex; got != 3 {
		t.Errorf("blockage = %d, want 3", got)
	}
}

func TestCompute_ResultsByArea(t *testing.T) {
	history := []models.TaskStatus{models.StatusInProgress}
	tasks := []models.Task{
		task(models.StatusInProgress, history, models.AreaContent, "Newsletter sent"),
		task(models.StatusInProgress, history, models.AreaContent, "Campaign drafted"),
		task(models.StatusInProgress, history, models.AreaLegal, ""),
		task(models.StatusCompleted, append(history, models.StatusCompleted), models.AreaSales, "Deal closed"),
	}

	got := Compute(tasks).ResultsByArea
	want := map[models.Area]int{
		models.AreaContent:     2,
		models.AreaLegal:       0,
		models.AreaCollections: 0,
		models.AreaSales:       1,
	}
	if len(got) != len(models.Areas()) {
		t.Fatalf("result rows = %d, want %d", len(got), len(models.Areas()))
	}
	for i, area := range models.Areas() {
		if got[i].Area != area {
			t.Errorf("row %d area = %s, want %s (fixed order)", i, got[i].Area, area)
		}
		if got[i].Total != want[area] {
			t.Errorf("area %s total = %d, want %d", area, got[i].Total, want[area])
		}
	}
}
