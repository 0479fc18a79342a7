package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/manifoldco/promptui"

	"github.com/athenahq/athena/internal/advisory"
	"github.com/athenahq/athena/internal/notify"
	"github.com/athenahq/athena/llm"
	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/store"
)

// GetStore builds the in-memory task store: seed fixture applied, then one
// overdue-escalation pass so a freshly loaded set already reflects reality.
func GetStore() (*store.MemoryStore, error) {
	config := GetConfig()

	s := store.NewMemoryStore()
	if err := s.LoadSeed(config.Data.SeedFile, config.Data.SeedFormat); err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	s.EscalateOverdue(time.Now())
	return s, nil
}

// GetNotifyEngine wires a notification engine to the store's change hook and
// primes it against the current task set.
func GetNotifyEngine(s *store.MemoryStore) *notify.Engine {
	engine := notify.NewEngine()
	s.OnChange(func(tasks []models.Task) {
		engine.Refresh(tasks, time.Now())
	})
	if tasks, err := s.ListTasks(nil, nil); err == nil {
		engine.Refresh(tasks, time.Now())
	}
	return engine
}

// GetAdvisoryService builds the advisory layer from the configured LLM
// provider.
func GetAdvisoryService() (*advisory.Service, error) {
	config := GetConfig()

	provider, err := llm.NewProvider(&config.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	return advisory.NewService(provider, config.LLM, TemplatesPath(), config.Verbose), nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be filtered using the provided filter function.
func selectTaskInteractive(taskStore store.TaskStore, filterFn func(models.Task) bool, label string) (models.Task, error) {
	tasks, err := taskStore.ListTasks(filterFn, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}

	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (Area: {{ .Area }}, Status: {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} (Area: {{ .Area }}, Status: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Status:\t" | faint }} {{ .Status }}
{{ "Area:\t" | faint }} {{ .Area }}
{{ "Executor:\t" | faint }} {{ .Executor }}`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		name := strings.ToLower(task.Title)
		id := task.ID
		input = strings.ToLower(input)
		return strings.Contains(name, input) || strings.Contains(id, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // includes promptui.ErrInterrupt
	}

	return tasks[i], nil
}

// resolveTask returns the task named by args[0], or prompts when no argument
// was given.
func resolveTask(taskStore store.TaskStore, args []string, label string) (models.Task, error) {
	if len(args) > 0 {
		return taskStore.GetTask(args[0])
	}
	return selectTaskInteractive(taskStore, nil, label)
}
