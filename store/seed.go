package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"github.com/athenahq/athena/models"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

// seedFile is the on-disk fixture shape. It exists only to populate the
// in-memory store at startup; nothing is ever written back.
type seedFile struct {
	Tasks        []seedTask        `json:"tasks" yaml:"tasks" toml:"tasks"`
	Testimonials []seedTestimonial `json:"testimonials" yaml:"testimonials" toml:"testimonials"`
}

type seedTask struct {
	Title          string `json:"title" yaml:"title" toml:"title"`
	Description    string `json:"description" yaml:"description" toml:"description"`
	Area           string `json:"area" yaml:"area" toml:"area"`
	Assigner       string `json:"assigner" yaml:"assigner" toml:"assigner"`
	Executor       string `json:"executor" yaml:"executor" toml:"executor"`
	DueDate        string `json:"dueDate" yaml:"dueDate" toml:"dueDate"`
	Status         string `json:"status" yaml:"status" toml:"status"`
	EvidenceLink   string `json:"evidenceLink" yaml:"evidenceLink" toml:"evidenceLink"`
	TangibleResult string `json:"tangibleResult" yaml:"tangibleResult" toml:"tangibleResult"`
	Comments       string `json:"comments" yaml:"comments" toml:"comments"`
}

type seedTestimonial struct {
	ClientName string `json:"clientName" yaml:"clientName" toml:"clientName"`
	Company    string `json:"company" yaml:"company" toml:"company"`
	Quote      string `json:"quote" yaml:"quote" toml:"quote"`
}

// LoadSeed populates the store from a fixture file. A missing file is not an
// error; an empty path disables seeding. The format defaults to json and may
// be json, yaml or toml, inferred from the file extension when unset.
func (s *MemoryStore) LoadSeed(path, format string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read seed file %s: %w", path, err)
	}

	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
		if format == "yml" {
			format = formatYAML
		}
	}

	var seed seedFile
	switch strings.ToLower(format) {
	case formatJSON, "":
		if err := json.Unmarshal(data, &seed); err != nil {
			return fmt.Errorf("parse JSON seed %s: %w", path, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return fmt.Errorf("parse YAML seed %s: %w", path, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &seed); err != nil {
			return fmt.Errorf("parse TOML seed %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported seed format: %s (supported: json, yaml, toml)", format)
	}

	for i, st := range seed.Tasks {
		if err := s.seedTask(st); err != nil {
			return fmt.Errorf("seed task %d (%q): %w", i, st.Title, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range seed.Testimonials {
		s.testimonials = append(s.testimonials, models.Testimonial{
			ID:         uuid.New().String(),
			ClientName: st.ClientName,
			Company:    st.Company,
			Quote:      st.Quote,
		})
	}
	return nil
}

// seedTask inserts one fixture task. Unlike AddTask it honors a fixture's
// status so seeds can start mid-lifecycle, but the history invariants still
// hold: the history opens with in-progress and ends on the current status.
func (s *MemoryStore) seedTask(st seedTask) error {
	area := models.Area(st.Area)
	if !area.IsValid() {
		return fmt.Errorf("unknown area %q", st.Area)
	}
	due, err := time.ParseInLocation("2006-01-02", st.DueDate, time.Local)
	if err != nil {
		return fmt.Errorf("bad dueDate %q: %w", st.DueDate, err)
	}

	status := models.StatusInProgress
	if st.Status != "" {
		status = models.TaskStatus(st.Status)
		if !status.IsValid() {
			return fmt.Errorf("unknown status %q", st.Status)
		}
	}
	history := []models.TaskStatus{models.StatusInProgress}
	history = appendStatus(history, status)

	task := models.Task{
		ID:             uuid.New().String(),
		Title:          st.Title,
		Description:    st.Description,
		Area:           area,
		Assigner:       st.Assigner,
		Executor:       st.Executor,
		DueDate:        due,
		CreatedAt:      s.now(),
		Status:         status,
		StatusHistory:  history,
		EvidenceLink:   st.EvidenceLink,
		TangibleResult: st.TangibleResult,
		Comments:       st.Comments,
	}
	if err := models.ValidateStruct(task); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	return nil
}
