package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/config"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     chan struct{}
	err      error
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(_ context.Context) error {
	if j.runs != nil {
		j.runs <- struct{}{}
	}
	return j.err
}

func testScheduler() *Scheduler {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	s := New(log)
	s.retryDelay = time.Millisecond
	return s
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := testScheduler()

	job := &fakeJob{name: "daily_context", schedule: "0 10 0 * * *"}
	if err := s.AddJob(job); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if err := s.AddJob(job); err == nil {
		t.Fatal("duplicate job name must be rejected")
	}
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := testScheduler()

	if err := s.AddJob(&fakeJob{name: "bad", schedule: "not a cron expr"}); err == nil {
		t.Fatal("invalid schedule must be rejected")
	}
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := testScheduler()

	runs := make(chan struct{}, 1)
	job := &fakeJob{name: "daily_context", schedule: "0 10 0 * * *", runs: runs}
	if err := s.AddJob(job); err != nil {
		t.Fatal(err)
	}

	if err := s.RunJob("daily_context"); err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	select {
	case <-runs:
	case <-time.After(time.Second):
		t.Fatal("job did not run")
	}

	// History is written after Run returns, poll briefly
	deadline := time.Now().Add(time.Second)
	for {
		history, err := s.GetJobHistory("daily_context")
		if err != nil {
			t.Fatal(err)
		}
		if len(history.Results) == 1 {
			if !history.Results[0].Success {
				t.Error("run should be recorded as success")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("history never recorded")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRunJobUnknownName(t *testing.T) {
	s := testScheduler()
	if err := s.RunJob("missing"); err == nil {
		t.Fatal("unknown job must be rejected")
	}
}

func TestJobHistorySuccessRate(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})
	h.AddResult(JobResult{Success: true})

	if got := h.GetSuccessRate(); got < 0.66 || got > 0.67 {
		t.Errorf("success rate = %v", got)
	}
	if got := len(h.GetFailedResults()); got != 1 {
		t.Errorf("failed results = %d", got)
	}
	if got := len(h.GetLatestResults(2)); got != 2 {
		t.Errorf("latest results = %d", got)
	}
}
