package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/scheduler"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Scheduler management",
	Long: `Run the scheduler daemon or manage its jobs.

Registered jobs:
- daily_context: daily at 00:10 UTC (full context generation)
- maintenance:   weekly, Sunday 01:00 UTC (artifact retention)

Subcommands:
  start - start the scheduler daemon
  list  - list registered jobs
  run   - run one job immediately

Example:
  go run ./cmd/brain scheduler start
  go run ./cmd/brain scheduler run daily_context`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		Long: `Start the scheduler and register all jobs.

The daemon keeps running until interrupted with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJobNow,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// initScheduler wires the scheduler with every job registered.
func initScheduler() (*scheduler.Scheduler, *pipeline, error) {
	p, err := initPipeline()
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(p.log)

	dailyJob := jobs.NewDailyContextJob(p.agg, p.writer, p.repo, p.cfg, p.log)
	if err := sched.AddJob(dailyJob); err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("register daily_context: %w", err)
	}

	maintenanceJob := jobs.NewMaintenanceJob(p.writer, p.log)
	if err := sched.AddJob(maintenanceJob); err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("register maintenance: %w", err)
	}

	return sched, p, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	PrintHeader("Pentosh1 Scheduler")

	sched, p, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer p.Close()

	sched.Start()

	PrintSuccess("Scheduler started")
	fmt.Println("\nRegistered jobs:")
	PrintList(sched.GetAllJobs())
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	PrintSuccess("Scheduler stopped")
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, p, err := initScheduler()
	if err != nil {
		return err
	}
	defer p.Close()

	PrintHeader("Registered Jobs")
	PrintList(sched.GetAllJobs())
	return nil
}

func runJobNow(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, p, err := initScheduler()
	if err != nil {
		return err
	}
	defer p.Close()

	PrintInfo(fmt.Sprintf("Running job %s", jobName))
	if err := sched.RunJob(jobName); err != nil {
		return err
	}

	// RunJob is asynchronous; poll the history until the run lands
	for {
		time.Sleep(200 * time.Millisecond)

		history, err := sched.GetJobHistory(jobName)
		if err != nil {
			return err
		}
		if len(history.Results) > 0 {
			result := history.Results[len(history.Results)-1]
			if result.Success {
				PrintSuccess(fmt.Sprintf("Job %s completed in %.1fs", jobName, result.Duration.Seconds()))
			} else {
				PrintError(fmt.Sprintf("Job %s failed: %s", jobName, result.Error))
			}
			return nil
		}
	}
}
