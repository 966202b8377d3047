package indexing

import (
	"context"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
)

// WalletJob identifies one independent indexing task
type WalletJob struct {
	Address    string
	Blockchain domain.Blockchain
	Mode       domain.IndexMode
}

// JobResult pairs a job with its outcome. Err is set when the job failed
// validation or was cancelled; Artworks may be partial in either case.
type JobResult struct {
	Job      WalletJob
	Artworks []*domain.Artwork
	Err      error
}

// Runner executes independent wallet jobs on a bounded worker pool. Jobs
// share no mutable state; each paces its own provider calls through the
// orchestrator's limiters.
type Runner struct {
	orchestrator Orchestrator
	pool         pond.ResultPool[*JobResult]
}

// NewRunner creates a job runner with a bounded pool
func NewRunner(orchestrator Orchestrator, maxConcurrentJobs int) *Runner {
	if maxConcurrentJobs <= 0 {
		maxConcurrentJobs = 2
	}

	return &Runner{
		orchestrator: orchestrator,
		pool:         pond.NewResultPool[*JobResult](maxConcurrentJobs),
	}
}

// Run executes all jobs and returns their results in submission order
func (r *Runner) Run(ctx context.Context, jobs []WalletJob) []*JobResult {
	tasks := make([]pond.Result[*JobResult], 0, len(jobs))

	for _, job := range jobs {
		job := job
		tasks = append(tasks, r.pool.Submit(func() *JobResult {
			artworks, err := r.orchestrator.IndexWallet(ctx, job.Address, job.Blockchain, job.Mode)
			return &JobResult{Job: job, Artworks: artworks, Err: err}
		}))
	}

	results := make([]*JobResult, 0, len(jobs))
	for i, task := range tasks {
		result, err := task.Wait()
		if err != nil {
			// The pool failed the task before the job could run
			result = &JobResult{Job: jobs[i], Err: err}
		}
		if result.Err != nil {
			logger.WarnCtx(ctx, "Wallet job ended with error",
				zap.String("wallet", result.Job.Address),
				zap.String("blockchain", string(result.Job.Blockchain)),
				zap.Error(result.Err),
			)
		}
		results = append(results, result)
	}

	return results
}

// Close drains the pool
func (r *Runner) Close() {
	_ = r.pool.Stop()
}
