package worker

import (
	"context"
	"sync"
	"time"

	"github.com/lcavallin/gradelens/internal/dto"
	"github.com/lcavallin/gradelens/internal/service"
	"github.com/rs/zerolog/log"
)

// jobTimeout bounds one grading request end to end (embedding inference plus
// store work). Expiry is a retryable failure, never data corruption: the
// record is written last.
const jobTimeout = 60 * time.Second

// GradingResult is delivered on the channel returned by Submit.
type GradingResult struct {
	Response *dto.SubmissionResponse
	Err      error
}

type gradingJob struct {
	ctx     context.Context
	req     dto.SubmitAnswerRequest
	persist bool
	out     chan GradingResult
}

// Pool runs grading requests on a fixed set of background workers so that
// interactive callers are never blocked by model inference or store I/O.
// Each request is a self-contained, strictly sequential unit of work; the
// pool only bounds how many run at once.
type Pool struct {
	submissions service.SubmissionService
	jobs        chan gradingJob
	wg          sync.WaitGroup
	stop        sync.Once
}

func NewPool(submissions service.SubmissionService, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	p := &Pool{
		submissions: submissions,
		jobs:        make(chan gradingJob, workers*4),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	log.Info().Int("workers", workers).Msg("Grading worker pool started")
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		ctx, cancel := context.WithTimeout(job.ctx, jobTimeout)
		resp, err := p.submissions.SubmitAnswer(ctx, job.req, job.persist)
		cancel()
		job.out <- GradingResult{Response: resp, Err: err}
	}
}

// Submit enqueues one grading request and returns immediately; the result is
// delivered on the returned channel when a worker finishes the pipeline.
func (p *Pool) Submit(ctx context.Context, req dto.SubmitAnswerRequest, persist bool) <-chan GradingResult {
	out := make(chan GradingResult, 1)
	p.jobs <- gradingJob{ctx: ctx, req: req, persist: persist, out: out}
	return out
}

// Shutdown stops accepting work and waits for in-flight jobs to finish.
func (p *Pool) Shutdown() {
	p.stop.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
	log.Info().Msg("Grading worker pool stopped")
}
