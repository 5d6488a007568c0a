// Package orchestrator drives one workflow submission against the batch
// scheduler: it registers a definition per job, submits the jobs in
// dependency order and removes the definitions again.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/definition"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/ledger"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/mount"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/scheduler"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/workflow"
	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
	"github.com/ehsaniara/ezbatch/pkg/logger"
)

// State is the position of a submission in its lifecycle.
type State string

const (
	StatePending               State = "PENDING"
	StateDefinitionsRegistered State = "DEFINITIONS_REGISTERED"
	StateSubmitting            State = "SUBMITTING"
	StateCompleted             State = "COMPLETED"
	StateFailed                State = "FAILED"
)

const (
	// DefaultRegisterConcurrency bounds parallel definition registrations.
	DefaultRegisterConcurrency = 4

	// MaxNameLength is the longest job or definition name the scheduler accepts.
	MaxNameLength = 128

	idLength = 12
)

// Tag keys attached to every definition and job of a run.
const (
	TagWorkflowName = "workflowName"
	TagJob          = "job"
	TagWorkflowID   = "ezbatchWorkflowId"
	TagJobID        = "ezbatchJobId"
)

// Result describes a submission. On failure it holds whatever was done
// before the error.
type Result struct {
	RunID    string
	Workflow string
	Queue    string
	State    State
	// Order is the computed submission order.
	Order []string
	// JobIDs maps job name to remote job id for submitted jobs.
	JobIDs map[string]string
	// DefinitionIDs maps job name to the registered definition id.
	DefinitionIDs map[string]string
}

// Orchestrator submits workflows through a scheduler.Client.
type Orchestrator struct {
	client              scheduler.Client
	logger              *logger.Logger
	checker             mount.StorageChecker
	encryption          mount.EncryptionMode
	keyID               string
	ledger              ledger.Ledger
	newID               func() string
	now                 func() time.Time
	defOpts             definition.Options
	registerConcurrency int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithLogger(log *logger.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithStorageChecker enables mount validation before anything is registered.
// mode and keyID apply to write mounts without their own encryption.
func WithStorageChecker(checker mount.StorageChecker, mode mount.EncryptionMode, keyID string) Option {
	return func(o *Orchestrator) {
		o.checker = checker
		o.encryption = mode
		o.keyID = keyID
	}
}

// WithLedger records every run that reaches the scheduler.
func WithLedger(l ledger.Ledger) Option {
	return func(o *Orchestrator) { o.ledger = l }
}

// WithIDGenerator replaces the run and job id source.
func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.newID = fn
		}
	}
}

func WithClock(fn func() time.Time) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.now = fn
		}
	}
}

// WithDefinitionOptions sets the account level definition settings. Name
// and tags are filled per job and must not be set here.
func WithDefinitionOptions(opts definition.Options) Option {
	return func(o *Orchestrator) { o.defOpts = opts }
}

func WithRegisterConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.registerConcurrency = n
		}
	}
}

// New creates an Orchestrator around client.
func New(client scheduler.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:              client,
		logger:              logger.New(),
		newID:               newID,
		now:                 time.Now,
		registerConcurrency: DefaultRegisterConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.WithField("component", "orchestrator")
	return o
}

func newID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:idLength]
}

// plannedJob is everything needed to register and submit one job.
type plannedJob struct {
	name  string
	queue string
	def   *definition.JobDefinition
}

// Submit registers, submits and cleans up w. queue is used by jobs without
// their own queue. Validation failures return a nil Result and leave the
// scheduler untouched.
func (o *Orchestrator) Submit(ctx context.Context, w *workflow.Workflow, queue string) (*Result, error) {
	order, err := w.Order()
	if err != nil {
		return nil, err
	}

	runID := o.newID()
	plan, err := o.plan(ctx, w, runID, order, queue)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:         runID,
		Workflow:      w.Name,
		Queue:         queue,
		State:         StatePending,
		Order:         order,
		JobIDs:        make(map[string]string, len(order)),
		DefinitionIDs: make(map[string]string, len(order)),
	}
	log := o.logger.WithFields("workflow", w.Name, "runId", runID)
	log.Info("submitting workflow", "jobs", len(order))

	if err := o.register(ctx, plan, result, log); err != nil {
		result.State = StateFailed
		o.record(ctx, result, err, log)
		return result, err
	}
	result.State = StateDefinitionsRegistered
	log.Debug("job definitions registered", "count", len(result.DefinitionIDs))

	result.State = StateSubmitting
	if err := o.submit(ctx, w, plan, result, log); err != nil {
		result.State = StateFailed
		warnCleanup(log, o.cleanup(ctx, plan, result, log))
		o.record(ctx, result, err, log)
		return result, err
	}

	// Jobs are queued remotely and no longer need their definitions.
	warnCleanup(log, o.cleanup(ctx, plan, result, log))
	result.State = StateCompleted
	o.record(ctx, result, nil, log)

	log.Info("workflow submitted", "jobs", len(result.JobIDs))
	return result, nil
}

// plan translates every job and resolves its queue. It performs no
// scheduler calls; storage is only consulted when a checker is configured.
func (o *Orchestrator) plan(ctx context.Context, w *workflow.Workflow, runID string, order []string, queue string) (map[string]*plannedJob, error) {
	plan := make(map[string]*plannedJob, len(order))

	for _, name := range order {
		spec, _ := w.Jobs.Get(name)

		jobQueue := spec.Queue
		if jobQueue == "" {
			jobQueue = queue
		}
		if jobQueue == "" {
			return nil, &ezerrors.NoQueueSpecifiedError{Job: name}
		}

		jobID := o.newID()
		opts := o.defOpts
		opts.DefinitionName = RemoteName(w.Name, runID, name, jobID)
		opts.Tags = map[string]string{
			TagWorkflowName: w.Name,
			TagJob:          name,
			TagWorkflowID:   runID,
			TagJobID:        jobID,
		}

		def, err := definition.Translate(name, spec, opts)
		if err != nil {
			return nil, err
		}

		if o.checker != nil && !spec.Mounts.IsEmpty() {
			if err := spec.Mounts.Validate(ctx, o.checker, o.encryption, o.keyID); err != nil {
				return nil, withJob(name, err)
			}
		}

		plan[name] = &plannedJob{name: name, queue: jobQueue, def: def}
	}
	return plan, nil
}

func withJob(name string, err error) error {
	var mountErr *ezerrors.InvalidMountError
	if errors.As(err, &mountErr) {
		mountErr.Job = name
		return err
	}
	return fmt.Errorf("job '%s': %w", name, err)
}

// register creates every definition concurrently. On failure the ones that
// did register are removed before the error is returned.
func (o *Orchestrator) register(ctx context.Context, plan map[string]*plannedJob, result *Result, log *logger.Logger) error {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.registerConcurrency)

	for _, name := range result.Order {
		pj := plan[name]
		g.Go(func() error {
			id, err := o.client.RegisterDefinition(gctx, pj.def)
			if err != nil {
				return &ezerrors.DefinitionRegistrationError{Job: pj.name, Err: err}
			}
			mu.Lock()
			result.DefinitionIDs[pj.name] = id
			mu.Unlock()
			log.Debug("registered job definition", "job", pj.name, "definitionId", id)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("job definition registration failed, rolling back", "error", err)
		warnCleanup(log, o.cleanup(ctx, plan, result, log))
		return err
	}
	return nil
}

// submit sends jobs one at a time in order so every dependency id is known
// before its dependents are submitted.
func (o *Orchestrator) submit(ctx context.Context, w *workflow.Workflow, plan map[string]*plannedJob, result *Result, log *logger.Logger) error {
	for i, name := range result.Order {
		pj := plan[name]

		deps := w.DependenciesOf(name)
		dependsOn := make([]string, 0, len(deps))
		for _, dep := range deps {
			dependsOn = append(dependsOn, result.JobIDs[dep])
		}

		jobID, err := o.client.SubmitJob(ctx, scheduler.SubmitRequest{
			Name:         pj.def.Name,
			Queue:        pj.queue,
			DefinitionID: result.DefinitionIDs[name],
			DependsOn:    dependsOn,
			Tags:         pj.def.Tags,
		})
		if err != nil {
			submitted := append([]string(nil), result.Order[:i]...)
			notSubmitted := append([]string(nil), result.Order[i:]...)
			log.Error("job submission failed", "job", name, "error", err)
			return &ezerrors.JobSubmissionError{
				Job:          name,
				Submitted:    submitted,
				NotSubmitted: notSubmitted,
				Err:          err,
			}
		}

		result.JobIDs[name] = jobID
		log.Info("job submitted", "job", name, "queue", pj.queue, "jobId", jobID, "dependsOn", len(dependsOn))
	}
	return nil
}

// cleanup deregisters every recorded definition and returns the failures
// joined. It runs even when ctx is already cancelled.
func (o *Orchestrator) cleanup(ctx context.Context, plan map[string]*plannedJob, result *Result, log *logger.Logger) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for _, name := range result.Order {
		id, ok := result.DefinitionIDs[name]
		if !ok {
			continue
		}
		if err := o.client.DeregisterDefinition(ctx, id); err != nil {
			errs = append(errs, &ezerrors.DefinitionDeregistrationError{Job: name, DefinitionID: id, Err: err})
			continue
		}
		log.Debug("deregistered job definition", "job", name, "definitionId", id, "definition", plan[name].def.Name)
	}
	return ezerrors.JoinErrors(errs...)
}

// warnCleanup reports deregistration failures without changing the outcome.
func warnCleanup(log *logger.Logger, err error) {
	if err != nil {
		log.Warn("failed to deregister job definitions", "error", err)
	}
}

func (o *Orchestrator) record(ctx context.Context, result *Result, cause error, log *logger.Logger) {
	if o.ledger == nil {
		return
	}

	run := &ledger.Run{
		RunID:       result.RunID,
		Workflow:    result.Workflow,
		Queue:       result.Queue,
		State:       string(result.State),
		SubmittedAt: o.now(),
		Jobs:        make(map[string]string, len(result.JobIDs)),
		Order:       append([]string(nil), result.Order...),
	}
	for name, id := range result.JobIDs {
		run.Jobs[name] = id
	}
	if cause != nil {
		run.Error = cause.Error()
	}

	if err := o.ledger.Record(context.WithoutCancel(ctx), run); err != nil {
		log.Warn("failed to record run", "error", err)
	}
}

// RemoteName builds the scheduler-side name of a job as
// <workflow>-<runID>-<job>-<jobID>, replacing characters the scheduler
// rejects. When the result would exceed MaxNameLength the workflow and job
// parts are shortened, longest first, so the ids stay intact.
func RemoteName(workflowName, runID, jobName, jobID string) string {
	wf, jn := replaceUnsafe(workflowName), replaceUnsafe(jobName)
	run, id := replaceUnsafe(runID), replaceUnsafe(jobID)

	wf, jn = fitParts(wf, jn, MaxNameLength-len(run)-len(id)-3)
	return SanitizeName(wf + "-" + run + "-" + jn + "-" + id)
}

// fitParts shortens the longer of a and b until both fit in budget bytes.
func fitParts(a, b string, budget int) (string, string) {
	budget = max(budget, 0)
	for len(a)+len(b) > budget {
		if len(a) >= len(b) {
			a = a[:len(a)-1]
		} else {
			b = b[:len(b)-1]
		}
	}
	return a, b
}

// SanitizeName keeps letters, digits, hyphens and underscores, replacing
// anything else with an underscore. The first character must be
// alphanumeric.
func SanitizeName(name string) string {
	out := strings.TrimLeft(replaceUnsafe(name), "-_")
	if len(out) > MaxNameLength {
		out = out[:MaxNameLength]
	}
	return out
}

func replaceUnsafe(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
