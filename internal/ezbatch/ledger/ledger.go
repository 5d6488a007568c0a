// Package ledger records the outcome of each workflow submission so runs can
// be listed and inspected after the fact.
package ledger

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/ehsaniara/ezbatch/pkg/config"
	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
	"github.com/ehsaniara/ezbatch/pkg/logger"
)

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
)

// Run is the record of one submit call.
type Run struct {
	RunID       string
	Workflow    string
	Queue       string
	State       string
	SubmittedAt time.Time
	// Jobs maps job name to remote job id for every job that was submitted.
	Jobs map[string]string
	// Order is the computed submission order.
	Order []string
	Error string
}

func (r *Run) clone() *Run {
	c := *r
	if r.Jobs != nil {
		c.Jobs = make(map[string]string, len(r.Jobs))
		for k, v := range r.Jobs {
			c.Jobs[k] = v
		}
	}
	if r.Order != nil {
		c.Order = append([]string(nil), r.Order...)
	}
	return &c
}

//counterfeiter:generate . Ledger

// Ledger stores Run records. Record overwrites an existing run with the
// same id.
type Ledger interface {
	Record(ctx context.Context, run *Run) error
	// Get returns ErrRunNotFound when no run has the id.
	Get(ctx context.Context, runID string) (*Run, error)
	// List returns runs newest first. A non-positive limit means no limit.
	List(ctx context.Context, limit int) ([]*Run, error)
	Close() error
}

// New builds the backend named in cfg. awsCfg is only used by the DynamoDB
// backend.
func New(ctx context.Context, cfg config.LedgerConfig, awsCfg aws.Config, log *logger.Logger) (Ledger, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryLedger(), nil
	case BackendDynamoDB:
		return NewDynamoDBLedger(ctx, awsCfg, cfg.Table, cfg.TTL, log)
	default:
		return nil, ezerrors.NewConfigError("ledger", "backend", fmt.Errorf("unknown backend %q", cfg.Backend))
	}
}
