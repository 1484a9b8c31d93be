package redmine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/redmine-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedResourceType  = errors.New("unsupported resource type")
	ErrUnsupportedOperationType = errors.New("unsupported operation type")
	ErrHoursRequired            = errors.New("hours must be a number")
)

// Batch operation types.
const (
	BatchCreate = "create"
	BatchUpdate = "update"
	BatchDelete = "delete"
	BatchGet    = "get"
)

const defaultBatchConcurrency = 5

// BatchOperation represents a single operation in a batch.
// Target is the id or identifier of the object and is ignored by create. Data
// is the payload of create and update.
type BatchOperation struct {
	ID       string
	Type     string // "create", "update", "delete", "get"
	Resource ResourceType
	Target   string
	Data     JSON
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation. Data holds the
// decoded response, or the HTTP status for delete.
type BatchResult struct {
	ID       string
	Success  bool
	Data     any
	Error    error
	Duration time.Duration
}

// crudFuncs binds the four batch operation types to one resource.
type crudFuncs struct {
	create func(ctx context.Context, data JSON) (any, error)
	update func(ctx context.Context, target string, data JSON) (any, error)
	remove func(ctx context.Context, target string) (any, error)
	get    func(ctx context.Context, target string) (any, error)
}

// BatchExecutor executes batch operations.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor running at most concurrency
// operations at a time.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the timeout of each operation.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs a batch of operations. Results are in the order of operations;
// a failed operation does not stop the others.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) []BatchResult {
	results := make([]BatchResult, len(operations))

	var group errgroup.Group

	group.SetLimit(b.concurrency)

	for index, operation := range operations {
		group.Go(func() error {
			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}

			return nil
		})
	}

	_ = group.Wait()

	return results
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	result := &BatchResult{ID: operation.ID}

	funcs, err := b.crudFor(operation.Resource)
	if err != nil {
		result.Error = err

		return result
	}

	switch operation.Type {
	case BatchCreate:
		result.Data, result.Error = funcs.create(ctx, operation.Data)
	case BatchUpdate:
		result.Data, result.Error = funcs.update(ctx, operation.Target, operation.Data)
	case BatchDelete:
		result.Data, result.Error = funcs.remove(ctx, operation.Target)
	case BatchGet:
		result.Data, result.Error = funcs.get(ctx, operation.Target)
	default:
		result.Error = fmt.Errorf("%w: %s", ErrUnsupportedOperationType, operation.Type)
	}

	result.Success = result.Error == nil

	return result
}

func (b *BatchExecutor) crudFor(resource ResourceType) (*crudFuncs, error) {
	switch resource {
	case ResourceIssue:
		issues := b.client.Issues()

		return &crudFuncs{
			create: func(ctx context.Context, data JSON) (any, error) { return issues.Create(ctx, data) },
			update: withIntTarget(func(ctx context.Context, id int, data JSON) (any, error) {
				return issues.Update(ctx, id, data)
			}),
			remove: withIntID(func(ctx context.Context, id int) (any, error) { return issues.Delete(ctx, id) }),
			get:    withIntID(func(ctx context.Context, id int) (any, error) { return issues.Get(ctx, id) }),
		}, nil
	case ResourceProject:
		projects := b.client.Projects()

		return &crudFuncs{
			create: func(ctx context.Context, data JSON) (any, error) {
				name, _ := data["name"].(string)
				identifier, _ := data["identifier"].(string)

				return projects.Create(ctx, name, identifier, data)
			},
			update: func(ctx context.Context, target string, data JSON) (any, error) {
				return projects.Update(ctx, target, data)
			},
			remove: func(ctx context.Context, target string) (any, error) { return projects.Delete(ctx, target) },
			get:    func(ctx context.Context, target string) (any, error) { return projects.Get(ctx, target) },
		}, nil
	case ResourceTimeEntry:
		entries := b.client.TimeEntries()

		return &crudFuncs{
			create: func(ctx context.Context, data JSON) (any, error) {
				reference, id := timeEntryReference(data)

				hours, ok := FloatValue(data["hours"])
				if !ok {
					return nil, NewValidationError(ErrHoursRequired, fmt.Sprintf("invalid hours %v", data["hours"]))
				}

				return entries.Create(ctx, reference, id, hours, data)
			},
			update: withIntTarget(func(ctx context.Context, id int, data JSON) (any, error) {
				return entries.Update(ctx, id, data)
			}),
			remove: withIntID(func(ctx context.Context, id int) (any, error) { return entries.Delete(ctx, id) }),
			get:    withIntID(func(ctx context.Context, id int) (any, error) { return entries.Get(ctx, id) }),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResourceType, resource)
	}
}

// timeEntryReference picks the issue or project a time entry payload names.
func timeEntryReference(data JSON) (string, int) {
	if id, ok := intValue(data["issue_id"]); ok {
		return TimeEntryOnIssue, id
	}

	if id, ok := intValue(data["project_id"]); ok {
		return TimeEntryOnProject, id
	}

	return "", 0
}

func parseTarget(target string) (int, error) {
	id, err := strconv.Atoi(target)
	if err != nil || id <= 0 {
		return 0, NewValidationError(ErrInvalidID, fmt.Sprintf("invalid target %q", target))
	}

	return id, nil
}

func withIntID(fn func(ctx context.Context, id int) (any, error)) func(context.Context, string) (any, error) {
	return func(ctx context.Context, target string) (any, error) {
		id, err := parseTarget(target)
		if err != nil {
			return nil, err
		}

		return fn(ctx, id)
	}
}

func withIntTarget(fn func(ctx context.Context, id int, data JSON) (any, error)) func(context.Context, string, JSON) (any, error) {
	return func(ctx context.Context, target string, data JSON) (any, error) {
		id, err := parseTarget(target)
		if err != nil {
			return nil, err
		}

		return fn(ctx, id, data)
	}
}
