package worker

import (
	"context"
	"runtime"

	"github.com/dialogs/dialog-topic-service/pkg/metric"
	"github.com/dialogs/dialog-topic-service/pkg/provider/topic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrEmptyTopic       = errors.New("empty topic name")
	ErrUnknownOperation = errors.New("unknown topic operation")
)

// FnPerform sends one batch operation to the subscription server
type FnPerform func(ctx context.Context, op Operation, topicName string, devices []string) (*topic.Response, error)

type Worker struct {
	projectID string
	nopMode   bool
	threads   chan struct{}
	logger    *zap.Logger
	metrics   map[Operation]*metric.Provider
	fnPerform FnPerform
}

func New(
	cfg *Config,
	logger *zap.Logger,
	svcMetric *metric.Service,
	fnPerform FnPerform,
) (*Worker, error) {

	countThreads := cfg.CountThreads
	if countThreads <= 0 {
		countThreads = runtime.NumCPU()
	}

	threads := make(chan struct{}, countThreads)
	for i := 0; i < countThreads; i++ {
		threads <- struct{}{}
	}

	metrics := make(map[Operation]*metric.Provider, 2)
	for _, op := range []Operation{OpSubscribe, OpUnsubscribe} {
		m, err := svcMetric.GetOperationMetrics(op.String(), cfg.ProjectID)
		if err != nil {
			return nil, err
		}

		metrics[op] = m
	}

	return &Worker{
		projectID: cfg.ProjectID,
		nopMode:   cfg.NopMode,
		threads:   threads,
		logger:    logger.With(zap.String("project", cfg.ProjectID)),
		metrics:   metrics,
		fnPerform: fnPerform,
	}, nil
}

func (w *Worker) ProjectID() string {
	return w.projectID
}

func (w *Worker) NoOpMode() bool {
	return w.nopMode
}

// Do performs one batch operation.
// The count of parallel operations is limited by the worker config
func (w *Worker) Do(ctx context.Context, req *Request) *Response {

	reserved := <-w.threads
	defer func() { w.threads <- reserved }()

	resp := &Response{
		ProjectID: w.projectID,
		Operation: req.Operation,
	}

	l := w.logger.With(
		zap.String("operation", req.Operation.String()),
		zap.String("topic", req.Topic),
		zap.Int("devices", len(req.Devices)),
		zap.String("id", req.CorrelationID))

	m, ok := w.metrics[req.Operation]
	if !ok {
		l.Error(ErrUnknownOperation.Error())
		resp.Error = ErrUnknownOperation
		return resp
	}

	if req.Topic == "" {
		l.Error(ErrEmptyTopic.Error())
		resp.Error = ErrEmptyTopic
		return resp
	}

	if w.nopMode {
		l.Info("nop mode", zap.Strings("token hashes", TokenHashes(req.Devices)))

		resp.Report = &topic.Response{
			SuccessCount: len(req.Devices),
			Errors:       make([]*topic.ErrorInfo, 0),
		}
		return resp
	}

	timerCancel := m.NewIOTimer()
	report, err := w.fnPerform(ctx, req.Operation, req.Topic, req.Devices)
	timerCancel()

	if err != nil {
		m.FailsInc()
		l.Error("failed to perform operation", zap.Error(err))
		resp.Error = err
		return resp
	}

	m.SuccessInc()
	l.Info("operation complete",
		zap.Int("success", report.SuccessCount),
		zap.Int("failure", report.FailureCount()))

	resp.Report = report

	return resp
}
