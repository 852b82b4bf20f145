package topic

import (
	"context"

	"github.com/dialogs/dialog-topic-service/pkg/metric"
	"github.com/dialogs/dialog-topic-service/pkg/provider/topic"
	"github.com/dialogs/dialog-topic-service/pkg/worker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxServiceAccountSize = 1 << 20

type Worker struct {
	*worker.Worker
	provider *topic.Client
}

func New(cfg *Config, logger *zap.Logger, svcMetric *metric.Service) (*Worker, error) {

	serviceAccount, err := worker.ReadFile(cfg.ServiceAccount, maxServiceAccountSize)
	if err != nil {
		return nil, errors.Wrap(err, "service account")
	}

	opts := make([]topic.Option, 0, 1)
	if cfg.Endpoint != "" {
		opts = append(opts, topic.WithEndpoint(cfg.Endpoint))
	}

	provider, err := topic.New(serviceAccount, cfg.Timeout, opts...)
	if err != nil {
		return nil, err
	}

	w := &Worker{
		provider: provider,
	}

	w.Worker, err = worker.New(
		cfg.Config,
		logger,
		svcMetric,
		w.perform,
	)
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) perform(ctx context.Context, op worker.Operation, topicName string, devices []string) (*topic.Response, error) {

	switch op {
	case worker.OpSubscribe:
		return w.provider.Subscribe(ctx, topicName, devices)
	case worker.OpUnsubscribe:
		return w.provider.Unsubscribe(ctx, topicName, devices)
	default:
		return nil, worker.ErrUnknownOperation
	}
}
