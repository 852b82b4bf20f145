package service

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"

	"github.com/dialogs/dialog-topic-service/pkg/metric"
	"github.com/dialogs/dialog-topic-service/pkg/provider/topic"
	"github.com/dialogs/dialog-topic-service/pkg/worker"
	workertopic "github.com/dialogs/dialog-topic-service/pkg/worker/topic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	errNoWorkers        = errors.New("empty workers list")
	errUnknownProjectID = errors.New("unknown project ID")
)

type impl struct {
	metric  *metric.Service
	workers map[string]*workertopic.Worker
	logger  *zap.Logger
}

func newImpl(cfg *Config, logger *zap.Logger) (*impl, error) {

	svcMetric := metric.New()

	workers := make(map[string]*workertopic.Worker, len(cfg.Topic))
	for _, item := range cfg.Topic {
		w, err := workertopic.New(item, logger, svcMetric)
		if err != nil {
			return nil, err
		}

		if _, ok := workers[w.ProjectID()]; ok {
			return nil, errors.New("duplicate project ID: " + w.ProjectID())
		}

		workers[w.ProjectID()] = w
	}

	if len(workers) == 0 {
		return nil, errNoWorkers
	}

	return &impl{
		metric:  svcMetric,
		workers: workers,
		logger:  logger,
	}, nil
}

type operationRequest struct {
	ProjectID     string   `json:"project_id"`
	Topic         string   `json:"topic"`
	Tokens        []string `json:"tokens"`
	CorrelationID string   `json:"correlation_id,omitempty"`
}

type operationError struct {
	Error string `json:"error"`
}

func (i *impl) Subscribe(w http.ResponseWriter, r *http.Request) {
	i.handle(w, r, worker.OpSubscribe)
}

func (i *impl) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	i.handle(w, r, worker.OpUnsubscribe)
}

func (i *impl) handle(w http.ResponseWriter, r *http.Request, op worker.Operation) {

	l := i.logger.With(zap.String("operation", op.String()))

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	i.incPeerMetric(r.RemoteAddr)

	req := &operationRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	wrk, ok := i.workers[req.ProjectID]
	if !ok {
		l.Error(errUnknownProjectID.Error(), zap.String("project", req.ProjectID))
		writeError(w, http.StatusNotFound, errUnknownProjectID.Error())
		return
	}

	res := wrk.Do(r.Context(), &worker.Request{
		Operation:     op,
		Topic:         req.Topic,
		Devices:       req.Tokens,
		CorrelationID: req.CorrelationID,
	})

	if res.Error != nil {
		writeError(w, statusCodeByError(res.Error), res.Error.Error())
		return
	}

	writeJSON(w, http.StatusOK, res.Report)
}

func (i *impl) incPeerMetric(remoteAddr string) {

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	peer, err := i.metric.GetPeerMetrics(host)
	if err != nil {
		i.logger.Error("peer metric", zap.Error(err))
		return
	}

	peer.Inc()
}

func statusCodeByError(err error) int {

	switch e := err.(type) {
	case *topic.ServerError:
		return http.StatusBadGateway
	case *topic.TransportError:
		cause := e.Err()
		if urlErr, ok := cause.(*url.Error); ok {
			if urlErr.Timeout() {
				return http.StatusGatewayTimeout
			}
			cause = urlErr.Err
		}
		if cause == context.Canceled || cause == context.DeadlineExceeded {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case *topic.DecodeError:
		return http.StatusBadGateway
	}

	switch err {
	case worker.ErrEmptyTopic, worker.ErrUnknownOperation:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, &operationError{Error: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
