package metric

import "github.com/prometheus/client_golang/prometheus"

type Service struct {
	success *prometheus.CounterVec
	fails   *prometheus.CounterVec
	io      *prometheus.HistogramVec

	opsRecv *prometheus.CounterVec
}

func New() *Service {

	m := &Service{
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topic",
			Name:      "processed_ops",
			Help:      "Batch operations processed by worker"},
			[]string{"operation", "projectId"}),
		fails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topic",
			Name:      "failed_ops",
			Help:      "Failed batch operations"},
			[]string{"operation", "projectId"}),
		io: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "topic",
			Name:      "io",
			Help:      "Time spent in I/O with the subscription server (in nanoseconds)"},
			[]string{"operation"}),
		opsRecv: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topic",
			Name:      "ops_recv",
			Help:      "Operations recv"},
			[]string{"addr"}),
	}

	for _, c := range []prometheus.Collector{
		m.success,
		m.fails,
		m.io,
		m.opsRecv,
	} {
		if err := prometheus.Register(c); err != nil {
			switch err.(type) {
			case prometheus.AlreadyRegisteredError:
				break
			default:
				panic(err)
			}
		}
	}

	return m
}

func (m *Service) GetOperationMetrics(operation, projectId string) (*Provider, error) {

	var err error

	p := &Provider{}
	p.fails, err = m.fails.GetMetricWith(prometheus.Labels{"operation": operation, "projectId": projectId})
	if err != nil {
		return nil, err
	}

	p.success, err = m.success.GetMetricWith(prometheus.Labels{"operation": operation, "projectId": projectId})
	if err != nil {
		return nil, err
	}

	p.io, err = m.io.GetMetricWith(prometheus.Labels{"operation": operation})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (m *Service) GetPeerMetrics(addr string) (*Peer, error) {

	opsRecv, err := m.opsRecv.GetMetricWith(prometheus.Labels{"addr": addr})
	if err != nil {
		return nil, err
	}

	return &Peer{opsRecv: opsRecv}, nil
}
