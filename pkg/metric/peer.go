package metric

import "github.com/prometheus/client_golang/prometheus"

type Peer struct {
	opsRecv prometheus.Counter
}

func (p *Peer) Inc() {
	p.opsRecv.Inc()
}
