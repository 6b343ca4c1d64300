package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Provider struct {
	success prometheus.Counter
	fails   prometheus.Counter
	io      prometheus.Observer
}

func (p *Provider) SuccessInc() {
	p.success.Inc()
}

func (p *Provider) FailsInc() {
	p.fails.Inc()
}

// NewIOTimer starts an I/O timer. The returned cancel function observes the
// elapsed time.
func (p *Provider) NewIOTimer() (cancel func()) {
	start := time.Now()
	return func() {
		p.io.Observe(float64(time.Since(start).Nanoseconds()))
	}
}
