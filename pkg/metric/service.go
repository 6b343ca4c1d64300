package metric

import "github.com/prometheus/client_golang/prometheus"

type Service struct {
	success *prometheus.CounterVec
	fails   *prometheus.CounterVec
	io      *prometheus.HistogramVec
}

func New() *Service {

	m := &Service{
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fcm",
			Name:      "requests",
			Help:      "Completed google API requests"},
			[]string{"api", "projectId"}),
		fails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fcm",
			Name:      "failed_requests",
			Help:      "Failed google API requests"},
			[]string{"api", "projectId"}),
		io: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fcm",
			Name:      "io",
			Help:      "Time spent in I/O with the google API endpoint (in nanoseconds)"},
			[]string{"api"}),
	}

	for _, c := range []prometheus.Collector{
		m.success,
		m.fails,
		m.io,
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

func (m *Service) GetAPIMetrics(api, projectID string) (*Provider, error) {

	var err error

	p := &Provider{}
	p.fails, err = m.fails.GetMetricWith(prometheus.Labels{"api": api, "projectId": projectID})
	if err != nil {
		return nil, err
	}

	p.success, err = m.success.GetMetricWith(prometheus.Labels{"api": api, "projectId": projectID})
	if err != nil {
		return nil, err
	}

	p.io, err = m.io.GetMetricWith(prometheus.Labels{"api": api})
	if err != nil {
		return nil, err
	}

	return p, nil
}
