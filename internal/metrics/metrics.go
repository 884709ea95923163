package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes the auth core's operational counters.
type Collector struct {
	sessionsIssued *prometheus.CounterVec
	sessionChecks  *prometheus.CounterVec
	logouts        prometheus.Counter
	sessionsSwept  prometheus.Counter
	oauthExchange  prometheus.Histogram
}

// NewCollector registers the auth metrics on reg and returns the
// collector used by handlers and the sweeper.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sessionsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_sessions_issued_total",
			Help: "Sessions minted, labeled by login method.",
		}, []string{"method"}),
		sessionChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_session_checks_total",
			Help: "Session validations, labeled by outcome.",
		}, []string{"result"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_logouts_total",
			Help: "Logout requests acknowledged.",
		}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_sessions_swept_total",
			Help: "Expired session rows removed by the sweeper.",
		}),
		oauthExchange: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auth_oauth_exchange_seconds",
			Help:    "Latency of the OAuth code exchange round trip.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.sessionsIssued,
		c.sessionChecks,
		c.logouts,
		c.sessionsSwept,
		c.oauthExchange,
	)

	return c
}

func (c *Collector) RecordSessionIssued(method string) {
	c.sessionsIssued.WithLabelValues(method).Inc()
}

func (c *Collector) RecordSessionCheck(result string) {
	c.sessionChecks.WithLabelValues(result).Inc()
}

func (c *Collector) RecordLogout() {
	c.logouts.Inc()
}

func (c *Collector) RecordSessionsSwept(count int64) {
	c.sessionsSwept.Add(float64(count))
}

func (c *Collector) RecordOAuthExchange(d time.Duration) {
	c.oauthExchange.Observe(d.Seconds())
}
