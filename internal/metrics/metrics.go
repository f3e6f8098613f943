package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 应用级指标；nil 接收者上的方法都是空操作。
type Metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	logins       *prometheus.CounterVec
	flagChanges  *prometheus.CounterVec
	imageActions *prometheus.CounterVec
}

// New 在 reg 上注册全部指标；reg 为 nil 时返回不采集的实例。
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stored_image_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stored_image_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stored_image_login_attempts_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		flagChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stored_image_flag_changes_total",
			Help: "Account flag mutations by flag and operation.",
		}, []string{"flag", "op"}),
		imageActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stored_image_image_actions_total",
			Help: "Image moderation actions by kind.",
		}, []string{"action"}),
	}
	reg.MustRegister(m.requests, m.duration, m.logins, m.flagChanges, m.imageActions)
	return m
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Login result: success, not_found, banned, suspended, error
func (m *Metrics) Login(result string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(result)).Inc()
}

func (m *Metrics) FlagChanged(flag, op string) {
	if m == nil || m.flagChanges == nil {
		return
	}
	m.flagChanges.WithLabelValues(normalizeLabel(flag), op).Inc()
}

func (m *Metrics) ImageAction(action string) {
	if m == nil || m.imageActions == nil {
		return
	}
	m.imageActions.WithLabelValues(normalizeLabel(action)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
