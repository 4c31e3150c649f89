package orchestrator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shouni/go-fusion-kit/pkg/domain"
)

// Metrics はスロットの結果と外部呼び出しの所要時間を記録します。nil でも安全に呼び出せます。
type Metrics struct {
	slotOutcomes *prometheus.CounterVec
	callDuration prometheus.Histogram
	retries      *prometheus.CounterVec
	orphaned     prometheus.Counter
}

// NewMetrics は reg にメトリクスを登録します。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		slotOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fusion_slot_outcomes_total",
			Help: "Total number of settled generation slots by outcome and error kind.",
		}, []string{"scenario", "outcome", "kind"}),
		callDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fusion_generation_call_duration_seconds",
			Help:    "Duration of individual image model calls.",
			Buckets: []float64{1, 5, 10, 20, 30, 60, 120, 180},
		}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fusion_slot_retries_total",
			Help: "Total number of slot retries by trigger (manual or auto).",
		}, []string{"trigger"}),
		orphaned: f.NewCounter(prometheus.CounterOpts{
			Name: "fusion_orphaned_results_total",
			Help: "Results that arrived after their batch had been discarded.",
		}),
	}
}

func (m *Metrics) observeSettled(scenario string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.slotOutcomes.WithLabelValues(scenario, string(domain.StatusError), string(domain.KindOf(err))).Inc()
		return
	}
	m.slotOutcomes.WithLabelValues(scenario, string(domain.StatusSuccess), "").Inc()
}

func (m *Metrics) observeCall(d time.Duration) {
	if m == nil {
		return
	}
	m.callDuration.Observe(d.Seconds())
}

func (m *Metrics) observeRetry(trigger string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(trigger).Inc()
}

func (m *Metrics) observeOrphan() {
	if m == nil {
		return
	}
	m.orphaned.Inc()
}
