package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CrisisChecks 依判定來源與結果計數
	CrisisChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campus_care",
		Name:      "crisis_checks_total",
		Help:      "Crisis classifications by source and result.",
	}, []string{"source", "result"})

	// AuthEvents 依事件與結果計數，如 login/success
	AuthEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campus_care",
		Name:      "auth_events_total",
		Help:      "Authentication events by type and result.",
	}, []string{"event", "result"})
)

func init() {
	prometheus.MustRegister(CrisisChecks, AuthEvents)
}

// Result 將布林結果轉為標籤值
func Result(ok bool) string {
	if ok {
		return "positive"
	}
	return "negative"
}

// Outcome 將錯誤轉為標籤值
func Outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
