package serv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StreamGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fakechat",
		Name:      "stream_total",
		Help:      "open event streams",
	}, []string{"service_id"})

	PushCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fakechat",
		Name:      "event_pushed_total",
		Help:      "events pushed to streams",
	}, []string{"service_id", "type"})

	LoginCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fakechat",
		Name:      "login_total",
		Help:      "login attempts by result",
	}, []string{"service_id", "result"})

	MessageCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fakechat",
		Name:      "message_sent_total",
		Help:      "messages accepted by kind",
	}, []string{"service_id", "kind"})
)
