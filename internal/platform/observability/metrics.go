package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_llm_requests_total",
		Help: "The total number of LLM provider requests",
	}, []string{"provider", "task", "status"})

	LLMTokensPrompt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_llm_prompt_tokens_total",
		Help: "The total number of prompt tokens reported by providers",
	}, []string{"provider", "task"})

	LLMTokensCompletion = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_llm_completion_tokens_total",
		Help: "The total number of completion tokens reported by providers",
	}, []string{"provider", "task"})

	ParseOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_parse_outcomes_total",
		Help: "Parse pipeline outcomes by recovery tier",
	}, []string{"task", "tier"})

	MessagesFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_messages_filtered_total",
		Help: "Messages dropped by the quality filter by reason",
	}, []string{"task", "reason"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "insight_analysis_duration_seconds",
		Help:    "Duration of one analysis task end to end",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"task"})
)
