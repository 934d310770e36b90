package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes recorded in QuizGenerations.
const (
	OutcomeGenerated = "generated"
	OutcomeEmpty     = "empty"
	OutcomeFailed    = "failed"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 15, 30},
		},
		[]string{"method", "endpoint"},
	)

	QuizGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_generations_total",
			Help: "Quiz generation requests by outcome",
		},
		[]string{"outcome"},
	)

	// DroppedBlocks counts question blocks the parser discarded. Users are
	// not told about these, so this is the only place the loss shows up.
	DroppedBlocks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_blocks_dropped_total",
			Help: "Malformed question blocks dropped while parsing model output",
		},
	)

	UnlistedAnswers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_unlisted_answers_total",
			Help: "Parsed questions whose correct answer is not one of the options",
		},
	)

	Answers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_answers_total",
			Help: "Submitted answers by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			QuizGenerations,
			DroppedBlocks,
			UnlistedAnswers,
			Answers,
		)
	})
}

// RecordAnswer increments the answer counter for one submission.
func RecordAnswer(correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	Answers.WithLabelValues(result).Inc()
}

// MetricsMiddleware records request counts and latency per route. Errors
// from the chain are rendered by the app's error handler first so the
// recorded status is the one the client receives.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		endpoint := c.Route().Path

		RequestCounter.WithLabelValues(c.Method(), endpoint, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())
		return nil
	}
}

func PrometheusHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
