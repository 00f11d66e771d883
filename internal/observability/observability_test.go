package observability_test

import (
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/observability"
)

var _ = Describe("Metrics", func() {
	It("counts requests, errors, tickets and tool calls", func() {
		m := observability.NewMetrics()
		m.RecordRequest("/v1/assist", "POST", 200, time.Millisecond)
		m.RecordRequest("/v1/assist", "POST", 200, time.Millisecond)
		m.RecordError("/v1/tickets", "POST", "VALIDATION_FAILED")
		m.RecordTicket(domain.PriorityHigh)
		m.RecordToolCall("searchDocs")

		snap := m.Snapshot()
		Expect(snap.Requests).To(HaveKeyWithValue("/v1/assist|POST|200", int64(2)))
		Expect(snap.Errors).To(HaveKeyWithValue("/v1/tickets|POST|VALIDATION_FAILED", int64(1)))
		Expect(snap.Tickets).To(HaveKeyWithValue(domain.PriorityHigh, int64(1)))
		Expect(snap.ToolCalls).To(HaveKeyWithValue("searchDocs", int64(1)))
	})

	It("returns copies", func() {
		m := observability.NewMetrics()
		m.RecordToolCall("createTicket")
		snap := m.Snapshot()
		snap.ToolCalls["createTicket"] = 99
		Expect(m.Snapshot().ToolCalls).To(HaveKeyWithValue("createTicket", int64(1)))
	})

	It("tolerates a nil receiver", func() {
		var m *observability.Metrics
		Expect(func() {
			m.RecordRequest("/", "GET", 200, 0)
			m.RecordError("/", "GET", "X")
			m.RecordTicket(domain.PriorityLow)
			m.RecordToolCall("x")
		}).NotTo(Panic())
		Expect(m.Snapshot().Requests).To(BeNil())
	})
})

var _ = Describe("RequestLogger", func() {
	It("logs and counts each request by route", func() {
		core, logs := observer.New(zapcore.InfoLevel)
		m := observability.NewMetrics()

		app := fiber.New()
		app.Use(observability.RequestLogger(zap.New(core), m))
		app.Get("/v1/users/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

		resp, err := app.Test(httptest.NewRequest("GET", "/v1/users/user-1", nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusTeapot))

		Expect(m.Snapshot().Requests).To(HaveKeyWithValue("/v1/users/:id|GET|418", int64(1)))
		entries := logs.FilterMessage("request").All()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].ContextMap()).To(HaveKeyWithValue("path", "/v1/users/user-1"))
	})
})

var _ = Describe("NewLogger", func() {
	It("builds a logger for a known level", func() {
		logger, err := observability.NewLogger(config.LoggerConfig{Level: "debug", Output: "stderr"})
		Expect(err).NotTo(HaveOccurred())
		Expect(logger.Core().Enabled(zapcore.DebugLevel)).To(BeTrue())
	})

	It("falls back to info for unknown levels", func() {
		logger, err := observability.NewLogger(config.LoggerConfig{Level: "chatty", Output: "stderr"})
		Expect(err).NotTo(HaveOccurred())
		Expect(logger.Core().Enabled(zapcore.DebugLevel)).To(BeFalse())
		Expect(logger.Core().Enabled(zapcore.InfoLevel)).To(BeTrue())
	})

	It("supports console output", func() {
		_, err := observability.NewLogger(config.LoggerConfig{Level: "info", Output: "stderr", Format: "console"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects unknown formats", func() {
		_, err := observability.NewLogger(config.LoggerConfig{Output: "stderr", Format: "xml"})
		Expect(err).To(MatchError(ContainSubstring("unsupported log format")))
	})
})
