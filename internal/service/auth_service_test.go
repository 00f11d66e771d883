package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/support-agent/internal/auth"
	"github.com/spec-kit/support-agent/internal/config"
	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/internal/service"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

var _ = Describe("AuthService", func() {
	var svc *service.AuthService

	BeforeEach(func() {
		hash, err := auth.HashPassword("s3cret", 4)
		Expect(err).NotTo(HaveOccurred())
		svc = service.NewAuthService(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, OperatorPasswordHash: hash})
	})

	It("issues operator tokens for the right password", func() {
		token, exp, err := svc.LoginOperator(context.Background(), "alice", "s3cret")
		Expect(err).NotTo(HaveOccurred())
		Expect(exp).NotTo(BeZero())

		claims, err := svc.TokenManager().ParseToken(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.Subject).To(Equal("alice"))
		Expect(claims.SubjectType).To(Equal(domain.SubjectTypeOperator))
	})

	It("rejects a wrong password", func() {
		_, _, err := svc.LoginOperator(context.Background(), "alice", "nope")
		Expect(errorutil.ToDomainError(err).Code).To(Equal("UNAUTHORIZED"))
	})

	It("requires credentials", func() {
		_, _, err := svc.LoginOperator(context.Background(), " ", "")
		Expect(errorutil.IsValidation(err)).To(BeTrue())
	})

	It("is disabled without a configured hash", func() {
		disabled := service.NewAuthService(config.AuthConfig{JWTSecret: "test"})
		_, _, err := disabled.LoginOperator(context.Background(), "alice", "s3cret")
		Expect(errorutil.ToDomainError(err).Code).To(Equal("FORBIDDEN"))
	})
})
