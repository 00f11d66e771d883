package errorutil_test

import (
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spec-kit/support-agent/pkg/errorutil"
)

var _ = Describe("ToDomainError", func() {
	It("returns nil for nil", func() {
		Expect(errorutil.ToDomainError(nil)).To(BeNil())
	})

	It("keeps domain errors through wrapping", func() {
		err := fmt.Errorf("create ticket: %w", errorutil.NewValidationError("title required", nil))
		de := errorutil.ToDomainError(err)
		Expect(de.Code).To(Equal("VALIDATION_FAILED"))
		Expect(de.HTTPStatus).To(Equal(http.StatusBadRequest))
		Expect(errorutil.IsValidation(err)).To(BeTrue())
	})

	It("maps bare validation sentinels", func() {
		de := errorutil.ToDomainError(fmt.Errorf("bad input: %w", errorutil.ErrValidation))
		Expect(de.Code).To(Equal("VALIDATION_FAILED"))
	})

	It("hides unknown errors behind an internal error", func() {
		de := errorutil.ToDomainError(errors.New("boom"))
		Expect(de.Code).To(Equal("INTERNAL_ERROR"))
		Expect(de.Message).To(Equal("internal server error"))
		Expect(de.HTTPStatus).To(Equal(http.StatusInternalServerError))
	})

	It("fills not-found details", func() {
		de := errorutil.ToDomainError(errorutil.NewNotFound("ticket", nil))
		Expect(de.Message).To(Equal("ticket not found"))
		Expect(de.Details).NotTo(BeNil())
	})
})
