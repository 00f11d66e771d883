package domain

// SubjectType differentiates the callers a token can be issued to.
type SubjectType string

const (
	SubjectTypeOperator SubjectType = "OPERATOR"
	SubjectTypeService  SubjectType = "SERVICE"
)

// Valid reports whether the subject type is one the API issues.
func (s SubjectType) Valid() bool {
	return s == SubjectTypeOperator || s == SubjectTypeService
}
