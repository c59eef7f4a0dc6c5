package domain

// AssistanceType is the closed set of events for which the association charges members.
type AssistanceType string

const (
	AssistanceBirth       AssistanceType = "BIRTH"
	AssistanceMarriage    AssistanceType = "MARRIAGE"
	AssistanceBereavement AssistanceType = "BEREAVEMENT"
	AssistanceIllness     AssistanceType = "ILLNESS"
	AssistanceOther       AssistanceType = "OTHER"
)

// FallbackAssistanceCategory is used when an assistance type has no configured category.
const FallbackAssistanceCategory = "GENERAL_ASSISTANCE"

// DefaultAssistanceCategories maps each assistance type to its charge category.
func DefaultAssistanceCategories() map[AssistanceType]string {
	return map[AssistanceType]string{
		AssistanceBirth:       "BIRTH_ASSISTANCE",
		AssistanceMarriage:    "MARRIAGE_ASSISTANCE",
		AssistanceBereavement: "BEREAVEMENT_ASSISTANCE",
		AssistanceIllness:     "ILLNESS_ASSISTANCE",
		AssistanceOther:       FallbackAssistanceCategory,
	}
}

// AssistanceCategories is the lookup table configured once at startup.
type AssistanceCategories map[AssistanceType]string

// CategoryFor returns the configured category of t, or the fallback category.
func (c AssistanceCategories) CategoryFor(t AssistanceType) string {
	if cat, ok := c[t]; ok && cat != "" {
		return cat
	}
	return FallbackAssistanceCategory
}

// IsValid reports whether t is a known assistance type.
func (t AssistanceType) IsValid() bool {
	switch t {
	case AssistanceBirth, AssistanceMarriage, AssistanceBereavement, AssistanceIllness, AssistanceOther:
		return true
	}
	return false
}
