package utils

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// maxSkillLength bounds a single skill entry
const maxSkillLength = 50

// NormalizeSkills trims entries, drops empties, and de-duplicates while
// preserving the caller's order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		normalized = append(normalized, skill)
	}
	return normalized
}

// SkillName is the "skillname" binding rule: a skill is a short free-text
// label without quote characters, which used to corrupt the stored list.
func SkillName(fl validator.FieldLevel) bool {
	skill := strings.TrimSpace(fl.Field().String())
	if skill == "" || len(skill) > maxSkillLength {
		return false
	}
	return !strings.ContainsAny(skill, `"'`)
}

// RegisterValidators installs custom binding rules on gin's validator.
// Call once at startup (and in test setup).
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("skillname", SkillName)
	}
}
