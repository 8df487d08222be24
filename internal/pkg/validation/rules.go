package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom binding tags
const (
	TagNotBlank = "notblank"
	TagWebURL   = "weburl"
	TagSkill    = "skill"
)

// Validation rule patterns
var (
	// SkillPattern allows letters, digits, spaces and the usual tech punctuation (C++, C#, Node.js)
	SkillPattern = `^[\p{L}\p{N}][\p{L}\p{N} .+#/\-]*$`

	// SkillMaxLength bounds a single skill entry
	SkillMaxLength = 64
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Skill *regexp.Regexp
}{
	Skill: regexp.MustCompile(SkillPattern),
}

// NotBlank fails strings that are empty after trimming whitespace
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// WebURL accepts absolute http and https URLs with a host
func WebURL(fl validator.FieldLevel) bool {
	return IsWebURL(fl.Field().String())
}

// IsWebURL reports whether raw is an absolute http(s) URL
func IsWebURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Skill checks one profile skill entry
func Skill(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s != "" && len(s) <= SkillMaxLength && CompiledPatterns.Skill.MatchString(s)
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		TagNotBlank: NotBlank,
		TagWebURL:   WebURL,
		TagSkill:    Skill,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}
	return nil
}

// RegisterGinRules installs the custom rules on gin's default binding validator
func RegisterGinRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
