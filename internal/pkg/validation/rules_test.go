package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title  string   `validate:"notblank"`
	Link   string   `validate:"omitempty,weburl"`
	Skills []string `validate:"omitempty,dive,skill"`
}

func TestRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(sample{Title: "Solar Bikes", Link: "https://example.com/cv.pdf", Skills: []string{"Go", "C++", "Node.js"}}))

	tests := []struct {
		name  string
		input sample
		tag   string
	}{
		{"blank title", sample{Title: "   "}, TagNotBlank},
		{"non-web link", sample{Title: "x", Link: "ftp://example.com/cv.pdf"}, TagWebURL},
		{"relative link", sample{Title: "x", Link: "/cv.pdf"}, TagWebURL},
		{"bad skill", sample{Title: "x", Skills: []string{"<script>"}}, TagSkill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.tag, verrs[0].Tag())
		})
	}
}
