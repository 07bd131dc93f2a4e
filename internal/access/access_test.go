package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodops-assistant/internal/models"
)

func TestRoleChecker_CanAccessSection(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.UserInfo
		section  int
		expected bool
	}{
		{
			name:     "admin sees every section",
			user:     &models.UserInfo{ID: "u1", Role: "admin"},
			section:  7,
			expected: true,
		},
		{
			name:     "manager sees every section",
			user:     &models.UserInfo{ID: "u2", Role: "manager"},
			section:  2,
			expected: true,
		},
		{
			name:     "operator sees assigned section",
			user:     &models.UserInfo{ID: "u3", Role: "operator", Sections: []int{1, 3}},
			section:  1,
			expected: true,
		},
		{
			name:     "operator denied outside assignment",
			user:     &models.UserInfo{ID: "u3", Role: "operator", Sections: []int{1, 3}},
			section:  2,
			expected: false,
		},
		{
			name:     "no sections assigned",
			user:     &models.UserInfo{ID: "u4", Role: "operator"},
			section:  1,
			expected: false,
		},
		{
			name:     "nil user is denied",
			user:     nil,
			section:  1,
			expected: false,
		},
	}

	checker := NewRoleChecker()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checker.CanAccessSection(tt.user, tt.section))
		})
	}
}
