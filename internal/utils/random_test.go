package utils

import (
	"testing"

	"github.com/konecta-dev/wfm/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := GenerateRandomOTP()
		assert.Len(t, otp, 6)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, GenerateRandomPassword(12), 12)
	assert.Len(t, GenerateRandomPassword(1), 1)
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser("secret", "konecta.com")
	require.NoError(t, err)

	assert.NotEmpty(t, user.FullName)
	assert.Contains(t, user.Email, "@konecta.com")
	assert.Equal(t, domain.RoleAgent, user.Role)
	assert.NotEqual(t, "secret", user.PasswordHash)
}
