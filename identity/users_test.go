package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "violet-Harbor-cactus-1987-drift"

func TestNewUser(t *testing.T) {
	t.Run("Creates user with hashed password", func(t *testing.T) {
		id := uuid.New()
		user, err := NewUser(UserConfig{ID: id, Username: "roller_1", PlainPassword: strongPassword})
		require.NoError(t, err)

		assert.Equal(t, id, user.ID)
		assert.Equal(t, "roller_1", user.Username)
		assert.NotEqual(t, strongPassword, user.PasswordHash)
		assert.Zero(t, user.BestLevel)
		assert.True(t, user.VerifyPassword(strongPassword))
		assert.False(t, user.VerifyPassword("violet-harbor"))
	})

	t.Run("Rejects bad usernames", func(t *testing.T) {
		cases := map[string]error{
			"ab":                          ErrUsernameTooShort,
			"a_very_long_username_indeed": ErrUsernameTooLong,
			"no spaces":                   ErrUsernameFormat,
			"dash-name":                   ErrUsernameFormat,
		}
		for name, want := range cases {
			_, err := NewUser(UserConfig{ID: uuid.New(), Username: name, PlainPassword: strongPassword})
			assert.ErrorIs(t, err, want, name)
		}
	})

	t.Run("Rejects weak password", func(t *testing.T) {
		_, err := NewUser(UserConfig{ID: uuid.New(), Username: "roller", PlainPassword: "password"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestRecordLevel(t *testing.T) {
	user := &User{BestLevel: 2}

	assert.False(t, user.RecordLevel(1))
	assert.False(t, user.RecordLevel(2))
	assert.True(t, user.RecordLevel(3))
	assert.Equal(t, 3, user.BestLevel)
}
