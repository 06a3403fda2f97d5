package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/todos/pkg/types"
)

func TestChecker_Login(t *testing.T) {
	checker := NewChecker(types.Credentials{})

	tests := []struct {
		name      string
		username  string
		password  string
		wantToken string
		wantErr   error
	}{
		{name: "valid pair", username: "testuser", password: "password", wantToken: types.DefaultToken},
		{name: "wrong password", username: "testuser", password: "nope", wantErr: types.ErrInvalidCredentials},
		{name: "wrong user", username: "wrong", password: "wrong", wantErr: types.ErrInvalidCredentials},
		{name: "missing username", password: "password", wantErr: types.ErrCredentialsRequired},
		{name: "missing password", username: "testuser", wantErr: types.ErrCredentialsRequired},
		{name: "case matters", username: "TestUser", password: "password", wantErr: types.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := checker.Login(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestChecker_ConfiguredPair(t *testing.T) {
	checker := NewChecker(types.Credentials{Username: "alice", Password: "s3cret", Token: "tok"})

	token, err := checker.Login("alice", "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, "tok", token)

	_, err = checker.Login("testuser", "password")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
}
