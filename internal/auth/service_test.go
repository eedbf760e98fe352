package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/user"
)

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	stored := &user.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hash}

	type testCase struct {
		name      string
		password  string
		setupMock func(m *auth.MockUsers)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			password: "correct horse",
			setupMock: func(m *auth.MockUsers) {
				m.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "battery staple",
			setupMock: func(m *auth.MockUsers) {
				m.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "UnknownUser",
			password: "correct horse",
			setupMock: func(m *auth.MockUsers) {
				m.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, user.ErrNotFound)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "StoreError",
			password: "correct horse",
			setupMock: func(m *auth.MockUsers) {
				m.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := auth.NewMockUsers(ctrl)
			tt.setupMock(users)

			tokens := auth.NewTokens("secret", "expense-tracking", time.Hour)
			session, err := auth.NewService(users, tokens).Login(context.Background(), "jane@example.com", tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, session)

				if errors.Is(tt.wantErr, auth.ErrInvalidCredentials) {
					assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
				} else {
					assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored, session.User)

			claims, err := tokens.Parse(session.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, stored.ID.String(), claims.Subject)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := auth.NewTokens("secret", "expense-tracking", time.Hour)
	known := &user.User{ID: uuid.New()}
	gone := &user.User{ID: uuid.New()}

	users := auth.NewMockUsers(ctrl)
	users.EXPECT().Get(gomock.Any(), known.ID).Return(known, nil)
	users.EXPECT().Get(gomock.Any(), gone.ID).Return(nil, user.ErrNotFound)

	svc := auth.NewService(users, tokens)

	token, _, err := tokens.Issue(known)
	require.NoError(t, err)

	got, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, known, got)

	token, _, err = tokens.Issue(gone)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_Register_HashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := auth.NewMockUsers(ctrl)
	users.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p user.CreateParams) (*user.User, error) {
			assert.NotEqual(t, "s3cret-pass", p.PasswordHash)
			assert.True(t, auth.CheckPassword(p.PasswordHash, "s3cret-pass"))
			return &user.User{ID: uuid.New(), Email: p.Email, PasswordHash: p.PasswordHash}, nil
		})

	_, err := auth.NewService(users, auth.NewTokens("s", "i", time.Hour)).Register(context.Background(), auth.RegisterParams{
		Email:    "new@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
}
