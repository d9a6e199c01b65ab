package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
)

type contactRepositorySuite struct {
	suite.Suite

	repo port.ContactRepository
	pool *pgxpool.Pool
}

func TestContactRepositorySuite(t *testing.T) {
	suite.Run(t, new(contactRepositorySuite))
}

func (suite *contactRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewContact(suite.pool)
}

func (suite *contactRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *contactRepositorySuite) TestInsertMessage() {
	defer suite.deleteAllMessages()

	tests := []struct {
		name      string
		msg       domain.ContactMessage
		wantError string
	}{
		{
			name: "insert message: ok",
			msg:  randomContactMessage(),
		},
		{
			name: "insert message without name: ok",
			msg: domain.ContactMessage{
				Email:   gofakeit.Email(),
				Message: gofakeit.Sentence(12),
			},
		},
		{
			name: "insert message with empty email: error",
			msg: domain.ContactMessage{
				Name:    gofakeit.Name(),
				Message: gofakeit.Sentence(12),
			},
			wantError: "email is empty",
		},
		{
			name: "insert message with empty body: error",
			msg: domain.ContactMessage{
				Name:  gofakeit.Name(),
				Email: gofakeit.Email(),
			},
			wantError: "message is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			inserted, err := suite.repo.InsertMessage(ctx, tt.msg)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, inserted.ID)
			assert.False(t, inserted.ReceivedAt.IsZero())
			assert.Equal(t, tt.msg.Email, inserted.Email)
			assert.Equal(t, tt.msg.Message, inserted.Message)
		})
	}
}

func (suite *contactRepositorySuite) TestListMessages() {
	defer suite.deleteAllMessages()

	t := suite.T()
	ctx := t.Context()

	for i := 0; i < 3; i++ {
		_, err := suite.repo.InsertMessage(ctx, randomContactMessage())
		require.NoError(t, err)
	}

	messages, err := suite.repo.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	// newest first
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i-1].ReceivedAt.Before(messages[i].ReceivedAt))
	}
}

func (suite *contactRepositorySuite) deleteAllMessages() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE contact_messages CASCADE")
	suite.NoError(err)
}

func randomContactMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Message: gofakeit.Sentence(12),
	}
}
