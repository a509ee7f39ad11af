package storage

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/practice-sem-2/messenger-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PostgresTestSuite struct {
	suite.Suite
	db *sqlx.DB
	m  *migrate.Migrate
}

func (s *PostgresTestSuite) SetupSuite() {
	var err error
	viper.AutomaticEnv()
	dbDsn := viper.GetString("DB_DSN")
	migrationsDsn := viper.GetString("MIGRATIONS_DSN")
	migrationsDir := viper.GetString("MIGRATIONS_DIR")

	if dbDsn == "" || migrationsDsn == "" || migrationsDir == "" {
		s.T().Skip("DB_DSN, MIGRATIONS_DSN and MIGRATIONS_DIR must be defined")
	}

	s.db, err = sqlx.Connect("pgx", dbDsn)
	require.NoError(s.T(), err, "failed to connect to database")

	s.m, err = migrate.New(migrationsDir, migrationsDsn)

	require.NoError(s.T(), err, "failed to open migrations")

	err = s.m.Up()
	if err != migrate.ErrNoChange {
		require.NoError(s.T(), err, "failed to migrate database")
	}
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.m != nil {
		_ = s.m.Down()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *PostgresTestSuite) TearDownTest() {
	_, err := s.db.Exec("TRUNCATE connections, messages, applications, invitations, user_groups, chat_pairs, groups, users")
	require.NoError(s.T(), err, "can't teardown test")
}

// putUser inserts a user with fake email and returns it.
func (s *PostgresTestSuite) putUser() *models.User {
	u := &models.User{
		UserID:    uuid.New(),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
	err := NewUsersStorage(s.db).PutUser(context.Background(), u)
	require.NoError(s.T(), err, "fixture user should be inserted")
	return u
}

func (s *PostgresTestSuite) putGroup(name string, t models.GroupType, members ...uuid.UUID) *models.Group {
	g := &models.Group{
		GroupID:      uuid.New(),
		Type:         t,
		CreationDate: time.Now().UTC(),
	}
	if t != models.GroupTypeChat {
		g.Name = &name
	}

	store := NewGroupsStorage(s.db)
	require.NoError(s.T(), store.CreateGroup(context.Background(), g), "fixture group should be inserted")

	for i, id := range members {
		err := store.AddMembership(context.Background(), &models.Membership{
			UserID:    id,
			GroupID:   g.GroupID,
			IsCreator: i == 0,
			AddDate:   time.Now().UTC(),
		})
		require.NoError(s.T(), err, "fixture membership should be inserted")
	}
	return g
}
