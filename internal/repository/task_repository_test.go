package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

func TestNextPosition_FirstTaskInGroup(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	projectID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE project_id = $1 AND status = $2",
	)).
		WithArgs(projectID, "todo").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(0))

	next, err := repo.NextPosition(projectID, "todo")
	require.NoError(t, err)
	require.Equal(t, 0, next)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNextPosition_AppendsAfterMax(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	projectID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE project_id = $1 AND status = $2",
	)).
		WithArgs(projectID, "doing").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))

	next, err := repo.NextPosition(projectID, "doing")
	require.NoError(t, err)
	require.Equal(t, 3, next)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectSlugExists_ScopedToOrganization(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)
	orgID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT EXISTS(SELECT 1 FROM projects WHERE organization_id = $1 AND slug = $2)",
	)).
		WithArgs(orgID, "website").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.SlugExists(orgID, "website")
	require.NoError(t, err)
	require.True(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationSlugExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT EXISTS(SELECT 1 FROM organizations WHERE slug = $1)",
	)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := repo.SlugExists("acme")
	require.NoError(t, err)
	require.False(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}
