package gorm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/connector"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
)

func newMockRepositories(t *testing.T, opts ...Option) (*Repositories, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return New(gdb, opts...), mock
}

func TestCascadeFailureKeepsSecurityQuestion(t *testing.T) {
	repos, mock := newMockRepositories(t)
	lost := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "security_questions" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content"}).AddRow("q1", "color?"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE security_question_id = \$1`).
		WithArgs("q1").
		WillReturnError(lost)
	mock.ExpectRollback()

	err := repos.SecurityQuestions.DeleteByKey(context.Background(), "q1")

	var cerr *cascade.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "security question", cerr.Root)
	assert.Equal(t, "users", cerr.Relationship)
	assert.ErrorIs(t, err, lost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCascadeFailureKeepsApplication(t *testing.T) {
	repos, mock := newMockRepositories(t)
	lost := errors.New("deadlock detected")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "privileges" WHERE application_id = \$1`).
		WithArgs("A").
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_id"}).AddRow("P", "A"))
	mock.ExpectQuery(`FROM "roles" JOIN role_privileges`).
		WithArgs("P").
		WillReturnError(lost)
	mock.ExpectRollback()

	err := repos.Applications.Delete(context.Background(), &model.Application{ID: "A"})

	var cerr *cascade.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "roles", cerr.Relationship)
	assert.ErrorIs(t, err, lost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCascadeFailureKeepsAuthModule(t *testing.T) {
	repos, mock := newMockRepositories(t)
	lost := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "policies" WHERE kind = \$1`).
		WithArgs(model.PolicyAuth).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "conf"}).
			AddRow("policy1", "AUTH", `{"type":"default","authModules":["m1","m2"]}`))
	mock.ExpectExec(`UPDATE "policies" SET`).
		WillReturnError(lost)
	mock.ExpectRollback()

	err := repos.AuthModules.Delete(context.Background(), &model.AuthModule{ID: "m1"})

	var cerr *cascade.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "auth policies", cerr.Relationship)
	assert.ErrorIs(t, err, lost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFailedConnectorDeleteKeepsRegistry(t *testing.T) {
	registry, err := connector.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, registry.Register(&model.ExternalResource{ID: "ldap", ConnectorID: "conn1"}))
	repos, mock := newMockRepositories(t, WithRegistry(registry))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "external_resources" WHERE connector_id = \$1`).
		WithArgs("conn1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "connector_id"}))
	mock.ExpectExec(`DELETE FROM "conn_instances" WHERE "conn_instances"."id" = \$1`).
		WithArgs("conn1").
		WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err = repos.Connectors.Delete(context.Background(), &model.ConnInstance{ID: "conn1"})

	var cerr *cascade.Error
	require.ErrorAs(t, err, &cerr)
	assert.Empty(t, cerr.Relationship)
	assert.Equal(t, 1, registry.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFailedAttrDeleteLeavesOwnerDetached(t *testing.T) {
	repos, mock := newMockRepositories(t)

	group := &model.Group{ID: "g1", Name: "root"}
	icon := &model.GPlainAttr{PlainAttrBase: model.PlainAttrBase{ID: 1, SchemaKey: "icon"}}
	title := &model.GPlainAttr{PlainAttrBase: model.PlainAttrBase{ID: 2, SchemaKey: "title"}}
	require.NoError(t, group.AddPlainAttr(icon))
	require.NoError(t, group.AddPlainAttr(title))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "g_plain_attrs"`).
		WillReturnError(errors.New("serialization failure"))
	mock.ExpectRollback()

	err := repos.PlainAttrs.Delete(context.Background(), icon)
	require.Error(t, err)

	// The row survives the rollback but the loaded owner no longer holds it.
	require.Len(t, group.PlainAttrs(), 1)
	assert.Equal(t, uint64(2), group.PlainAttrs()[0].GetKey())
	assert.NoError(t, mock.ExpectationsWereMet())
}
