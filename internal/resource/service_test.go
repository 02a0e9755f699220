package resource_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/planloop/planloop-backend/internal/modules/todos"
	"github.com/planloop/planloop-backend/internal/resource"
	"github.com/planloop/planloop-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUser = "alice"

var todoDesc = resource.Descriptor{
	Name:         "todos",
	SearchFields: []string{"title", "description"},
	StatusField:  "completed",
}

func newTodoService(t *testing.T) (*resource.Service[todos.Todo, *todos.Todo], sqlmock.Sqlmock) {
	db, mock := testutil.NewMockDB(t)
	return resource.NewService[todos.Todo, *todos.Todo](db, todoDesc), mock
}

func TestListSearchMatchesCaseInsensitively(t *testing.T) {
	svc, mock := newTodoService(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title"}).
		AddRow(uuid.NewString(), testUser, "Apple").
		AddRow(uuid.NewString(), testUser, "apple pie")

	// Substring search expands to an ILIKE OR-match over the searchable
	// columns, scoped to the user partition, newest first.
	mock.ExpectQuery(`SELECT \* FROM "todos" WHERE user_id = .* AND \(title ILIKE .* OR description ILIKE .*\) ORDER BY date_added DESC`).
		WillReturnRows(rows)

	items, err := svc.List(testUser, "APPLE", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Apple", items[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListFiltersOnStatusColumn(t *testing.T) {
	svc, mock := newTodoService(t)

	mock.ExpectQuery(`SELECT \* FROM "todos" WHERE user_id = .* AND completed = .* ORDER BY date_added DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "completed"}))

	done := true
	_, err := svc.List(testUser, "", &done)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStampsAndDefaults(t *testing.T) {
	svc, mock := newTodoService(t)

	mock.ExpectExec(`INSERT INTO "todos"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	todo := &todos.Todo{Title: "  Buy milk  "}
	require.NoError(t, svc.Create(testUser, todo))

	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, todos.PriorityMedium, todo.Priority)
	assert.Equal(t, testUser, todo.UserID)
	assert.NotEqual(t, uuid.Nil, todo.ID)
	assert.False(t, todo.DateAdded.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsBlankPrimaryField(t *testing.T) {
	svc, mock := newTodoService(t)

	err := svc.Create(testUser, &todos.Todo{Title: "   "})
	require.ErrorIs(t, err, resource.ErrValidation)

	// Validation happens before any write.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	svc, mock := newTodoService(t)

	mock.ExpectQuery(`SELECT \* FROM "todos"`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := svc.Get(testUser, uuid.New())
	require.ErrorIs(t, err, resource.ErrNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	svc, mock := newTodoService(t)

	mock.ExpectExec(`DELETE FROM "todos" WHERE user_id = .* AND id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(testUser, uuid.New())
	require.ErrorIs(t, err, resource.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePatchesOnlyPresentFields(t *testing.T) {
	svc, mock := newTodoService(t)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "priority", "completed"}).
		AddRow(id.String(), testUser, "Buy milk", todos.PriorityLow, false)
	mock.ExpectQuery(`SELECT \* FROM "todos"`).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "todos" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	todo, err := svc.Update(testUser, id, map[string]interface{}{"completed": true})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, todos.PriorityLow, todo.Priority)
	assert.True(t, todo.Completed)
	require.NotNil(t, todo.CompletedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkImportDropsRowsMissingPrimaryField(t *testing.T) {
	svc, mock := newTodoService(t)

	mock.ExpectExec(`INSERT INTO "todos"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "todos"`).WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := svc.BulkImport(testUser, []map[string]interface{}{
		{"title": "Buy milk"},
		{"description": "no title, dropped"},
		{"title": "Walk the dog", "priority": "high"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkImportToleratesRowInsertFailure(t *testing.T) {
	svc, mock := newTodoService(t)

	mock.ExpectExec(`INSERT INTO "todos"`).WillReturnError(assert.AnError)
	mock.ExpectExec(`INSERT INTO "todos"`).WillReturnResult(sqlmock.NewResult(0, 1))

	count, err := svc.BulkImport(testUser, []map[string]interface{}{
		{"title": "first"},
		{"title": "second"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
