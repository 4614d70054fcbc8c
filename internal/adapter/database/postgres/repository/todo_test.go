package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/adapter/database/postgres/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/test/factory"
)

var todoCols = []string{"id", "title", "body", "status", "start_date", "end_date", "created_at", "updated_at"}

type TodoRepositoryTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	TodoRepo port.TodoRepository
}

func (s *TodoRepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)

	s.mock = mock
	s.TodoRepo = repository.NewTodoRepository(postgres.Wrap(mock), nil)
}

func (s *TodoRepositoryTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestTodoRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoRepositoryTestSuite))
}

func todoRows(todos ...domain.Todo) *pgxmock.Rows {
	rows := pgxmock.NewRows(todoCols)

	for _, todo := range todos {
		rows.AddRow(todo.ID, todo.Title, todo.Body, todo.Status, todo.Start, todo.End, todo.CreatedAt, todo.UpdatedAt)
	}

	return rows
}

func (s *TodoRepositoryTestSuite) TestRepository_GetAll() {
	first := factory.NewTodo[domain.Todo](map[string]any{"ID": int64(1), "Title": "first"})
	second := factory.NewTodo[domain.Todo](map[string]any{"ID": int64(2), "Title": "second"})

	s.mock.ExpectQuery(`SELECT (.+) FROM todos ORDER BY id ASC`).
		WillReturnRows(todoRows(first, second))

	todos, err := s.TodoRepo.GetAll(context.Background())

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(2))
	Expect(todos[1].Title).To(Equal("second"))
	Expect(todos[0].StartString()).To(Equal("10/01/2024"))
}

func (s *TodoRepositoryTestSuite) TestRepository_GetAll_Empty() {
	s.mock.ExpectQuery(`SELECT (.+) FROM todos`).WillReturnRows(todoRows())

	todos, err := s.TodoRepo.GetAll(context.Background())

	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestRepository_GetByID_NotFound() {
	s.mock.ExpectQuery(`SELECT (.+) FROM todos WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(todoRows())

	_, err := s.TodoRepo.GetByID(context.Background(), 9)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoRepositoryTestSuite) TestRepository_Create() {
	todo := factory.NewTodo[domain.Todo]()
	stored := todo
	stored.ID = 11
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	s.mock.ExpectQuery(`INSERT INTO todos \(title,body,status,start_date,end_date\) VALUES \(\$1,\$2,\$3,\$4,\$5\) RETURNING`).
		WithArgs(todo.Title, todo.Body, todo.Status, todo.Start, todo.End).
		WillReturnRows(todoRows(stored))

	saved, err := s.TodoRepo.Create(context.Background(), todo)

	Expect(err).To(BeNil())
	assert.Equal(s.T(), int64(11), saved.ID)
	assert.Equal(s.T(), todo.Title, saved.Title)
	assert.Equal(s.T(), "20/01/2024", saved.EndString())
}

func (s *TodoRepositoryTestSuite) TestRepository_Create_Failure() {
	connErr := errors.New("connection reset by peer")

	s.mock.ExpectQuery(`INSERT INTO todos`).WillReturnError(connErr)

	_, err := s.TodoRepo.Create(context.Background(), factory.NewTodo[domain.Todo]())

	assert.ErrorIs(s.T(), err, domain.ErrPersistence)
	assert.ErrorIs(s.T(), err, connErr)
}

func (s *TodoRepositoryTestSuite) TestRepository_Update() {
	todo := factory.NewTodo[domain.Todo](map[string]any{"ID": int64(4), "Title": "renamed"})

	s.mock.ExpectQuery(`UPDATE todos SET (.+) WHERE id = \$6 RETURNING`).
		WillReturnRows(todoRows(todo))

	updated, err := s.TodoRepo.Update(context.Background(), todo)

	Expect(err).To(BeNil())
	Expect(updated.Title).To(Equal("renamed"))
}

func (s *TodoRepositoryTestSuite) TestRepository_Update_NotFound() {
	s.mock.ExpectQuery(`UPDATE todos`).WillReturnRows(todoRows())

	_, err := s.TodoRepo.Update(context.Background(), factory.NewTodo[domain.Todo](map[string]any{"ID": int64(4)}))

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}

func (s *TodoRepositoryTestSuite) TestRepository_Delete() {
	s.mock.ExpectExec(`DELETE FROM todos WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	s.mock.ExpectExec(`DELETE FROM todos WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	Expect(s.TodoRepo.Delete(context.Background(), 3)).To(Succeed())
	Expect(s.TodoRepo.Delete(context.Background(), 3)).To(MatchError(domain.ErrTodoNotFound))
}
