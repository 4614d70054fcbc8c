package repository_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	. "todoapi/pkg/test"
	"todoapi/pkg/test/factory"
)

type TodoStatusRepositoryTestSuite struct {
	suite.Suite
	StatusRepo port.TodoStatusRepository
}

func (s *TodoStatusRepositoryTestSuite) SetupTest() {
	s.StatusRepo = repository.NewTodoStatusRepository(InitTestDB(s.T()), nil)
}

func TestTodoStatusRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoStatusRepositoryTestSuite))
}

func (s *TodoStatusRepositoryTestSuite) TestRepository_CreateAndFetch() {
	ctx := context.Background()

	created, err := s.StatusRepo.Create(ctx, factory.NewTodoStatus[domain.TodoStatus](map[string]any{"Slug": "in-progress"}))

	Expect(err).To(BeNil())
	Expect(created.ID).To(BeNumerically(">", 0))
	Expect(created.Slug).To(Equal("in-progress"))

	byID, err := s.StatusRepo.GetByID(ctx, created.ID)
	Expect(err).To(BeNil())
	Expect(byID.Slug).To(Equal("in-progress"))

	bySlug, err := s.StatusRepo.GetBySlug(ctx, "in-progress")
	Expect(err).To(BeNil())
	Expect(bySlug.ID).To(Equal(created.ID))
}

func (s *TodoStatusRepositoryTestSuite) TestRepository_GetAllAndGetBySlug() {
	ctx := context.Background()

	statuses, err := s.StatusRepo.GetAll(ctx)
	Expect(err).To(BeNil())
	Expect(statuses).To(BeEmpty())

	for _, slug := range []string{"pending", "done"} {
		_, err := s.StatusRepo.Create(ctx, factory.NewTodoStatus[domain.TodoStatus](map[string]any{"Slug": slug}))
		Expect(err).To(BeNil())
	}

	statuses, err = s.StatusRepo.GetAll(ctx)
	Expect(err).To(BeNil())
	Expect(statuses).To(HaveLen(2))
	Expect(statuses[0].Slug).To(Equal("pending"))

	done, err := s.StatusRepo.GetBySlug(ctx, "done")
	Expect(err).To(BeNil())
	Expect(done.ID).To(Equal(statuses[1].ID))

	_, err = s.StatusRepo.GetBySlug(ctx, "archived")
	Expect(err).To(MatchError(domain.ErrTodoStatusNotFound))
}

func (s *TodoStatusRepositoryTestSuite) TestRepository_Create_DuplicateSlug() {
	ctx := context.Background()

	_, err := s.StatusRepo.Create(ctx, factory.NewTodoStatus[domain.TodoStatus]())
	Expect(err).To(BeNil())

	_, err = s.StatusRepo.Create(ctx, factory.NewTodoStatus[domain.TodoStatus]())

	var duplicate *domain.DuplicateSlugError
	assert.True(s.T(), errors.As(err, &duplicate))
	assert.Equal(s.T(), "pending", duplicate.Slug)
}

func (s *TodoStatusRepositoryTestSuite) TestRepository_Update() {
	ctx := context.Background()

	status, _ := s.StatusRepo.Create(ctx, factory.NewTodoStatus[domain.TodoStatus]())
	status.Slug = "waiting"

	updated, err := s.StatusRepo.Update(ctx, status)

	Expect(err).To(BeNil())
	Expect(updated.Slug).To(Equal("waiting"))

	_, err = s.StatusRepo.GetBySlug(ctx, "pending")
	Expect(err).To(MatchError(domain.ErrTodoStatusNotFound))

	status.ID = 999
	_, err = s.StatusRepo.Update(ctx, status)
	Expect(err).To(MatchError(domain.ErrTodoStatusNotFound))
}

func (s *TodoStatusRepositoryTestSuite) TestRepository_Delete() {
	ctx := context.Background()

	status, _ := s.StatusRepo.Create(ctx, factory.NewTodoStatus[domain.TodoStatus]())

	Expect(s.StatusRepo.Delete(ctx, status.ID)).To(Succeed())
	Expect(s.StatusRepo.Delete(ctx, status.ID)).To(MatchError(domain.ErrTodoStatusNotFound))

	_, err := s.StatusRepo.GetByID(ctx, status.ID)
	Expect(err).To(MatchError(domain.ErrTodoStatusNotFound))
}
