package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
)

type TaskServiceTestSuite struct {
	suite.Suite
	service *TaskService
	repo    repository.TaskRepository
	clock   time.Time
}

func (suite *TaskServiceTestSuite) SetupTest() {
	db := setupTestDB(suite.T())
	suite.repo = repository.NewTaskRepository(db)
	suite.service = NewTaskService(suite.repo)
	suite.clock = time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.clock }
}

func (suite *TaskServiceTestSuite) create(userID uint64, title string) *models.Task {
	task, err := suite.service.CreateTask(CreateTaskInput{UserID: userID, Title: title})
	suite.Require().NoError(err)
	return task
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func (suite *TaskServiceTestSuite) TestCreateTask_Defaults() {
	task := suite.create(1, "buy milk")

	suite.NotZero(task.ID)
	suite.Equal(uint64(1), task.UserID)
	suite.Equal("medium", task.Priority)
	suite.Equal("active", task.Status)
	suite.Equal(0, task.OrderIndex)
	suite.True(task.CreatedAt.Equal(suite.clock))
	suite.True(task.UpdatedAt.Equal(suite.clock))
}

func (suite *TaskServiceTestSuite) TestCreateTask_TitleRequired() {
	_, err := suite.service.CreateTask(CreateTaskInput{UserID: 1})
	suite.ErrorIs(err, ErrTitleRequired)
}

func (suite *TaskServiceTestSuite) TestCreateTask_SequentialOrderIndices() {
	for i := 0; i < 5; i++ {
		task := suite.create(1, "task")
		suite.Equal(i, task.OrderIndex)
	}

	// Another owner starts from zero.
	suite.Equal(0, suite.create(2, "other").OrderIndex)
}

func (suite *TaskServiceTestSuite) TestCreateTask_ExplicitOrderIndex() {
	suite.create(1, "first")

	task, err := suite.service.CreateTask(CreateTaskInput{UserID: 1, Title: "pinned", OrderIndex: intPtr(10)})
	suite.Require().NoError(err)
	suite.Equal(10, task.OrderIndex)
}

func (suite *TaskServiceTestSuite) TestCreateTask_ConcurrentNoDuplicateIndices() {
	const n = 20

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := suite.service.CreateTask(CreateTaskInput{UserID: 1, Title: "parallel"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		suite.Require().NoError(err)
	}

	tasks, err := suite.service.ListTasks(1)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, n)

	seen := make(map[int]bool)
	for _, task := range tasks {
		suite.False(seen[task.OrderIndex], "duplicate order index %d", task.OrderIndex)
		seen[task.OrderIndex] = true
	}
	for i := 0; i < n; i++ {
		suite.True(seen[i], "missing order index %d", i)
	}
}

func (suite *TaskServiceTestSuite) TestListTasks_OrderedAndScoped() {
	a := suite.create(1, "a")
	b := suite.create(1, "b")
	suite.create(2, "foreign")

	_, err := suite.service.UpdateTask(1, a.ID, UpdateTaskInput{OrderIndex: intPtr(5)})
	suite.Require().NoError(err)

	tasks, err := suite.service.ListTasks(1)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 2)
	suite.Equal(b.ID, tasks[0].ID)
	suite.Equal(a.ID, tasks[1].ID)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_PartialFields() {
	task, err := suite.service.CreateTask(CreateTaskInput{
		UserID:      1,
		Title:       "draft",
		Description: strPtr("keep me"),
		Category:    strPtr("home"),
	})
	suite.Require().NoError(err)
	created := task.CreatedAt

	suite.clock = suite.clock.Add(time.Hour)
	due := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	updated, err := suite.service.UpdateTask(1, task.ID, UpdateTaskInput{
		Status:  strPtr("completed"),
		DueDate: &due,
	})
	suite.Require().NoError(err)

	suite.Equal("draft", updated.Title)
	suite.Equal("keep me", *updated.Description)
	suite.Equal("home", *updated.Category)
	suite.Equal("completed", updated.Status)
	suite.Equal("medium", updated.Priority)
	suite.Equal(uint64(1), updated.UserID)
	suite.True(updated.DueDate.Equal(due))
	suite.True(updated.CreatedAt.Equal(created))
	suite.True(updated.UpdatedAt.After(created))

	stored, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal("completed", stored.Status)
	suite.Equal("keep me", *stored.Description)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ClearDueDate() {
	due := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	task, err := suite.service.CreateTask(CreateTaskInput{UserID: 1, Title: "dated", DueDate: &due})
	suite.Require().NoError(err)

	// Without the flag a nil date leaves the stored one alone.
	updated, err := suite.service.UpdateTask(1, task.ID, UpdateTaskInput{Title: strPtr("still dated")})
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.DueDate)

	updated, err = suite.service.UpdateTask(1, task.ID, UpdateTaskInput{ClearDueDate: true})
	suite.Require().NoError(err)
	suite.Nil(updated.DueDate)

	stored, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Nil(stored.DueDate)
	suite.Equal("still dated", stored.Title)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_EmptyTitleRejected() {
	task := suite.create(1, "title")

	_, err := suite.service.UpdateTask(1, task.ID, UpdateTaskInput{Title: strPtr("")})
	suite.ErrorIs(err, ErrTitleEmpty)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_OtherOwnerIsNotFound() {
	task := suite.create(1, "private")

	_, err := suite.service.UpdateTask(2, task.ID, UpdateTaskInput{Title: strPtr("hijacked")})
	suite.ErrorIs(err, ErrTaskNotFound)

	stored, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.Equal("private", stored.Title)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_Missing() {
	_, err := suite.service.UpdateTask(1, 999, UpdateTaskInput{Title: strPtr("x")})
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDeleteTask() {
	task := suite.create(1, "doomed")

	suite.ErrorIs(suite.service.DeleteTask(2, task.ID), ErrTaskNotFound)
	_, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteTask(1, task.ID))
	suite.ErrorIs(suite.service.DeleteTask(1, task.ID), ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestGetDashboardStats() {
	inputs := []CreateTaskInput{
		{UserID: 1, Title: "a", Status: "completed", Priority: "high"},
		{UserID: 1, Title: "b", Status: "completed"},
		{UserID: 1, Title: "c", Priority: "high"},
		{UserID: 1, Title: "d", Status: "archived"},
		{UserID: 1, Title: "e"},
		{UserID: 2, Title: "f", Status: "completed", Priority: "high"},
	}
	for _, in := range inputs {
		_, err := suite.service.CreateTask(in)
		suite.Require().NoError(err)
	}

	stats, err := suite.service.GetDashboardStats(1)
	suite.Require().NoError(err)

	suite.Equal(int64(5), stats.TotalCount)
	suite.Equal(int64(2), stats.CompletedCount)
	suite.Equal(int64(3), stats.ActiveCount)
	suite.Equal(stats.TotalCount-stats.CompletedCount, stats.ActiveCount)
	suite.Equal(int64(2), stats.HighPriorityCount)

	empty, err := suite.service.GetDashboardStats(3)
	suite.Require().NoError(err)
	suite.Equal(DashboardStats{}, *empty)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
