package repository

import (
	"context"
	"errors"

	"github.com/taskboard-io/taskboard/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// TaskFilter narrows a task listing. Nil fields are ignored.
// AssignedUserID carries the ownership predicate the access guard
// applies for employee callers.
type TaskFilter struct {
	ProjectID      *int64
	AssignedUserID *int64
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)

	// AnyWithRole reports whether at least one user references the role.
	// The role referential guard consults it before deletion.
	AnyWithRole(ctx context.Context, roleID int64) (bool, error)
}

type RoleRepository interface {
	// Create inserts the role and links the given menu ids to it
	// in a single transaction.
	Create(ctx context.Context, role *models.Role, menuIDs []int64) error
	FindByID(ctx context.Context, id int64) (*models.Role, error)
	FindByName(ctx context.Context, name string) (*models.Role, error)
	ListDetailed(ctx context.Context) ([]models.RoleDetail, error)
	Delete(ctx context.Context, id int64) error

	// Rename updates the role name and replaces its entire menu set with
	// menuIDs in a single transaction. Replacement is delete-then-insert,
	// so repeating the same submission leaves the same set.
	Rename(ctx context.Context, id int64, name string, menuIDs []int64) error

	// MenusForRole returns the role's menus ordered by id.
	MenusForRole(ctx context.Context, roleID int64) ([]models.Menu, error)
}

type MenuRepository interface {
	Create(ctx context.Context, menu *models.Menu) error
	FindByID(ctx context.Context, id int64) (*models.Menu, error)
	List(ctx context.Context) ([]models.Menu, error)
	Update(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id int64) error

	// InUse reports whether any role still links the menu.
	InUse(ctx context.Context, menuID int64) (bool, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id int64) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Count(ctx context.Context) (int64, error)

	// DeleteCascade removes the project's tasks and then the project,
	// in a single transaction.
	DeleteCascade(ctx context.Context, id int64) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error

	// CountByStatus returns the user's task counts keyed by status.
	CountByStatus(ctx context.Context, userID int64) (map[models.TaskStatus]int64, error)
}
