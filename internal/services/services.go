package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard-io/taskboard/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")

	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleAlreadyExists = errors.New("role already exists")
	ErrRoleInUse         = errors.New("role is still assigned to at least one user")

	ErrMenuNotFound      = errors.New("menu not found")
	ErrMenuAlreadyExists = errors.New("menu already exists")
	ErrMenuInUse         = errors.New("menu is still linked to at least one role")

	ErrProjectNotFound = errors.New("project not found")

	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")

	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the identity claims carried by an issued token.
// Subject holds the user id.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService interface {
	// Issue signs a token for the user carrying the subject id, username
	// and role name, expiring 24 hours after issuance. A user without a
	// resolvable role is claimed as Employee.
	Issue(user *models.User) (string, error)

	// Validate verifies the signature, issuer and expiry and returns the
	// embedded claims. Every failure is ErrInvalidToken: the caller is
	// anonymous, not a system fault.
	Validate(token string) (*Claims, error)
}

type AuthService interface {
	// Register creates a user with the requested role name, falling back
	// to Employee when the role doesn't exist.
	//
	// It returns ErrUserAlreadyExists if the username is taken.
	Register(ctx context.Context, params RegisterParams) error

	// Login authenticates by username and password and issues a token.
	//
	// It returns ErrUserNotFound or ErrUserPasswordMismatch on bad
	// credentials.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// MenusForUser resolves the menus the user's role grants. A user
	// without a role gets an empty list, never an error.
	MenusForUser(ctx context.Context, userID int64) ([]models.Menu, error)

	// UpdateProfile changes the user's username and email.
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error)

	// ChangePassword verifies the old password and stores a new digest.
	//
	// It returns ErrUserPasswordMismatch if the old password is wrong.
	ChangePassword(ctx context.Context, params ChangePasswordParams) error
}

type RoleService interface {
	List(ctx context.Context) ([]models.RoleDetail, error)

	// Create inserts a role with the given menu links.
	//
	// It returns ErrRoleAlreadyExists if the name is taken.
	Create(ctx context.Context, name string, menuIDs []int64) (*models.Role, error)

	// Update renames the role and replaces its entire menu set.
	// Submitting the same set twice leaves exactly that set.
	Update(ctx context.Context, id int64, name string, menuIDs []int64) error

	// Delete removes the role unless a user still references it,
	// in which case it returns ErrRoleInUse.
	Delete(ctx context.Context, id int64) error
}

type MenuService interface {
	List(ctx context.Context) ([]models.Menu, error)
	Create(ctx context.Context, params MenuParams) (*models.Menu, error)
	Update(ctx context.Context, id int64, params MenuParams) (*models.Menu, error)

	// Delete removes the menu unless a role still links it,
	// in which case it returns ErrMenuInUse.
	Delete(ctx context.Context, id int64) error
}

type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Create(ctx context.Context, name, description string) (*models.Project, error)
	Update(ctx context.Context, id int64, name, description string) (*models.Project, error)

	// Delete removes the project's tasks and then the project.
	Delete(ctx context.Context, id int64) error
}

type TaskService interface {
	// List returns tasks matching the filter. The access guard supplies
	// the AssignedUserID predicate for employee callers.
	List(ctx context.Context, filter ListTasksFilter) ([]models.Task, error)

	// Create inserts a task. A zero deadline defaults to now+7d, a zero
	// project id to project 1. Status and priority are caller-supplied
	// and validated as legal enum members.
	Create(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// Update changes title, description, deadline and assignee. Status
	// and priority are never touched here; status belongs to
	// UpdateStatus/Complete.
	Update(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// UpdateStatus moves the task to any of the three states directly.
	UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error)

	// Complete forces the task to Done and stores the note,
	// overwriting any prior note.
	Complete(ctx context.Context, id int64, note string) (*models.Task, error)

	Delete(ctx context.Context, id int64) error
}

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)

	// Create inserts a user with the named role. Unlike registration the
	// role must exist; ErrRoleNotFound otherwise.
	Create(ctx context.Context, params CreateUserParams) (*models.User, error)

	// Update changes username, email and role; password only when
	// non-empty.
	Update(ctx context.Context, params UpdateUserParams) error

	Delete(ctx context.Context, id int64) error
}

type DashboardService interface {
	// Stats returns global project/user counts and the caller's own task
	// counts per status.
	Stats(ctx context.Context, userID int64) (*DashboardStats, error)
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	RoleName string
}

type LoginParams struct {
	Username string
	Password string
}

type LoginResult struct {
	Token    string
	UserID   int64
	Username string
	RoleName string
}

type UpdateProfileParams struct {
	UserID   int64
	Username string
	Email    string
}

type ChangePasswordParams struct {
	UserID      int64
	OldPassword string
	NewPassword string
}

type MenuParams struct {
	Name  string
	Label string
	Icon  string
}

type ListTasksFilter struct {
	ProjectID      *int64
	AssignedUserID *int64
}

type CreateTaskParams struct {
	Title          string
	Description    string
	Deadline       time.Time
	Status         models.TaskStatus
	Priority       models.TaskPriority
	ProjectID      int64
	AssignedUserID *int64
}

type UpdateTaskParams struct {
	ID             int64
	Title          string
	Description    string
	Deadline       time.Time
	AssignedUserID *int64
}

type CreateUserParams struct {
	Username string
	Email    string
	Password string
	RoleName string
}

type UpdateUserParams struct {
	ID       int64
	Username string
	Email    string
	Password string
	RoleName string
}

type DashboardStats struct {
	TotalProjects int64
	TotalUsers    int64
	MyTodo        int64
	MyInProgress  int64
	MyDone        int64
}
