package services

import (
	"context"
	"sort"

	"github.com/taskboard-io/taskboard/internal/models"
	"github.com/taskboard-io/taskboard/internal/repository"
)

// In-memory repositories backing the service tests.

type fakeUserRepo struct {
	seq   int64
	users map[int64]*models.User
	roles *fakeRoleRepo
}

func newFakeUserRepo(roles *fakeRoleRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), roles: roles}
}

// resolveRole mirrors the role name join done by the postgres repository.
func (r *fakeUserRepo) resolveRole(user models.User) models.User {
	if r.roles != nil {
		if role, ok := r.roles.roles[user.RoleID]; ok {
			user.RoleName = role.Name
		}
	}
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	user.ID = r.seq
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := r.resolveRole(*user)
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := r.resolveRole(*user)
	return &clone, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, r.resolveRole(*user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) AnyWithRole(_ context.Context, roleID int64) (bool, error) {
	for _, user := range r.users {
		if user.RoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

type fakeRoleRepo struct {
	seq       int64
	roles     map[int64]*models.Role
	roleMenus map[int64][]int64
	catalog   map[int64]models.Menu
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles:     make(map[int64]*models.Role),
		roleMenus: make(map[int64][]int64),
		catalog:   make(map[int64]models.Menu),
	}
}

func (r *fakeRoleRepo) Create(_ context.Context, role *models.Role, menuIDs []int64) error {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	role.ID = r.seq
	clone := *role
	r.roles[role.ID] = &clone
	r.roleMenus[role.ID] = dedupe(menuIDs)
	return nil
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id int64) (*models.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*models.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRoleRepo) ListDetailed(ctx context.Context) ([]models.RoleDetail, error) {
	details := make([]models.RoleDetail, 0, len(r.roles))
	for id, role := range r.roles {
		menus, _ := r.MenusForRole(ctx, id)
		details = append(details, models.RoleDetail{
			ID:    role.ID,
			Name:  role.Name,
			Menus: menus,
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	return details, nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.roles, id)
	delete(r.roleMenus, id)
	return nil
}

func (r *fakeRoleRepo) Rename(_ context.Context, id int64, name string, menuIDs []int64) error {
	role, ok := r.roles[id]
	if !ok {
		return repository.ErrNotFound
	}
	role.Name = name
	r.roleMenus[id] = dedupe(menuIDs)
	return nil
}

func (r *fakeRoleRepo) MenusForRole(_ context.Context, roleID int64) ([]models.Menu, error) {
	ids := append([]int64(nil), r.roleMenus[roleID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	menus := make([]models.Menu, 0, len(ids))
	for _, id := range ids {
		if menu, ok := r.catalog[id]; ok {
			menus = append(menus, menu)
		}
	}
	return menus, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type fakeMenuRepo struct {
	seq   int64
	menus map[int64]*models.Menu
	roles *fakeRoleRepo
}

func newFakeMenuRepo(roles *fakeRoleRepo) *fakeMenuRepo {
	return &fakeMenuRepo{menus: make(map[int64]*models.Menu), roles: roles}
}

func (r *fakeMenuRepo) Create(_ context.Context, menu *models.Menu) error {
	for _, existing := range r.menus {
		if existing.Name == menu.Name {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	menu.ID = r.seq
	clone := *menu
	r.menus[menu.ID] = &clone
	if r.roles != nil {
		r.roles.catalog[menu.ID] = clone
	}
	return nil
}

func (r *fakeMenuRepo) FindByID(_ context.Context, id int64) (*models.Menu, error) {
	menu, ok := r.menus[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *menu
	return &clone, nil
}

func (r *fakeMenuRepo) List(_ context.Context) ([]models.Menu, error) {
	menus := make([]models.Menu, 0, len(r.menus))
	for _, menu := range r.menus {
		menus = append(menus, *menu)
	}
	sort.Slice(menus, func(i, j int) bool { return menus[i].ID < menus[j].ID })
	return menus, nil
}

func (r *fakeMenuRepo) Update(_ context.Context, menu *models.Menu) error {
	if _, ok := r.menus[menu.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *menu
	r.menus[menu.ID] = &clone
	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.menus[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.menus, id)
	return nil
}

func (r *fakeMenuRepo) InUse(_ context.Context, menuID int64) (bool, error) {
	if r.roles == nil {
		return false, nil
	}
	for _, ids := range r.roles.roleMenus {
		for _, id := range ids {
			if id == menuID {
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeProjectRepo struct {
	seq      int64
	projects map[int64]*models.Project
	tasks    *fakeTaskRepo
}

func newFakeProjectRepo(tasks *fakeTaskRepo) *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int64]*models.Project), tasks: tasks}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	r.seq++
	project.ID = r.seq
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id int64) (*models.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *project
	return &clone, nil
}

func (r *fakeProjectRepo) List(_ context.Context) ([]models.Project, error) {
	projects := make([]models.Project, 0, len(r.projects))
	for _, project := range r.projects {
		projects = append(projects, *project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.projects)), nil
}

func (r *fakeProjectRepo) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return repository.ErrNotFound
	}
	if r.tasks != nil {
		for taskID, task := range r.tasks.tasks {
			if task.ProjectID == id {
				delete(r.tasks.tasks, taskID)
			}
		}
	}
	delete(r.projects, id)
	return nil
}

type fakeTaskRepo struct {
	seq   int64
	tasks map[int64]*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*models.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	r.seq++
	task.ID = r.seq
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.ProjectID != nil && task.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.AssignedUserID != nil {
			if task.AssignedUserID == nil || *task.AssignedUserID != *filter.AssignedUserID {
				continue
			}
		}
		tasks = append(tasks, *task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountByStatus(_ context.Context, userID int64) (map[models.TaskStatus]int64, error) {
	counts := make(map[models.TaskStatus]int64)
	for _, task := range r.tasks {
		if task.AssignedUserID != nil && *task.AssignedUserID == userID {
			counts[task.Status]++
		}
	}
	return counts, nil
}
