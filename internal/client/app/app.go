package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskmanager/internal/client/api"
	"taskmanager/internal/client/session"
)

type View string

const (
	ViewLogin     View = "login"
	ViewRegister  View = "register"
	ViewDashboard View = "dashboard"
)

var (
	ErrInvalidForm = errors.New("form has errors")
	ErrWrongView   = errors.New("action not available in the current view")
	ErrNoModal     = errors.New("task form is not open")
	ErrUnknownTask = errors.New("task is not in the list")
)

// Backend is the part of the API client the app drives.
type Backend interface {
	SetToken(token string)
	ClearToken()
	Register(ctx context.Context, name, email, password string) (api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Profile(ctx context.Context) (api.User, error)
	ListTasks(ctx context.Context) ([]api.Task, error)
	CreateTask(ctx context.Context, input api.TaskInput) (api.Task, error)
	UpdateTask(ctx context.Context, id string, input api.TaskInput) (api.Task, error)
	DeleteTask(ctx context.Context, id string) (api.DeleteResponse, error)
}

// App holds the whole client state. It is not safe for concurrent use.
type App struct {
	backend Backend
	store   session.Store

	view    View
	session session.Session
	errors  Errors
	loading bool

	// OnLoading, when set, is told when a request starts and ends.
	OnLoading func(loading bool)

	LoginForm    LoginForm
	RegisterForm RegisterForm
	TaskForm     TaskForm

	tasks     []api.Task
	query     string
	filter    string
	modalOpen bool
	editingID string
}

// New restores a saved session without checking it against the server. A
// stale token is only noticed on the first request that answers 401.
func New(backend Backend, store session.Store) (*App, error) {
	a := &App{
		backend:  backend,
		store:    store,
		view:     ViewLogin,
		errors:   Errors{},
		filter:   FilterAll,
		TaskForm: emptyTaskForm(),
	}

	sess, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess.Valid() {
		a.session = sess
		a.backend.SetToken(sess.Token)
		a.view = ViewDashboard
	}
	return a, nil
}

func (a *App) View() View { return a.view }

func (a *App) User() *api.User { return a.session.User }

func (a *App) Loading() bool { return a.loading }

func (a *App) Query() string { return a.query }

func (a *App) StatusFilter() string { return a.filter }

func (a *App) ModalOpen() bool { return a.modalOpen }

// EditingID is empty when the open modal creates a task.
func (a *App) EditingID() string { return a.editingID }

func (a *App) Errors() Errors {
	out := make(Errors, len(a.errors))
	for k, v := range a.errors {
		out[k] = v
	}
	return out
}

func (a *App) Tasks() []api.Task {
	return append([]api.Task(nil), a.tasks...)
}

// Visible is the list as the dashboard shows it.
func (a *App) Visible() []api.Task {
	return Filter(a.tasks, a.query, a.filter)
}

func (a *App) ShowLogin() error {
	return a.navigate(ViewLogin)
}

func (a *App) ShowRegister() error {
	return a.navigate(ViewRegister)
}

func (a *App) navigate(to View) error {
	if a.view == ViewDashboard {
		return ErrWrongView
	}
	a.view = to
	a.errors = Errors{}
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.view != ViewLogin {
		return ErrWrongView
	}
	if errs := a.LoginForm.Validate(); len(errs) > 0 {
		a.errors = errs
		return ErrInvalidForm
	}

	a.begin()
	resp, err := a.backend.Login(ctx, a.LoginForm.Email, a.LoginForm.Password)
	a.end()
	if err != nil {
		a.fail(err, "Login failed")
		return err
	}

	a.LoginForm = LoginForm{}
	return a.establish(ctx, resp)
}

func (a *App) Register(ctx context.Context) error {
	if a.view != ViewRegister {
		return ErrWrongView
	}
	if errs := a.RegisterForm.Validate(); len(errs) > 0 {
		a.errors = errs
		return ErrInvalidForm
	}

	a.begin()
	resp, err := a.backend.Register(ctx, a.RegisterForm.Name, a.RegisterForm.Email, a.RegisterForm.Password)
	a.end()
	if err != nil {
		a.fail(err, "Registration failed")
		return err
	}

	a.RegisterForm = RegisterForm{}
	return a.establish(ctx, resp)
}

func (a *App) establish(ctx context.Context, resp api.AuthResponse) error {
	user := resp.User
	a.session = session.Session{Token: resp.Token, User: &user}
	a.backend.SetToken(resp.Token)
	if err := a.store.Save(a.session); err != nil {
		zap.L().Warn("failed to persist session", zap.Error(err))
	}

	a.view = ViewDashboard
	a.errors = Errors{}
	return a.LoadTasks(ctx)
}

func (a *App) Logout() {
	a.teardown()
}

// teardown forgets the session everywhere and returns to the login view.
func (a *App) teardown() {
	if err := a.store.Clear(); err != nil {
		zap.L().Warn("failed to clear session", zap.Error(err))
	}
	a.backend.ClearToken()
	a.session = session.Session{}
	a.view = ViewLogin
	a.errors = Errors{}
	a.tasks = nil
	a.query = ""
	a.filter = FilterAll
	a.closeModal()
}

// fail records err as the general form error. A 401 on an authenticated
// request also ends the session.
func (a *App) fail(err error, fallback string) {
	if errors.Is(err, api.ErrUnauthorized) && a.session.Valid() {
		a.teardown()
	}

	msg := api.Message(err)
	if msg == "" {
		msg = fallback
	}
	a.errors = Errors{FieldGeneral: msg}
}

func (a *App) begin() {
	a.loading = true
	if a.OnLoading != nil {
		a.OnLoading(true)
	}
}

func (a *App) end() {
	a.loading = false
	if a.OnLoading != nil {
		a.OnLoading(false)
	}
}

// LoadTasks replaces the list with the server's copy.
func (a *App) LoadTasks(ctx context.Context) error {
	if a.view != ViewDashboard {
		return ErrWrongView
	}

	a.begin()
	tasks, err := a.backend.ListTasks(ctx)
	a.end()
	if err != nil {
		zap.L().Warn("failed to load tasks", zap.Error(err))
		a.fail(err, "Failed to load tasks")
		return err
	}

	a.tasks = tasks
	return nil
}

// RefreshProfile asks the server who the token belongs to.
func (a *App) RefreshProfile(ctx context.Context) (api.User, error) {
	if a.view != ViewDashboard {
		return api.User{}, ErrWrongView
	}

	a.begin()
	user, err := a.backend.Profile(ctx)
	a.end()
	if err != nil {
		a.fail(err, "Failed to load profile")
		return api.User{}, err
	}

	a.session.User = &user
	if err := a.store.Save(a.session); err != nil {
		zap.L().Warn("failed to persist session", zap.Error(err))
	}
	return user, nil
}

func (a *App) SetQuery(query string) {
	a.query = query
}

func (a *App) SetStatusFilter(status string) error {
	if !ValidFilter(status) {
		return fmt.Errorf("unknown filter %q", status)
	}
	a.filter = status
	return nil
}

func (a *App) OpenCreate() error {
	if a.view != ViewDashboard {
		return ErrWrongView
	}
	a.TaskForm = emptyTaskForm()
	a.editingID = ""
	a.modalOpen = true
	a.errors = Errors{}
	return nil
}

func (a *App) OpenEdit(id string) error {
	if a.view != ViewDashboard {
		return ErrWrongView
	}
	task, ok := a.find(id)
	if !ok {
		return ErrUnknownTask
	}
	a.TaskForm = TaskForm{Title: task.Title, Description: task.Description, Status: task.Status}
	a.editingID = id
	a.modalOpen = true
	a.errors = Errors{}
	return nil
}

func (a *App) CloseModal() {
	a.closeModal()
	a.errors = Errors{}
}

func (a *App) closeModal() {
	a.TaskForm = emptyTaskForm()
	a.editingID = ""
	a.modalOpen = false
}

// SaveTask submits the open modal. New tasks go to the top of the list and
// edited ones are replaced where they are.
func (a *App) SaveTask(ctx context.Context) error {
	if !a.modalOpen {
		return ErrNoModal
	}
	if errs := a.TaskForm.Validate(); len(errs) > 0 {
		a.errors = errs
		return ErrInvalidForm
	}

	if a.editingID == "" {
		a.begin()
		task, err := a.backend.CreateTask(ctx, a.TaskForm.input())
		a.end()
		if err != nil {
			a.fail(err, "Failed to create task")
			return err
		}
		a.tasks = append([]api.Task{task}, a.tasks...)
	} else {
		id := a.editingID
		a.begin()
		task, err := a.backend.UpdateTask(ctx, id, a.TaskForm.input())
		a.end()
		if err != nil {
			a.fail(err, "Failed to update task")
			return err
		}
		for i := range a.tasks {
			if a.tasks[i].ID == id {
				a.tasks[i] = task
			}
		}
	}

	a.CloseModal()
	return nil
}

func (a *App) DeleteTask(ctx context.Context, id string) error {
	if a.view != ViewDashboard {
		return ErrWrongView
	}

	a.begin()
	_, err := a.backend.DeleteTask(ctx, id)
	a.end()
	if err != nil {
		zap.L().Warn("failed to delete task", zap.String("task_id", id), zap.Error(err))
		a.fail(err, "Failed to delete task")
		return err
	}

	kept := make([]api.Task, 0, len(a.tasks))
	for _, task := range a.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	a.tasks = kept
	if a.editingID == id {
		a.CloseModal()
	}
	return nil
}

func (a *App) find(id string) (api.Task, bool) {
	for _, task := range a.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return api.Task{}, false
}
