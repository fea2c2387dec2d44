package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"taskmanager/internal/client/api"
	"taskmanager/internal/client/app"
)

const requestTimeout = 15 * time.Second

const helpText = `commands:
  login                      sign in (prompts for email and password)
  register                   create an account (prompts for each field)
  view login|register        switch between the sign-in forms
  logout                     forget the saved session
  tasks                      reload and list tasks
  search [text]              filter by title or description, empty clears
  filter all|pending|completed
  new                        open the task form for a new task
  edit <id>                  open the task form on an existing task
  set title|description|status <value>
  save                       submit the task form
  cancel                     close the task form
  delete <id>                delete a task after confirmation
  profile                    show who the session belongs to
  help                       show this text
  quit                       exit`

type repl struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
}

func newREPL(a *app.App, in io.Reader, out io.Writer) *repl {
	r := &repl{app: a, in: bufio.NewScanner(in), out: out}
	a.OnLoading = func(loading bool) {
		if loading {
			fmt.Fprint(r.out, "... ")
		}
	}
	return r
}

func (r *repl) run() error {
	if r.app.View() == app.ViewDashboard {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		_ = r.app.LoadTasks(ctx)
		cancel()
	}
	r.render()

	for {
		fmt.Fprintf(r.out, "%s> ", r.app.View())
		line, ok := r.readLine()
		if !ok {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}
		if quit := r.dispatch(line); quit {
			return nil
		}
	}
}

func (r *repl) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *repl) prompt(label string) string {
	fmt.Fprintf(r.out, "%s: ", label)
	line, _ := r.readLine()
	return line
}

// dispatch runs one command line and reports whether the user asked to quit.
func (r *repl) dispatch(line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var err error
	switch cmd {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(r.out, helpText)
		return false
	case "view":
		switch rest {
		case "login":
			err = r.app.ShowLogin()
		case "register":
			err = r.app.ShowRegister()
		default:
			err = fmt.Errorf("usage: view login|register")
		}
	case "login":
		if err = r.app.ShowLogin(); err == nil {
			r.app.LoginForm.Email = r.prompt("email")
			r.app.LoginForm.Password = r.prompt("password")
			err = r.app.Login(ctx)
		}
	case "register":
		if err = r.app.ShowRegister(); err == nil {
			r.app.RegisterForm.Name = r.prompt("name")
			r.app.RegisterForm.Email = r.prompt("email")
			r.app.RegisterForm.Password = r.prompt("password")
			r.app.RegisterForm.ConfirmPassword = r.prompt("confirm password")
			err = r.app.Register(ctx)
		}
	case "logout":
		r.app.Logout()
	case "tasks":
		err = r.app.LoadTasks(ctx)
	case "search":
		r.app.SetQuery(rest)
	case "filter":
		err = r.app.SetStatusFilter(rest)
	case "new":
		err = r.app.OpenCreate()
	case "edit":
		err = r.app.OpenEdit(rest)
	case "set":
		err = r.setField(rest)
	case "save":
		err = r.app.SaveTask(ctx)
	case "cancel":
		r.app.CloseModal()
	case "delete":
		if rest == "" {
			err = fmt.Errorf("usage: delete <id>")
			break
		}
		answer := r.prompt("Are you sure you want to delete this task? [y/N]")
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Fprintln(r.out, "kept")
			return false
		}
		err = r.app.DeleteTask(ctx, rest)
	case "profile":
		var user api.User
		if user, err = r.app.RefreshProfile(ctx); err == nil {
			fmt.Fprintf(r.out, "%s <%s> (%s)\n", user.Name, user.Email, user.ID)
			return false
		}
	default:
		err = fmt.Errorf("unknown command %q, try help", cmd)
	}

	r.report(err)
	r.render()
	return false
}

func (r *repl) setField(rest string) error {
	if !r.app.ModalOpen() {
		return app.ErrNoModal
	}
	field, value, _ := strings.Cut(rest, " ")
	value = strings.TrimSpace(value)
	switch field {
	case "title":
		r.app.TaskForm.Title = value
	case "description":
		r.app.TaskForm.Description = value
	case "status":
		if value != api.StatusPending && value != api.StatusCompleted {
			return fmt.Errorf("status must be %s or %s", api.StatusPending, api.StatusCompleted)
		}
		r.app.TaskForm.Status = value
	default:
		return fmt.Errorf("usage: set title|description|status <value>")
	}
	return nil
}

// report prints err unless render will already show it through the form
// error map, which holds validation failures and server answers.
func (r *repl) report(err error) {
	if err == nil || errors.Is(err, app.ErrInvalidForm) {
		return
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return
	}
	fmt.Fprintln(r.out, "error:", err)
}

func (r *repl) render() {
	errs := r.app.Errors()
	if len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(r.out, "! %s: %s\n", field, errs[field])
		}
	}

	switch r.app.View() {
	case app.ViewLogin:
		fmt.Fprintln(r.out, "Sign in with 'login', or 'view register' to create an account.")
	case app.ViewRegister:
		fmt.Fprintln(r.out, "Create an account with 'register', or 'view login' to sign in.")
	case app.ViewDashboard:
		r.renderDashboard()
	}
}

func (r *repl) renderDashboard() {
	if user := r.app.User(); user != nil {
		fmt.Fprintf(r.out, "Signed in as %s <%s>\n", user.Name, user.Email)
	}

	header := fmt.Sprintf("filter: %s", r.app.StatusFilter())
	if q := r.app.Query(); q != "" {
		header += fmt.Sprintf(", search: %q", q)
	}
	visible := r.app.Visible()
	fmt.Fprintf(r.out, "%s (%d of %d)\n", header, len(visible), len(r.app.Tasks()))

	if len(visible) == 0 {
		fmt.Fprintln(r.out, "  no tasks")
	}
	for _, task := range visible {
		mark := " "
		if task.Status == api.StatusCompleted {
			mark = "x"
		}
		fmt.Fprintf(r.out, "  [%s] %s  %s: %s\n", mark, task.ID, task.Title, task.Description)
	}

	if r.app.ModalOpen() {
		form := r.app.TaskForm
		action := "new task"
		if id := r.app.EditingID(); id != "" {
			action = "editing " + id
		}
		fmt.Fprintf(r.out, "form (%s): title=%q description=%q status=%s\n", action, form.Title, form.Description, form.Status)
	}
}
