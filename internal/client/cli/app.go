package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/client/api"
	"github.com/dmitrijs2005/tasktracker/internal/client/config"
)

// taskAPI is the part of *api.Client the commands use.
type taskAPI interface {
	Register(ctx context.Context, username, email, password string) (*api.User, error)
	Login(ctx context.Context, username, password string) (*api.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*api.User, error)
	ListTasks(ctx context.Context, status, priority string) ([]api.Task, error)
	GetTask(ctx context.Context, id int64) (*api.Task, error)
	CreateTask(ctx context.Context, t api.NewTask) (*api.Task, error)
	UpdateTask(ctx context.Context, id int64, p api.TaskPatch) (*api.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

var _ taskAPI = (*api.Client)(nil)

type App struct {
	config   *config.Config
	client   taskAPI
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.NewClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run greets the user and blocks in the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to TaskTracker CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// report prints err in a user-facing form. A 401 from the server means the
// session is gone, so the local login state is dropped as well.
func (a *App) report(err error) {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, api.ErrUnauthorized):
		if a.isLoggedIn() {
			a.userName = ""
			fmt.Fprintln(a.out, "Session expired, please log in again")
			return
		}
		fmt.Fprintln(a.out, "Error:", err.Error())
	default:
		fmt.Fprintln(a.out, "Error:", err.Error())
	}
}
