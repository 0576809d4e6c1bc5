// Command taskgo-cli is a terminal client for the taskgo API. It keeps
// the session credential in a config-dir file when asked to remember
// it, and otherwise only for the current shell via TASKGO_TOKEN.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/avoronov/taskgo/internal/client"
	"github.com/avoronov/taskgo/internal/models"
	"github.com/avoronov/taskgo/internal/session"
)

const tokenEnv = "TASKGO_TOKEN"

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	faint   = color.New(color.Faint)
)

func main() {
	serverURL := flag.String("server", "http://localhost:5000", "taskgo server base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	api := client.New(*serverURL)
	ctx := context.Background()

	err := run(ctx, api, flag.Arg(0), flag.Args()[1:])
	if err != nil {
		failure.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: taskgo-cli [-server URL] <command> [arguments]

commands:
  register <username> <email> <password> [-remember]
  login <email> <password> [-remember]
  logout
  list
  add <name> [desc]
  update <id> [-name NAME] [-desc DESC] [-type notstarted|ongoing|done]
  done <id>
  rm <id>
  users`)
}

func run(ctx context.Context, api *client.Client, command string, args []string) error {
	switch command {
	case "register":
		return runRegister(ctx, api, args)
	case "login":
		return runLogin(ctx, api, args)
	case "logout":
		return runLogout()
	case "list":
		return runList(ctx, api)
	case "add":
		return runAdd(ctx, api, args)
	case "update":
		return runUpdate(ctx, api, args)
	case "done":
		return runDone(ctx, api, args)
	case "rm":
		return runRemove(ctx, api, args)
	case "users":
		return runUsers(ctx, api)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runRegister(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	remember := fs.Bool("remember", false, "persist the session across shells")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("usage: register <username> <email> <password> [-remember]")
	}

	creds, err := api.Register(ctx, fs.Arg(0), fs.Arg(1), fs.Arg(2))
	if err != nil {
		return err
	}

	success.Printf("registered %s <%s>\n", creds.Username, creds.Email)
	return storeCredentials(creds, *remember)
}

func runLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	remember := fs.Bool("remember", false, "persist the session across shells")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: login <email> <password> [-remember]")
	}

	creds, err := api.Login(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	success.Printf("logged in as %s <%s>\n", creds.Username, creds.Email)
	return storeCredentials(creds, *remember)
}

func runLogout() error {
	path, err := session.DefaultPath()
	if err != nil {
		return err
	}
	err = session.NewFileStore(path).Clear()
	if err != nil {
		return err
	}
	success.Println("logged out")
	if os.Getenv(tokenEnv) != "" {
		faint.Printf("unset %s to drop the shell-scoped session\n", tokenEnv)
	}
	return nil
}

func runList(ctx context.Context, api *client.Client) error {
	if err := authenticate(api); err != nil {
		return err
	}

	tasks, err := api.Tasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		faint.Println("no tasks")
		return nil
	}

	for _, t := range tasks {
		fmt.Printf("%s  %s  %s\n", statusColor(t.Type).Sprintf("%-10s", t.Type), t.ID, t.Name)
		if t.Desc != "" {
			faint.Printf("            %s\n", t.Desc)
		}
	}
	return nil
}

func runAdd(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add <name> [desc]")
	}
	if err := authenticate(api); err != nil {
		return err
	}

	desc := ""
	if len(args) > 1 {
		desc = args[1]
	}
	task, err := api.CreateTask(ctx, args[0], desc, "")
	if err != nil {
		return err
	}

	success.Printf("added %s (%s)\n", task.Name, task.ID)
	return nil
}

func runUpdate(ctx context.Context, api *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: update <id> [-name NAME] [-desc DESC] [-type TYPE]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	name := fs.String("name", "", "new task name")
	desc := fs.String("desc", "", "new task description")
	taskType := fs.String("type", "", "new task status")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if err := authenticate(api); err != nil {
		return err
	}

	task, err := api.UpdateTask(ctx, id, client.TaskUpdate{
		Name: *name,
		Desc: *desc,
		Type: *taskType,
	})
	if err != nil {
		return err
	}

	success.Printf("updated %s: %s\n", task.Name, statusColor(task.Type).Sprint(task.Type))
	return nil
}

func runDone(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: done <id>")
	}
	if err := authenticate(api); err != nil {
		return err
	}

	task, err := api.UpdateTask(ctx, args[0], client.TaskUpdate{Type: models.StatusDone})
	if err != nil {
		return err
	}

	success.Printf("done: %s\n", task.Name)
	return nil
}

func runRemove(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <id>")
	}
	if err := authenticate(api); err != nil {
		return err
	}

	err := api.DeleteTask(ctx, args[0])
	if err != nil {
		return err
	}

	success.Println("task deleted")
	return nil
}

func runUsers(ctx context.Context, api *client.Client) error {
	users, err := api.Users(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s <%s>\n", u.Username, u.Email)
	}
	return nil
}

// authenticate restores the current session and puts its credential on
// the client. The shell-scoped token wins over the remembered file.
func authenticate(api *client.Client) error {
	if token := os.Getenv(tokenEnv); token != "" {
		api.SetToken(token)
		return nil
	}

	path, err := session.DefaultPath()
	if err != nil {
		return err
	}
	data, err := session.NewFileStore(path).Load()
	if err != nil {
		return err
	}
	s, err := session.Restore(data)
	if err != nil {
		return err
	}
	if !s.Authenticated() {
		return fmt.Errorf("not logged in: run taskgo-cli login first")
	}

	api.SetToken(s.Token)
	return nil
}

func storeCredentials(creds *client.Credentials, remember bool) error {
	s := session.Session{
		Token: creds.Token,
		User: &models.PublicUser{
			ID:       creds.ID,
			Username: creds.Username,
			Email:    creds.Email,
		},
	}

	if !remember {
		faint.Printf("session is shell-scoped: export %s=%s\n", tokenEnv, creds.Token)
		return nil
	}

	data, err := s.Bytes()
	if err != nil {
		return err
	}
	path, err := session.DefaultPath()
	if err != nil {
		return err
	}
	return session.NewFileStore(path).Save(data)
}

func statusColor(status string) *color.Color {
	switch status {
	case models.StatusDone:
		return color.New(color.FgGreen)
	case models.StatusOngoing:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}
