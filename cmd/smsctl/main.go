package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hive-signal/client"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

// Exit codes for the command line client.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type Config struct {
	ServerAddr string        `envconfig:"SMSCTL_SERVER_ADDR" default:"http://localhost:8080"`
	Session    string        `envconfig:"SMSCTL_SESSION"`
	Timeout    time.Duration `envconfig:"SMSCTL_TIMEOUT" default:"30s"`
	Colours    bool          `envconfig:"SMSCTL_COLOURS" default:"true"`
}

const usage = `usage: smsctl <command> [flags]

commands:
  send -to <number> -body <text>   submit a message
  list                             list messages, newest first
  register -u <name> -p <pass>     create an account
  login -u <name> -p <pass>        sign in
  whoami                           show the signed in account
  health                           show server status`

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "smsctl: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if !config.Colours {
		color.Disable()
	}
	if len(args) == 0 {
		fmt.Println(usage)
		return exitConfig, nil
	}

	c, err := client.New(config.ServerAddr, config.Timeout)
	if err != nil {
		return exitConfig, err
	}
	// Either cookie name, the server only reads the one of its scope
	if config.Session != "" {
		c.SetCookie("sms_session_id", config.Session)
		c.SetCookie("_hive_signal_session", config.Session)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, rest := args[0], args[1:]
	switch command {
	case "send":
		err = send(ctx, c, rest)
	case "list":
		err = list(ctx, c)
	case "register", "login":
		err = authenticate(ctx, c, command, rest)
	case "whoami":
		err = whoami(ctx, c)
	case "health":
		err = health(ctx, c)
	default:
		fmt.Println(usage)
		return exitConfig, fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			color.Red.Printf("✗ %s\n", apiErr.Message)
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

func send(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	to := fs.String("to", "", "destination phone number")
	body := fs.String("body", "", "message content")
	if err := fs.Parse(args); err != nil {
		return err
	}
	message, err := c.SendMessage(ctx, *to, *body)
	if err != nil {
		return err
	}
	color.Green.Printf("✓ Message %s stored\n", message.ID)
	printSession(c)
	return nil
}

func list(ctx context.Context, c *client.Client) error {
	messages, err := c.ListMessages(ctx)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Created at", "To", "Content", "ID"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, m := range messages {
		table.Append([]string{m.CreatedAt.Local().Format(time.DateTime), m.PhoneNumber, m.Content, m.ID})
	}
	table.Render()
	return nil
}

func authenticate(ctx context.Context, c *client.Client, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	call := c.Login
	if command == "register" {
		call = c.Register
	}
	user, err := call(ctx, *username, *password)
	if err != nil {
		return err
	}
	color.Green.Printf("✓ Signed in as %s\n", user.Username)
	printSession(c)
	return nil
}

func whoami(ctx context.Context, c *client.Client) error {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", user.Username, user.ID)
	return nil
}

func health(ctx context.Context, c *client.Client) error {
	h, err := c.Health(ctx)
	if err != nil {
		return err
	}
	color.Cyan.Printf("%s, scope %s, gateway %s\n", h.Status, h.Mode, h.Gateway)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Stat", "Value"})
	table.SetBorder(false)
	for _, key := range []string{"messages_stored", "dispatch_ok", "dispatch_failed", "uptime_seconds", "rss_mb"} {
		table.Append([]string{key, fmt.Sprint(h.Stats[key])})
	}
	table.Render()
	return nil
}

// printSession shows how to resume the same identity on the next call.
func printSession(c *client.Client) {
	for _, name := range []string{"sms_session_id", "_hive_signal_session"} {
		if value, ok := c.Cookie(name); ok {
			color.Gray.Printf("export SMSCTL_SESSION=%s\n", value)
			return
		}
	}
}
