package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/noah-isme/printshop-console/internal/service"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

// ErrExit is returned by Execute when the operator asked to leave.
var ErrExit = errors.New("exit requested")

// Prompter reads one line of operator input.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

type command struct {
	name     string
	short    string
	args     []string
	variable bool
	// form commands are only accepted while a form is open.
	form bool
	run  func(ctx context.Context, args []string) error
}

// Options configures a Console.
type Options struct {
	Out    io.Writer
	Logger *zap.Logger
	// Prompter answers confirmations when the console is not running its
	// own line editor, e.g. in tests.
	Prompter Prompter
}

// Toasts lists the notifications currently visible.
type Toasts interface {
	Active() []service.Notification
}

// Console is the interactive front end. It keeps one screen per resource,
// at most one open form, and dispatches typed commands to them.
type Console struct {
	out      *lockedWriter
	logger   *zap.Logger
	prompter Prompter
	toasts   Toasts

	commands     map[string]*command
	commandsList []*command
	helpMessage  string

	screens     map[string]screen
	screenOrder []string
	current     screen
	form        form
}

// New builds a console writing to opts.Out.
func New(opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	c := &Console{
		out:      &lockedWriter{w: opts.Out},
		logger:   opts.Logger,
		prompter: opts.Prompter,
		commands: map[string]*command{},
		screens:  map[string]screen{},
	}
	c.initCommands()
	c.helpInit()
	return c
}

// Mount registers a resource screen. The first mounted screen is current.
func (c *Console) Mount(s screen) {
	c.screens[s.Name()] = s
	c.screenOrder = append(c.screenOrder, s.Name())
	if c.current == nil {
		c.current = s
	}
}

// SetToasts attaches the notification list shown by the toasts command.
func (c *Console) SetToasts(t Toasts) {
	c.toasts = t
}

// Toast renders one notification. It is the sink of the notification service.
func (c *Console) Toast(n service.Notification) {
	printToast(c.out, n)
}

// Confirm asks a yes/no question; anything but y or yes declines.
func (c *Console) Confirm(_ context.Context, prompt string) (bool, error) {
	if c.prompter == nil {
		return false, appErrors.Clone(appErrors.ErrInternal, "no prompter attached")
	}
	answer, err := c.prompter.Prompt(prompt + " [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Register adds a command to the dispatch table.
func (c *Console) Register(cmd *command) {
	c.commandsList = append(c.commandsList, cmd)
	c.commands[cmd.name] = cmd
}

func (c *Console) helpInit() {
	var namelen, shortlen int
	for _, cmd := range c.commandsList {
		if len(cmd.name) > namelen {
			namelen = len(cmd.name)
		}
		if len(cmd.short) > shortlen {
			shortlen = len(cmd.short)
		}
	}
	str := strings.Builder{}
	for _, cmd := range c.commandsList {
		str.WriteString(padRight(cmd.name, " ", namelen+2))
		str.WriteString(padRight(cmd.short, " ", shortlen+2))
		if len(cmd.args) > 0 {
			str.WriteString("args: " + strings.Join(cmd.args, ","))
		}
		str.WriteString("\n")
	}
	str.WriteString("\n")
	c.helpMessage = str.String()
}

func padRight(str, pad string, length int) string {
	for len(str) < length {
		str += pad
	}
	return str
}

// Run reads commands with a line editor until exit or end of input.
func (c *Console) Run(ctx context.Context) error {
	l := liner.NewLiner()
	defer l.Close()
	l.SetCtrlCAborts(true)
	l.SetCompleter(c.completer)
	c.prompter = l

	if c.current != nil {
		if err := c.Execute(ctx, "list"); err != nil {
			c.printError(err)
		}
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := l.Prompt(c.prompt())
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		l.AppendHistory(line)

		err = c.Execute(ctx, line)
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			c.printError(err)
		}
	}
}

// Execute runs one command line.
func (c *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "exit", "quit":
		return ErrExit
	case "help", "-h", "--help":
		fmt.Fprint(c.out, c.helpMessage)
		return nil
	}

	cmd, ok := c.commands[fields[0]]
	if !ok {
		return fmt.Errorf("command not found: %s, run help for usage", fields[0])
	}
	args := fields[1:]
	if len(args) < len(cmd.args) || (!cmd.variable && len(args) > len(cmd.args)) {
		return fmt.Errorf("wrong number of arguments, usage: %s %s", cmd.name, strings.Join(cmd.args, " "))
	}
	if cmd.form && c.form == nil {
		return fmt.Errorf("%s needs an open form, use create or edit first", cmd.name)
	}
	if !cmd.form && c.form != nil {
		return fmt.Errorf("a form is open, save or cancel it first")
	}
	if !cmd.form && cmd.name != "use" && c.current == nil {
		return fmt.Errorf("no resource selected")
	}
	c.logger.Debug("console command", zap.String("command", cmd.name), zap.Strings("args", args))
	return cmd.run(ctx, args)
}

func (c *Console) prompt() string {
	switch {
	case c.form != nil:
		return fmt.Sprintf("printshop:%s> ", c.form.Title())
	case c.current != nil:
		return fmt.Sprintf("printshop:%s> ", c.current.Name())
	}
	return "printshop> "
}

func (c *Console) printError(err error) {
	color.New(color.FgRed).Fprintf(c.out, "ERROR: %s\n", err.Error())
}

// completer suggests command names, then the arguments a command takes.
func (c *Console) completer(line string) []string {
	name, rest, hasArgs := strings.Cut(line, " ")
	if !hasArgs {
		out := make([]string, 0)
		for _, cmd := range c.commandsList {
			if strings.HasPrefix(cmd.name, name) {
				out = append(out, cmd.name)
			}
		}
		return out
	}

	var candidates []string
	switch name {
	case "use":
		candidates = c.screenOrder
	case "filter":
		if c.current != nil {
			candidates = c.current.FilterNames()
		}
	case "sort":
		if c.current != nil {
			candidates = c.current.SortNames()
		}
	case "set":
		if c.form != nil {
			candidates = c.form.FieldNames()
		}
	case "export":
		candidates = []string{"csv", "pdf"}
	case "page":
		candidates = []string{"next", "prev"}
	}
	out := make([]string, 0)
	for _, cand := range candidates {
		if strings.HasPrefix(cand, rest) {
			out = append(out, name+" "+cand)
		}
	}
	sort.Strings(out)
	return out
}

// lockedWriter serializes writes coming from toasts and from commands.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
