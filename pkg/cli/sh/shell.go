// Package sh provides the interactive bench shell.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/txtest/pkg/hal"
	"github.com/robotalks/txtest/pkg/msgs"
	"github.com/robotalks/txtest/pkg/sim"
	"github.com/robotalks/txtest/pkg/tx"
)

// ReportSource provides the latest completed report.
type ReportSource interface {
	LastReport() (tx.Report, bool)
}

// Shell provides ishell backed interactive shell driving a simulated board.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Device string
	Board  *sim.Board
	Source ReportSource
}

// Command is a shell command. Run returns the text to print.
type Command struct {
	Name    string
	Aliases []string
	Help    string
	Run     func(s *Shell, args []string) (string, error)
}

const (
	shellKey = "$shell"
	prompt   = "tx > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*Command{
		&StatusCmd,
		&LEDsCmd,
	}
)

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*Command) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(device string, board *sim.Board, source ReportSource) *Shell {
	return &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Device:      device,
		Board:       board,
		Source:      source,
	}
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Lookup finds a command by name or alias.
func Lookup(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
		for _, alias := range cmd.Aliases {
			if alias == name {
				return cmd
			}
		}
	}
	return nil
}

// Exec runs a command without ishell.
func (s *Shell) Exec(name string, args ...string) (string, error) {
	cmd := Lookup(name)
	if cmd == nil {
		return "", fmt.Errorf("unknown command %q", name)
	}
	return cmd.Run(s, args)
}

func (cmd *Command) ishellCmd() *ishell.Cmd {
	return &ishell.Cmd{
		Name:    cmd.Name,
		Aliases: cmd.Aliases,
		Help:    cmd.Help,
		Func: func(c *ishell.Context) {
			out, err := cmd.Run(ShellFrom(c), c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if out != "" {
				c.Println(out)
			}
		},
	}
}

// Run runs the shell. It returns when the shell exits.
func (s *Shell) Run(args ...string) {
	shell := ishell.New()
	shell.Set(shellKey, s)
	shell.SetPrompt(prompt)
	for _, cmd := range commands {
		shell.AddCmd(cmd.ishellCmd())
	}
	if len(args) > 0 {
		if err := shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func (s *Shell) formatJSON(v interface{}) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Shell) lastReport() (*tx.Report, error) {
	if s.Source != nil {
		if r, ok := s.Source.LastReport(); ok {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("no report yet")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

var (
	// StatusCmd prints the latest report.
	StatusCmd = Command{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "print the latest report",
		Run: func(s *Shell, args []string) (string, error) {
			r, err := s.lastReport()
			if err != nil {
				return "", err
			}
			if s.OutputJSON {
				return s.formatJSON(msgs.NewStatusReport(s.Device, r))
			}
			var lines []string
			lines = append(lines, r.Line())
			lines = append(lines, fmt.Sprintf("bind=%s protocol=%s link=%s", r.BindMode, r.Protocol, r.Feedback.State))
			if r.Received > 0 {
				lines = append(lines, fmt.Sprintf("flags=%s mode=%s", r.Status.Flags, r.Status.FlightMode))
			}
			return strings.Join(lines, "\n"), nil
		},
	}

	// LEDsCmd prints the LED patterns and states.
	LEDsCmd = Command{
		Name: "leds",
		Help: "print LED patterns and states",
		Run: func(s *Shell, args []string) (string, error) {
			var patterns [hal.NumLEDs]tx.LEDPattern
			if r, err := s.lastReport(); err == nil {
				patterns[hal.LEDYellow], patterns[hal.LEDGreen] = r.Feedback.Yellow, r.Feedback.Green
			}
			if s.OutputJSON {
				m := make(map[string]interface{})
				for led := hal.LED(0); led < hal.NumLEDs; led++ {
					m[led.String()] = map[string]interface{}{
						"pattern": patterns[led].String(),
						"on":      s.Board.LEDs.State(led),
					}
				}
				return s.formatJSON(m)
			}
			var lines []string
			for led := hal.LED(0); led < hal.NumLEDs; led++ {
				lines = append(lines, fmt.Sprintf("%-6s %-10s %s", led, patterns[led], onOff(s.Board.LEDs.State(led))))
			}
			return strings.Join(lines, "\n"), nil
		},
	}
)

// CommandNames lists all registered commands.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name)
	}
	sort.Strings(names)
	return names
}
