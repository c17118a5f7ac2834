// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Vantage engine. Clicks are simulated with textual
// commands carrying window coordinates, so a world is fully playable and
// testable without a graphical host.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/marisk/vantage/engine"
	"github.com/marisk/vantage/engine/save"
	"github.com/marisk/vantage/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".vantage", "saves"),
	}
}

// Run starts the interaction loop: prompt, input, dispatch, output.
func (c *CLI) Run() {
	if c.Engine.World.Name != "" {
		c.printLine(c.Engine.World.Name)
		c.printLine("")
	}
	c.describeRoom()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script playback).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.printLine(c.Exec(input))
	}
}

// Exec runs one game command and returns the text to show the player.
// Shared by the plain terminal loop and the TUI.
func (c *CLI) Exec(input string) string {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "look", "l", "use", "u", "go":
		verb := types.Verb(fields[0])
		switch fields[0] {
		case "l":
			verb = types.VerbLook
		case "u":
			verb = types.VerbUse
		}
		x, y, err := coords(fields[1:])
		if err != nil {
			return err.Error()
		}
		return c.run(c.Engine.Interact(verb, x, y))

	case "click", "rclick":
		x, y, err := coords(fields[1:])
		if err != nil {
			return err.Error()
		}
		return c.run(c.Engine.Click(x, y, fields[0] == "rclick"))

	case "walk", "w":
		if len(fields) != 2 {
			return "Usage: walk <direction>"
		}
		dir := expandDirection(fields[1])
		if dir == "" {
			return fmt.Sprintf("Unknown direction %q.", fields[1])
		}
		return c.run(c.Engine.Navigate(dir))

	case "where":
		return c.whereText()

	case "help", "?":
		return c.helpText()
	}

	return fmt.Sprintf("Unknown command %q. Type help for a list.", fields[0])
}

// run formats an engine result, surfacing error effects alongside output.
func (c *CLI) run(res *types.Result, err error) string {
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	var lines []string
	lines = append(lines, res.Output...)
	for _, eff := range res.Effects {
		if eff.Type == types.EffectError {
			lines = append(lines, fmt.Sprintf("Error: %v", eff.Params["message"]))
		}
	}
	if c.Trace {
		for _, eff := range res.Effects {
			lines = append(lines, fmt.Sprintf("[trace] %s %v", eff.Type, eff.Params))
		}
	}
	if len(lines) == 0 {
		return "Nothing happens."
	}
	return strings.Join(lines, "\n")
}

func coords(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected window coordinates: <x> <y>")
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("coordinates must be integers")
	}
	return x, y, nil
}

func expandDirection(s string) string {
	switch s {
	case "f", "forward":
		return "forward"
	case "b", "backward", "back":
		return "backward"
	case "l", "left":
		return "left"
	case "r", "right":
		return "right"
	case "u", "up":
		return "up"
	case "d", "down":
		return "down"
	}
	return ""
}

// whereText describes the current room: title, image, available exits,
// and how many clickable regions it has.
func (c *CLI) whereText() string {
	room := c.Engine.Room()
	var b strings.Builder

	title := room.Title
	if title == "" {
		title = c.Engine.State.CurrentRoom
	}
	fmt.Fprintf(&b, "%s (%s)\n", title, room.Image)
	if room.Cardinal != "" {
		fmt.Fprintf(&b, "Facing: %s\n", room.Cardinal)
	}

	var dirs []string
	for _, d := range types.Directions {
		if _, ok := room.Exits[d]; ok {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		b.WriteString("No exits.\n")
	} else {
		fmt.Fprintf(&b, "Exits: %s\n", strings.Join(dirs, ", "))
	}
	fmt.Fprintf(&b, "Clickable regions: %d", len(room.Actions))
	return b.String()
}

func (c *CLI) describeRoom() {
	c.printLine(c.whereText())
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/new":
		c.cmdNew()

	case "/help":
		c.printLine(c.metaHelpText())

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(c.Engine)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	if err := save.Apply(c.Engine, sd); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.Turn))
	c.describeRoom()
}

// cmdNew starts a fresh playthrough in the same world, rerolling the
// fun value.
func (c *CLI) cmdNew() {
	fresh := engine.New(c.Engine.World, c.Engine.Config, c.Engine.Log)
	fresh.Scripts = c.Engine.Scripts
	*c.Engine = *fresh
	c.printSystem("New playthrough started.")
	c.describeRoom()
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Playthrough: %s", s.PlaythroughID))
	c.printSystem(fmt.Sprintf("Room: %s", s.CurrentRoom))
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Fun value: %d", s.FunValue))
	if len(s.Vars) > 0 {
		keys := make([]string, 0, len(s.Vars))
		for k := range s.Vars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			c.printSystem(fmt.Sprintf("Var %s = %v", k, s.Vars[k]))
		}
	}
	if overlays := c.Engine.Overlays.List(); len(overlays) > 0 {
		c.printSystem(fmt.Sprintf("Overlays: %d", len(overlays)))
	}
}

func (c *CLI) helpText() string {
	return strings.Join([]string{
		"Game commands:",
		"  look <x> <y> (l)   Look at a point in the room",
		"  use <x> <y> (u)    Use whatever is at a point",
		"  go <x> <y>         Travel through whatever is at a point",
		"  click <x> <y>      Primary click: action region or nav region",
		"  rclick <x> <y>     Secondary click: use/go handlers, backward",
		"  walk <dir> (w)     Move: forward, backward, left, right, up, down",
		"  where              Describe the current room",
		"  again (g)          Repeat your last command",
		"",
		"Type /help for system commands.",
	}, "\n")
}

func (c *CLI) metaHelpText() string {
	return strings.Join([]string{
		"System:",
		"  /save [name]   Save game (default: quicksave)",
		"  /load [name]   Load game (default: quicksave)",
		"  /new           Start a new playthrough",
		"  /state         Dump current state",
		"  /trace         Toggle effect trace output",
		"  /quit          Exit game",
	}, "\n")
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
