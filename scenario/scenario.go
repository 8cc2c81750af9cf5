// Package scenario runs a Starlark-scripted stand-in for the
// application's main loop, so hang behavior can be exercised against
// the monitor without real firmware.
//
// A script must define loop(n), called once per step, and may define
// setup(), called once before the first step. Builtins:
//
//	alive()          - refresh the watchdog (Heartbeat)
//	set_data(value)  - set the diagnostic word
//	data()           - read the diagnostic word
//	hang()           - stop the loop; the watchdog takes it from here
//	log(msg)         - log a message
//
// The monitor's Defines (BASE_ADDRESS, MAX_ENTRIES, TIMEOUT_*) are
// predeclared as integer globals.
package scenario

import (
	"log"
	"strconv"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/appmon/monitor"
	"github.com/ezrec/appmon/watchdog"
)

// Scenario is a loaded scenario program bound to a monitor.
type Scenario struct {
	Verbose bool

	Monitor *monitor.Monitor

	hung   bool
	thread *starlark.Thread
	setup  starlark.Callable
	loop   starlark.Callable
}

// Load parses and executes a scenario script. src may be nil to read
// from filename, or a string/[]byte/io.Reader with the script text.
func Load(filename string, src any, mon *monitor.Monitor) (sc *Scenario, err error) {
	sc = &Scenario{
		Monitor: mon,
		thread:  &starlark.Thread{Name: filename},
	}

	pred := starlark.StringDict{
		"alive":    starlark.NewBuiltin("alive", sc.builtinAlive),
		"set_data": starlark.NewBuiltin("set_data", sc.builtinSetData),
		"data":     starlark.NewBuiltin("data", sc.builtinData),
		"hang":     starlark.NewBuiltin("hang", sc.builtinHang),
		"log":      starlark.NewBuiltin("log", sc.builtinLog),
	}
	for key, str := range mon.Defines() {
		value, perr := strconv.Atoi(str)
		if perr != nil {
			// Ignore non-integer defines.
			continue
		}
		pred[key] = starlark.MakeInt(value)
	}

	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, sc.thread, filename, src, pred)
	if err != nil {
		sc = nil
		return
	}

	sc.loop, err = hook(globals, "loop", true)
	if err != nil {
		sc = nil
		return
	}
	sc.setup, err = hook(globals, "setup", false)
	if err != nil {
		sc = nil
		return
	}

	return
}

func hook(globals starlark.StringDict, name string, required bool) (fn starlark.Callable, err error) {
	value, ok := globals[name]
	if !ok {
		if required {
			err = ErrHookMissing(name)
		}
		return
	}

	fn, ok = value.(starlark.Callable)
	if !ok {
		err = ErrHookNotCallable(name)
	}

	return
}

// Hung reports whether the script has called hang().
func (sc *Scenario) Hung() bool {
	return sc.hung
}

// Setup runs the optional setup() hook.
func (sc *Scenario) Setup() (err error) {
	if sc.setup == nil {
		return
	}

	_, err = starlark.Call(sc.thread, sc.setup, nil, nil)

	return
}

// Step runs loop(n) once. After hang() the loop no longer runs.
func (sc *Scenario) Step(n int) (err error) {
	if sc.hung {
		return
	}

	_, err = starlark.Call(sc.thread, sc.loop, starlark.Tuple{starlark.MakeInt(n)}, nil)

	return
}

// Run drives the scenario against a simulated watchdog: each step
// advances simulated time by step. Once the script hangs, time keeps
// advancing until the watchdog delivers its reset.
func (sc *Scenario) Run(sim *watchdog.Sim, steps int, step time.Duration) (err error) {
	err = sc.Setup()
	if err != nil {
		return
	}

	for n := 0; n < steps && !sc.hung; n++ {
		err = sc.Step(n)
		if err != nil {
			return
		}
		sim.Advance(step)
	}

	for sc.hung && sim.Resets == 0 {
		sim.Advance(step)
	}

	return
}

func (sc *Scenario) builtinAlive(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	sc.Monitor.Heartbeat()

	return starlark.None, nil
}

func (sc *Scenario) builtinSetData(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "value", &value); err != nil {
		return nil, err
	}

	sc.Monitor.SetData(uint32(value))

	return starlark.None, nil
}

func (sc *Scenario) builtinData(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.MakeInt(int(sc.Monitor.GetData())), nil
}

func (sc *Scenario) builtinHang(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	sc.hung = true
	if sc.Verbose {
		log.Printf("scenario: hang")
	}

	return starlark.None, nil
}

func (sc *Scenario) builtinLog(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var msg string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "msg", &msg); err != nil {
		return nil, err
	}

	log.Printf("scenario: %v", msg)

	return starlark.None, nil
}
