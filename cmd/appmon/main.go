package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ezrec/appmon/config"
	"github.com/ezrec/appmon/crashlog"
	"github.com/ezrec/appmon/monitor"
	"github.com/ezrec/appmon/nvram"
	"github.com/ezrec/appmon/scenario"
	"github.com/ezrec/appmon/watchdog"
)

// Built-in scenario, matching the original demo: heartbeat and count
// each iteration, then stop servicing the watchdog.
const defaultScenario = `
END_OF_THE_WORLD = 15

def loop(n):
    alive()
    set_data(n)
    if n == END_OF_THE_WORLD:
        log("the end is here")
        hang()
`

func main() {
	var conf string
	var image string
	var script string
	var verbose bool

	flag.StringVar(&conf, "c", "", ".yaml run configuration")
	flag.StringVar(&image, "n", "", "NVRAM image file (overrides configuration)")
	flag.StringVar(&script, "x", "", ".star scenario file (overrides configuration)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := config.Default()
	if len(conf) != 0 {
		var err error
		cfg, err = config.LoadFile(conf)
		if err != nil {
			log.Fatalf("%v: %v", conf, err)
		}
	}
	if len(image) != 0 {
		cfg.Image = image
	}
	if len(script) != 0 {
		cfg.Scenario = script
	}

	memory := nvram.NewMemory(cfg.MemorySize)
	if inf, err := os.Open(cfg.Image); err == nil {
		err = memory.Unmarshal(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", cfg.Image, err)
		}
	}

	// The call stack is written by the loop below and read by the trap
	// path only once the loop has stopped touching it.
	stack := watchdog.NewCallStack(watchdog.STACK_SIZE, crashlog.PC_SIZE)

	reset := make(chan struct{})
	dog := &watchdog.Timer{
		Verbose: verbose,
		Context: stack,
		OnReset: func() { close(reset) },
	}

	mon, err := monitor.NewMonitor(memory, dog, cfg.BaseAddress, cfg.MaxEntries)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	mon.Verbose = verbose
	dog.OnTrap = mon.WatchdogTrap

	// Show what the previous run left behind.
	mon.Dump(os.Stdout, false)

	var sc *scenario.Scenario
	if len(cfg.Scenario) != 0 {
		sc, err = scenario.Load(cfg.Scenario, nil, mon)
	} else {
		sc, err = scenario.Load("builtin", defaultScenario, mon)
	}
	if err != nil {
		log.Fatalf("%v: %v", cfg.Scenario, err)
	}
	sc.Verbose = verbose

	err = sc.Setup()
	if err != nil {
		log.Fatal(err)
	}

	mon.Arm(cfg.WatchdogTimeout())

	for n := 0; n < cfg.Iterations && !sc.Hung(); n++ {
		stack.Reset()
		stack.PushReturn(uint32(n + 1))

		err = sc.Step(n)
		if err != nil {
			log.Fatal(err)
		}

		time.Sleep(cfg.Step())
	}

	if sc.Hung() {
		// Wait out the trap and the reset, as the hardware would.
		<-reset
		log.Printf("%v: watchdog reset", os.Args[0])
	} else {
		mon.Disarm()
	}

	ouf, err := os.Create(cfg.Image)
	if err != nil {
		log.Fatalf("%v: %v", cfg.Image, err)
	}
	defer ouf.Close()

	err = memory.Marshal(ouf)
	if err != nil {
		log.Fatalf("%v: %v", cfg.Image, err)
	}
}
