package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/tremor/audio"
	"github.com/lixenwraith/tremor/config"
	"github.com/lixenwraith/tremor/constant"
	"github.com/lixenwraith/tremor/core"
	"github.com/lixenwraith/tremor/engine"
	"github.com/lixenwraith/tremor/input"
	"github.com/lixenwraith/tremor/network"
	"github.com/lixenwraith/tremor/physics"
	"github.com/lixenwraith/tremor/render"
	"github.com/lixenwraith/tremor/storage"
	"github.com/lixenwraith/tremor/system"
)

var (
	configFlag   = flag.String("config", "", "YAML tuning file")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/tremor.log")
	dbFlag       = flag.String("db", "", "SQLite run history database")
	snapshotFlag = flag.String("snapshot", "", "Tower snapshot: loaded at start, saved on exit and on S")
	spectateFlag = flag.String("spectate", "", "Spectator feed listen address, e.g. :8080")
	colorFlag    = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	historyFlag  = flag.Int("history", 0, "Print the N highest runs from -db and exit")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	tuning := config.Default()
	if *configFlag != "" {
		t, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load tuning: %v\n", err)
			os.Exit(1)
		}
		tuning = t
	}
	tuning.ApplyEnv(os.Getenv)
	if *spectateFlag != "" {
		tuning.Spectator.Addr = *spectateFlag
	}

	if *historyFlag > 0 {
		if err := printHistory(*dbFlag, *historyFlag); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(tuning); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// printHistory lists the best recorded runs by peak height
func printHistory(path string, n int) error {
	store, err := storage.OpenRunStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Best(context.Background(), n)
	if err != nil {
		return err
	}
	for i, r := range runs {
		fmt.Printf("%2d. %s  height %7.1f  buildings %3d  joints %3d/%-3d broken  quakes %3d  $%d\n",
			i+1, r.StartedAt.Local().Format("2006-01-02 15:04"), r.PeakHeight,
			r.Buildings, r.Joints, r.JointsBroken, r.Quakes, r.Money)
	}
	return nil
}

// run owns the session: world, front end, optional services, and the frame loop
func run(tuning config.Tuning) error {
	res := engine.NewResources(tuning, rand.New(rand.NewSource(time.Now().UnixNano())))
	res.Stats.RunID = uuid.NewString()
	res.Stats.Started = time.Now()

	world := engine.NewWorld(res)
	space := physics.NewSpace(physics.ParamsFromTuning(tuning.Physics))
	loadWorld(world, space, *snapshotFlag)

	// Audio degrades to silence
	var sounds *audio.SoundManager
	var player system.SoundPlayer
	if tuning.Audio.Enabled {
		sounds = audio.NewSoundManager(tuning.Audio.MasterVolume)
		if err := sounds.Initialize(); err != nil {
			log.Printf("audio disabled: %v", err)
			sounds = nil
		} else {
			defer sounds.Cleanup()
			player = sounds
		}
	}

	var store *storage.RunStore
	var recorder system.RunRecorder
	if *dbFlag != "" {
		s, err := storage.OpenRunStore(*dbFlag)
		if err != nil {
			log.Printf("run history disabled: %v", err)
		} else {
			store = s
			recorder = s
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *network.Hub
	var publisher system.FramePublisher
	if addr := tuning.Spectator.Addr; addr != "" {
		hub = network.NewHub(res.Stats.RunID)
		publisher = hub
		core.Go(func() { hub.Run(ctx) })
		core.Go(func() {
			if err := network.Serve(ctx, addr, hub); err != nil {
				log.Printf("spectator: %v", err)
			}
		})
	}

	// Frame phase
	world.AddSystem(system.NewCursorSystem(world))
	world.AddSystem(system.NewToolSystem(world))
	world.AddSystem(system.NewPlacementSystem(world))
	world.AddSystem(system.NewJointSystem(world, space))
	world.AddSystem(system.NewCursorTextSystem(world))
	world.AddSystem(system.NewMoneyVisualSystem(world))
	world.AddSystem(system.NewAudioSystem(world, player))
	world.AddSystem(system.NewSpectatorSystem(world, publisher))

	// Fixed phase
	world.AddFixedSystem(system.NewBuildSystem(world, space))
	world.AddFixedSystem(system.NewEarthquakeSystem(world))
	world.AddFixedSystem(system.NewPhysicsSystem(world, space))
	world.AddFixedSystem(system.NewInhabitantSystem(world))
	world.AddFixedSystem(system.NewStatsSystem(world, recorder))
	snapshots := system.NewSnapshotSystem(world, *snapshotFlag).(*system.SnapshotSystem)
	world.AddFixedSystem(snapshots)

	scheduler := engine.NewClockScheduler(world, constant.FixedStep, constant.MaxFixedSteps)

	screen, err := newScreen(*colorFlag)
	if err != nil {
		return err
	}
	core.SetCrashCleanup(screen.Fini)

	width, height := screen.Size()
	res.Camera.Fit(width, height)

	loop(screen, world, scheduler, sounds, hub)
	screen.Fini()

	// Final run row and snapshot are written synchronously
	ended := time.Now()
	if store != nil {
		recordCtx, recordCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.Record(recordCtx, system.RunRow(world, ended)); err != nil {
			log.Printf("run history: %v", err)
		}
		recordCancel()
		if err := store.Close(); err != nil {
			log.Printf("run history: %v", err)
		}
	}
	// Waits for a save started by S
	if err := snapshots.Save(); err != nil {
		log.Printf("snapshot: %v", err)
	}
	log.Printf("run %s ended: money %d, peak %.1f", res.Stats.RunID, res.Player.Money, res.Stats.PeakHeight)
	return nil
}

// loadWorld restores the snapshot at path, falling back to a fresh tower
func loadWorld(world *engine.World, space *physics.Space, path string) {
	if path != "" {
		snap, err := storage.LoadSnapshot(path)
		if err == nil {
			system.RestoreWorld(world, space, snap)
			log.Printf("snapshot: restored %d buildings from %s", len(snap.Buildings), path)
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("snapshot: %v; starting fresh", err)
		}
	}
	system.SpawnWorld(world, space)
}

// newScreen initializes the terminal with mouse reporting
func newScreen(colorMode string) (tcell.Screen, error) {
	switch colorMode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// loop polls input and advances the simulation once per frame until the player quits
func loop(screen tcell.Screen, world *engine.World, scheduler *engine.ClockScheduler, sounds *audio.SoundManager, hub *network.Hub) {
	handler := input.NewHandler(world.Resources)
	renderer := render.NewRenderer(screen)

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	core.Go(func() { pollEvents(screen, eventChan, done) })

	ticker := time.NewTicker(constant.FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			if !handler.HandleEvent(ev) {
				return
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}

		case now := <-ticker.C:
			scheduler.Advance(now.Sub(last))
			last = now

			var status render.Status
			if sounds != nil {
				status.Muted = sounds.IsMuted()
			}
			if hub != nil {
				status.Spectators = hub.ClientCount()
			}
			renderer.RenderFrame(world, status)
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized or done is closed
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}
