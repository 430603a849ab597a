// Command huecore is a thin CLI over the resource graph and control
// dispatcher: pair with a bridge, list and search what it knows about,
// and push state at lights, rooms, and scenes.
//
// Usage:
//
//	huecore discover
//	huecore pair [--ip 192.168.1.10] [--name instance]
//	huecore lights
//	huecore devices
//	huecore search <name>
//	huecore light <id> [--on|--off] [--bri 50] [--mirek 366] [--x 0.45 --y 0.41] [--transition 400]
//	huecore room <id>  [--on|--off] [--bri 50] [--mirek 366] [--x 0.45 --y 0.41] [--transition 400]
//	huecore scene <id>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fennwald/huecore/internal/bridge"
	"github.com/fennwald/huecore/internal/classify"
	"github.com/fennwald/huecore/internal/control"
	"github.com/fennwald/huecore/internal/graph"
	"github.com/fennwald/huecore/internal/infrastructure/config"
	"github.com/fennwald/huecore/internal/infrastructure/logging"
	"github.com/fennwald/huecore/internal/resource"
)

// Version information - set at build time via ldflags.
var version = "dev"

// Default configuration file path, overridable via HUECORE_CONFIG.
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to the subcommand, separated from main so exit codes are
// handled in exactly one place.
func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "discover":
		return runDiscover(ctx)
	case "pair":
		return runPair(ctx, rest)
	case "lights":
		return runLights(ctx)
	case "devices":
		return runDevices(ctx)
	case "search":
		return runSearch(ctx, rest)
	case "light":
		return runLight(ctx, rest)
	case "room":
		return runRoom(ctx, rest)
	case "scene":
		return runScene(ctx, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: huecore <command> [args]

Commands:
  discover              find a bridge on the local network
  pair                  press the link button, then mint credentials
  lights                detailed light listing
  devices               classified device listing
  search <name>         find lights/rooms/zones/scenes by name
  light <id> [flags]    set light state
  room <id> [flags]     set room/zone state
  scene <id>            activate a scene`)
}

// session bundles everything a graph-backed subcommand needs: config,
// logger, authenticated client, and a freshly built graph.
type session struct {
	cfg    *config.Config
	log    *logging.Logger
	client *bridge.Client
	snap   *resource.Snapshot
	graph  *graph.Graph
}

func newSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log := logging.New(cfg.Logging, version)

	client, err := bridge.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating bridge client: %w", err)
	}
	client.SetLogger(log.Logger)

	store := resource.NewStore(client)
	snap, err := store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}

	return &session{
		cfg:    cfg,
		log:    log,
		client: client,
		snap:   snap,
		graph:  graph.Build(snap),
	}, nil
}

func (s *session) dispatcher() *control.Dispatcher {
	d := control.NewDispatcher(s.client, s.graph, s.cfg.Dispatch.Concurrency)
	d.SetLogger(s.log.Logger)
	return d
}

func configPath() string {
	if path := os.Getenv("HUECORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

func runDiscover(ctx context.Context) error {
	ip, err := bridge.Discover(ctx)
	if err != nil {
		return err
	}
	return printJSON(map[string]string{"ip": ip})
}

func runPair(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pair", flag.ContinueOnError)
	ip := fs.String("ip", "", "bridge IP (discovered when empty)")
	name := fs.String("name", "cli", "instance name for the credential")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *ip == "" {
		discovered, err := bridge.Discover(ctx)
		if err != nil {
			return err
		}
		*ip = discovered
	}

	creds, err := bridge.Pair(ctx, *ip, *name)
	if err != nil {
		return err
	}

	// Persist: existing config if present, defaults otherwise.
	cfg, err := config.Load(configPath())
	if err != nil {
		cfg = config.Default()
	}
	cfg.Bridge.IP = *ip
	cfg.Bridge.ApplicationKey = creds.ApplicationKey
	cfg.Bridge.ClientKey = creds.ClientKey
	if err := config.Save(cfg, configPath()); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	return printJSON(map[string]string{
		"ip":              *ip,
		"application_key": creds.ApplicationKey,
	})
}

func runLights(ctx context.Context) error {
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	return printJSON(s.graph.LightDetails())
}

// deviceView is one row of the classified device listing.
type deviceView struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Category     classify.Category     `json:"category"`
	Product      string                `json:"product,omitempty"`
	ModelID      string                `json:"model_id,omitempty"`
	Capabilities []classify.Capability `json:"capabilities,omitempty"`
	Rooms        []string              `json:"rooms,omitempty"`
}

func runDevices(ctx context.Context) error {
	s, err := newSession(ctx)
	if err != nil {
		return err
	}

	views := make([]deviceView, 0, len(s.snap.Devices))
	for _, d := range s.snap.Devices {
		services, _ := s.graph.Capabilities(d.ID)
		views = append(views, deviceView{
			ID:   d.ID,
			Name: d.Metadata.Name,
			Category: classify.Classify(classify.Input{
				ProductArchetype: d.ProductData.ProductArchetype,
				UserArchetype:    d.Metadata.Archetype,
				ModelID:          d.ProductData.ModelID,
				Services:         services,
			}),
			Product:      d.ProductData.ProductName,
			ModelID:      d.ProductData.ModelID,
			Capabilities: classify.Capabilities(services),
			Rooms:        s.graph.RoomNames(d.ID),
		})
	}
	return printJSON(views)
}

func runSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("search: missing name argument")
	}
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	return printJSON(s.graph.SearchByName(args[0]))
}

func runLight(ctx context.Context, args []string) error {
	id, state, err := parseStateArgs("light", args)
	if err != nil {
		return err
	}
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	dispatch, err := s.dispatcher().ControlLight(ctx, id, state)
	return printDispatch(dispatch, err)
}

func runRoom(ctx context.Context, args []string) error {
	id, state, err := parseStateArgs("room", args)
	if err != nil {
		return err
	}
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	dispatch, err := s.dispatcher().ControlRoom(ctx, id, state)
	return printDispatch(dispatch, err)
}

func runScene(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("scene: missing id argument")
	}
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	dispatch, err := s.dispatcher().ActivateScene(ctx, args[0])
	return printDispatch(dispatch, err)
}

// parseStateArgs parses `<id> [state flags]` into a desired-state
// document containing only the flags the user actually passed.
func parseStateArgs(cmd string, args []string) (string, control.State, error) {
	var state control.State
	if len(args) == 0 {
		return "", state, fmt.Errorf("%s: missing id argument", cmd)
	}
	id := args[0]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	on := fs.Bool("on", false, "turn on")
	off := fs.Bool("off", false, "turn off")
	bri := fs.Float64("bri", 0, "brightness percent (0-100)")
	mirek := fs.Int("mirek", 0, "color temperature in mirek")
	x := fs.Float64("x", 0, "CIE x coordinate")
	y := fs.Float64("y", 0, "CIE y coordinate")
	transition := fs.Int("transition", 0, "transition duration in ms")
	if err := fs.Parse(args[1:]); err != nil {
		return "", state, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["on"] && set["off"] {
		return "", state, fmt.Errorf("%s: --on and --off are mutually exclusive", cmd)
	}
	if set["x"] != set["y"] {
		return "", state, fmt.Errorf("%s: --x and --y must be given together", cmd)
	}

	if set["on"] {
		v := *on
		state.On = &v
	}
	if set["off"] {
		v := !*off
		state.On = &v
	}
	if set["bri"] {
		state.Brightness = bri
	}
	if set["mirek"] {
		state.Mirek = mirek
	}
	if set["x"] {
		state.XY = &resource.XY{X: *x, Y: *y}
	}
	if set["transition"] {
		state.TransitionMS = transition
	}

	return id, state, nil
}

// targetView is the printable form of one dispatch target.
type targetView struct {
	Type  resource.Type `json:"type"`
	ID    string        `json:"id"`
	OK    bool          `json:"ok"`
	Error string        `json:"error,omitempty"`
}

// printDispatch prints the per-target outcome and propagates the dispatch
// error, so a partial failure still shows which targets landed.
func printDispatch(dispatch control.Dispatch, dispatchErr error) error {
	views := make([]targetView, 0, len(dispatch.Targets))
	for _, t := range dispatch.Targets {
		v := targetView{Type: t.Type, ID: t.ID, OK: t.OK()}
		if t.Err != nil {
			v.Error = t.Err.Error()
		}
		views = append(views, v)
	}
	if err := printJSON(views); err != nil {
		return err
	}
	return dispatchErr
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
