package main

import (
	"fmt"
	"os"

	"github.com/df-mc/dragonfly/server/block/cube"
	dfworld "github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesim/entity"
	"github.com/oomph-ac/movesim/game"
	"github.com/oomph-ac/movesim/movement"
	"github.com/oomph-ac/movesim/world"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// drag is applied to the vertical velocity of every actor after each tick.
const drag = 0.98

// Scenario describes a world and the actors moving through it.
type Scenario struct {
	Seed    int64   `yaml:"seed"`
	Ticks   int     `yaml:"ticks"`
	Gravity float64 `yaml:"gravity"`

	Load struct {
		From [3]int `yaml:"from"`
		To   [3]int `yaml:"to"`
	} `yaml:"load"`
	Border *struct {
		Center [2]float64 `yaml:"center"`
		Size   float64    `yaml:"size"`
	} `yaml:"border"`

	Blocks []BlockFill     `yaml:"blocks"`
	Actors []ActorScenario `yaml:"actors"`
}

// BlockFill fills the cuboid between From and To with a single block.
type BlockFill struct {
	Name       string         `yaml:"name"`
	Properties map[string]any `yaml:"properties"`
	From       [3]int         `yaml:"from"`
	To         [3]int         `yaml:"to"`
}

// ActorScenario is a single actor of a scenario. Walk is the horizontal displacement requested every tick.
type ActorScenario struct {
	ID       uint64     `yaml:"id"`
	Kind     string     `yaml:"kind"`
	Class    string     `yaml:"class"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Walk     [2]float64 `yaml:"walk"`
	Sneaking bool       `yaml:"sneaking"`
	Rides    uint64     `yaml:"rides"`
	Leash    uint64     `yaml:"leash"`
}

// LoadScenario reads a scenario from the YAML file at path.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("error reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario from YAML.
func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("error decoding scenario: %w", err)
	}
	if s.Ticks <= 0 {
		s.Ticks = 20
	}
	return s, nil
}

// actor is an actor of a running simulation.
type actor struct {
	body  *movement.Body
	class movement.MoverClass
	walk  mgl64.Vec3
}

// simulation runs a scenario tick by tick.
type simulation struct {
	scenario Scenario
	world    *world.World
	tracker  *entity.Tracker
	engine   *movement.Engine
	actors   []*actor
	log      logrus.FieldLogger
}

// newSimulation builds the world and actors of the scenario passed.
func newSimulation(sc Scenario, opts movement.Options, stepHeight float64, submit func(func()), log logrus.FieldLogger) (*simulation, error) {
	w := world.New(log)
	w.LoadArea(cube.Pos(sc.Load.From), cube.Pos(sc.Load.To))
	for _, fill := range sc.Blocks {
		b, ok := dfworld.BlockByName(fill.Name, blockProperties(fill.Properties))
		if !ok {
			return nil, fmt.Errorf("unknown block %s %v", fill.Name, fill.Properties)
		}
		w.Fill(cube.Pos(fill.From), cube.Pos(fill.To), b)
	}
	if sc.Border != nil {
		w.SetBorder(&game.Border{Center: mgl64.Vec2(sc.Border.Center), Size: sc.Border.Size})
	}

	sim := &simulation{
		scenario: sc,
		world:    w,
		tracker:  entity.NewTracker(),
		engine:   movement.NewEngine(submit),
		log:      log,
	}
	in := movement.NewIntegrator(w, sim.tracker, opts, log)

	for _, a := range sc.Actors {
		kind, ok := entity.KindByName(a.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown actor kind %s", a.Kind)
		}
		class, err := parseClass(a.Class)
		if err != nil {
			return nil, err
		}
		pos := mgl64.Vec3(a.Position)
		sim.tracker.Add(entity.NewEntity(a.ID, kind, pos))

		s := movement.NewState(a.ID, kind, pos)
		s.Vel = mgl64.Vec3(a.Velocity)
		s.Sneaking = a.Sneaking
		if stepHeight > 0 {
			s.StepHeight = stepHeight
		}
		sim.actors = append(sim.actors, &actor{
			body:  movement.NewBody(in, s, sc.Seed),
			class: class,
			walk:  mgl64.Vec3{a.Walk[0], 0, a.Walk[1]},
		})
	}
	for _, a := range sc.Actors {
		if a.Rides != 0 {
			if err := sim.tracker.Mount(a.ID, a.Rides); err != nil {
				return nil, err
			}
		}
		if a.Leash != 0 {
			if err := sim.tracker.Leash(a.ID, a.Leash); err != nil {
				return nil, err
			}
		}
	}
	return sim, nil
}

// tick moves every actor once and returns the results in actor order.
func (sim *simulation) tick() []movement.MoveResult {
	reqs := make([]movement.MoveRequest, 0, len(sim.actors))
	for _, a := range sim.actors {
		a.body.UpdateFluids()
		s := a.body.State()
		s.Vel[1] -= sim.scenario.Gravity
		reqs = append(reqs, movement.MoveRequest{
			Body:         a.body,
			Displacement: a.walk.Add(s.Vel),
			Class:        a.class,
		})
	}

	results := sim.engine.MoveAll(reqs)
	for i, a := range sim.actors {
		s := a.body.State()
		s.Vel[1] *= drag
		if e, ok := sim.tracker.Entity(s.ID); ok {
			e.Move(s.Pos)
		}
		sim.log.WithFields(logrus.Fields{
			"actor":    s.ID,
			"outcome":  results[i].Outcome,
			"position": results[i].Position,
			"ground":   s.Ground,
			"stepped":  results[i].Stepped,
		}).Debug("moved")
	}
	return results
}

// run runs every tick of the scenario and returns the results of the last one.
func (sim *simulation) run() []movement.MoveResult {
	var results []movement.MoveResult
	for range sim.scenario.Ticks {
		results = sim.tick()
	}
	return results
}

func parseClass(s string) (movement.MoverClass, error) {
	switch s {
	case "", "self":
		return movement.MoverSelf, nil
	case "player":
		return movement.MoverPlayer, nil
	case "piston":
		return movement.MoverPiston, nil
	case "shulker_box":
		return movement.MoverShulkerBox, nil
	case "shulker":
		return movement.MoverShulker, nil
	}
	return 0, fmt.Errorf("unknown mover class %q", s)
}

// blockProperties converts decoded YAML properties to the types block states are registered with.
func blockProperties(props map[string]any) map[string]any {
	m := make(map[string]any, len(props))
	for k, v := range props {
		switch v := v.(type) {
		case int:
			m[k] = int32(v)
		default:
			m[k] = v
		}
	}
	return m
}
