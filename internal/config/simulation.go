package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
)

// Scenario names.
const (
	ScenarioHorde  = "horde"
	ScenarioPellet = "pellet"
)

// Simulation holds all configuration of the simulator.
type Simulation struct {
	LogLevel     string        `yaml:"log_level"`
	Scenario     string        `yaml:"scenario"`
	TickInterval time.Duration `yaml:"tick_interval"` // fixed step of the sim loop
	Seed         uint64        `yaml:"seed"`          // 0 picks a random seed
	MaxEpisodes  int           `yaml:"max_episodes"`  // 0 runs until interrupted

	Database  DatabaseConfig `yaml:"database"`
	Horde     Horde          `yaml:"horde"`
	Zombie    Zombie         `yaml:"zombie"`
	Gun       Gun            `yaml:"gun"`
	Agent     Agent          `yaml:"agent"`
	Placement Placement      `yaml:"placement"`
	Arena     Arena          `yaml:"arena"`
	Pellet    Pellet         `yaml:"pellet"`
}

// Horde holds population manager settings.
type Horde struct {
	TargetCount         int                `yaml:"target_count"`
	BatchSize           int                `yaml:"batch_size"`
	SpawnInterval       time.Duration      `yaml:"spawn_interval"` // stagger inside a batch
	BatchDelay          time.Duration      `yaml:"batch_delay"`    // wait between batches
	MaintenanceInterval time.Duration      `yaml:"maintenance_interval"`
	CullDistance        float64            `yaml:"cull_distance"`
	Separation          float64            `yaml:"separation"`
	SpawnPoints         []model.SpawnPoint `yaml:"spawn_points"`
}

// Zombie holds per-zombie stats.
type Zombie struct {
	MaxHealth        float64       `yaml:"max_health"`
	Speed            float64       `yaml:"speed"`
	Radius           float64       `yaml:"radius"`
	RetargetInterval time.Duration `yaml:"retarget_interval"`
	FlashDuration    time.Duration `yaml:"flash_duration"`
	DeathGrace       time.Duration `yaml:"death_grace"`
	DamageEffectTTL  time.Duration `yaml:"damage_effect_ttl"`
	DeathEffectTTL   time.Duration `yaml:"death_effect_ttl"`
}

// Gun holds weapon stats.
type Gun struct {
	Damage        float64       `yaml:"damage"`
	Spread        float64       `yaml:"spread"`
	Range         float64       `yaml:"range"`
	LaserDuration time.Duration `yaml:"laser_duration"`
	EffectTTL     time.Duration `yaml:"effect_ttl"`
	MuzzleHeight  float64       `yaml:"muzzle_height"`
}

// Rewards of the shooter agent.
type Rewards struct {
	Hit       float64 `yaml:"hit"`
	Miss      float64 `yaml:"miss"`
	ClearAll  float64 `yaml:"clear_all"`
	Collision float64 `yaml:"collision"`
}

// Agent holds shooter agent settings.
type Agent struct {
	Speed           float64 `yaml:"speed"`
	RotationSpeed   float64 `yaml:"rotation_speed"` // degrees per step at full input
	Radius          float64 `yaml:"radius"`
	DetectionRadius float64 `yaml:"detection_radius"`
	MaxObserved     int     `yaml:"max_observed"`
	ShotCooldown    int     `yaml:"shot_cooldown"` // steps
	ClearRadius     float64 `yaml:"clear_radius"`  // no zombie inside means the arena is clear
	MaxSteps        int     `yaml:"max_steps"`     // 0 = unlimited
	Rewards         Rewards `yaml:"rewards"`
}

// Placement holds rejection sampling settings.
type Placement struct {
	Attempts int `yaml:"attempts"`
}

// Arena describes the square walled floor centred at origin.
type Arena struct {
	HalfExtent    float64 `yaml:"half_extent"`
	WallThickness float64 `yaml:"wall_thickness"`
	WallHeight    float64 `yaml:"wall_height"`
}

// PelletRewards of the pellet scenario.
type PelletRewards struct {
	Pellet       float64 `yaml:"pellet"`
	AllCollected float64 `yaml:"all_collected"`
	Wall         float64 `yaml:"wall"`
	HunterCatch  float64 `yaml:"hunter_catch"`
	PreyCaught   float64 `yaml:"prey_caught"`
	HunterMissed float64 `yaml:"hunter_missed"`
	Timeout      float64 `yaml:"timeout"`
}

// Pellet holds pellet/prey/hunter arena settings.
type Pellet struct {
	Count         int           `yaml:"count"`
	HalfExtent    float64       `yaml:"half_extent"`
	Height        float64       `yaml:"height"`
	Separation    float64       `yaml:"separation"`
	PickupRadius  float64       `yaml:"pickup_radius"`
	CatchRadius   float64       `yaml:"catch_radius"`
	Speed         float64       `yaml:"speed"`
	RotationSpeed float64       `yaml:"rotation_speed"`
	EpisodeTime   time.Duration `yaml:"episode_time"`
	Rewards       PelletRewards `yaml:"rewards"`
}

// Default returns Simulation config with the stock arena layout.
func Default() Simulation {
	return Simulation{
		LogLevel:     "info",
		Scenario:     ScenarioHorde,
		TickInterval: 20 * time.Millisecond,
		Database:     DefaultDatabase(),
		Horde: Horde{
			TargetCount:         50,
			BatchSize:           5,
			SpawnInterval:       50 * time.Millisecond,
			BatchDelay:          500 * time.Millisecond,
			MaintenanceInterval: 200 * time.Millisecond,
			CullDistance:        100,
			Separation:          1,
			SpawnPoints: []model.SpawnPoint{
				model.NewSpawnPoint("north", geom.V(0, 0, 40), 60, 10),
				model.NewSpawnPoint("south", geom.V(0, 0, -40), 60, 10),
				model.NewSpawnPoint("east", geom.V(40, 0, 0), 10, 60),
				model.NewSpawnPoint("west", geom.V(-40, 0, 0), 10, 60),
			},
		},
		Zombie: Zombie{
			MaxHealth:        100,
			Speed:            5,
			Radius:           0.5,
			RetargetInterval: 100 * time.Millisecond,
			FlashDuration:    100 * time.Millisecond,
			DeathGrace:       100 * time.Millisecond,
			DamageEffectTTL:  time.Second,
			DeathEffectTTL:   2 * time.Second,
		},
		Gun: Gun{
			Damage:        25,
			Spread:        0.02,
			Range:         600,
			LaserDuration: 50 * time.Millisecond,
			EffectTTL:     time.Second,
			MuzzleHeight:  1,
		},
		Agent: Agent{
			Speed:           2,
			RotationSpeed:   2,
			Radius:          0.5,
			DetectionRadius: 15,
			MaxObserved:     5,
			ShotCooldown:    25,
			ClearRadius:     100,
			Rewards: Rewards{
				Hit:       30,
				Miss:      -1,
				ClearAll:  50,
				Collision: -15,
			},
		},
		Placement: Placement{Attempts: 10},
		Arena: Arena{
			HalfExtent:    50,
			WallThickness: 1,
			WallHeight:    3,
		},
		Pellet: Pellet{
			Count:         2,
			HalfExtent:    4,
			Height:        0.3,
			Separation:    5,
			PickupRadius:  0.5,
			CatchRadius:   0.6,
			Speed:         4,
			RotationSpeed: 4,
			EpisodeTime:   30 * time.Second,
			Rewards: PelletRewards{
				Pellet:       10,
				AllCollected: 5,
				Wall:         -15,
				HunterCatch:  10,
				PreyCaught:   13,
				HunterMissed: -5,
				Timeout:      -15,
			},
		},
	}
}

// Validate checks values the simulation cannot run with.
func (c Simulation) Validate() error {
	var errs []error

	if c.Scenario != ScenarioHorde && c.Scenario != ScenarioPellet {
		errs = append(errs, fmt.Errorf("unknown scenario %q", c.Scenario))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, errors.New("tick_interval must be positive"))
	}
	if c.Horde.TargetCount < 0 {
		errs = append(errs, errors.New("horde.target_count must not be negative"))
	}
	if c.Horde.BatchSize <= 0 {
		errs = append(errs, errors.New("horde.batch_size must be positive"))
	}
	if c.Horde.MaintenanceInterval <= 0 {
		errs = append(errs, errors.New("horde.maintenance_interval must be positive"))
	}
	if c.Zombie.MaxHealth <= 0 {
		errs = append(errs, errors.New("zombie.max_health must be positive"))
	}
	if c.Agent.MaxObserved < 0 {
		errs = append(errs, errors.New("agent.max_observed must not be negative"))
	}

	return errors.Join(errs...)
}
