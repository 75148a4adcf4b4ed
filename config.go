package symgo

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from strings like "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the construction surface of the scheduling core. It selects
// the core policy and the wrappers layered around it.
//
// Searcher names: "dfs", "bfs", "random", "random-path", or a weight kind
// of the weighted random searcher ("depth", "icnt", "cpicnt",
// "query-cost", "md2u", "covnew", "patch-testing").
type Config struct {
	// Searcher is the core policy.
	Searcher string `yaml:"searcher"`

	// Interleave lists additional core policies round-robined with
	// Searcher. Empty means no interleaving.
	Interleave []string `yaml:"interleave,omitempty"`

	// UseBatching wraps the stack in a batching searcher with the two
	// budgets below.
	UseBatching       bool     `yaml:"use_batching"`
	BatchTime         Duration `yaml:"batch_time"`
	BatchInstructions uint64   `yaml:"batch_instructions"`

	// UseIterativeDeepening wraps the stack in an iterative deepening
	// time searcher.
	UseIterativeDeepening bool `yaml:"use_iterative_deepening"`

	// UseMerge / UseBumpMerge wrap the stack in the batch-merging or
	// bump-merging searcher. MergeFunction names the call target that
	// marks a merge point; DebugLogMerge enables merge tracing.
	UseMerge      bool   `yaml:"use_merge"`
	UseBumpMerge  bool   `yaml:"use_bump_merge"`
	MergeFunction string `yaml:"merge_function"`
	DebugLogMerge bool   `yaml:"debug_log_merge"`

	// SplitSearcher schedules recovery states separately from the
	// originating population. SplitRatio is the percentage of selections
	// granted to the recovery side when both are populated.
	// OptimizedSplit adds the high-priority recovery tier.
	SplitSearcher  bool `yaml:"split_searcher"`
	OptimizedSplit bool `yaml:"optimized_split"`
	SplitRatio     int  `yaml:"split_ratio"`

	// Seed seeds the random source when none is injected.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the configuration the original engine ships with:
// random-path selection, batching with a 5s / 10000-instruction budget,
// and a recovery split favoring depth-first draining of recovery states.
func DefaultConfig() Config {
	return Config{
		Searcher:          "random-path",
		UseBatching:       true,
		BatchTime:         Duration(5 * time.Second),
		BatchInstructions: 10000,
		MergeFunction:     "merge",
		SplitRatio:        75,
		Seed:              1,
	}
}

// LoadConfig decodes a Config from YAML. Unknown fields are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML Config from path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks the configuration for contradictions the factory would
// otherwise build a broken stack from.
func (c Config) Validate() error {
	if _, ok := coreSearcherNames[c.Searcher]; !ok {
		return &ErrUnknownSearcher{Name: c.Searcher}
	}
	for _, name := range c.Interleave {
		if _, ok := coreSearcherNames[name]; !ok {
			return &ErrUnknownSearcher{Name: name}
		}
	}
	if c.SplitRatio < 0 || c.SplitRatio > 100 {
		return &ErrInvalidRatio{Ratio: c.SplitRatio}
	}
	if c.UseBatching && c.BatchTime <= 0 && c.BatchInstructions == 0 {
		return &ErrInvalidBudget{}
	}
	if c.UseMerge || c.UseBumpMerge {
		// Merging relies on the wrapped searcher honoring state removal;
		// random-path removal is a no-op.
		if c.Searcher == "random-path" {
			return ErrMergeOverRandomPath
		}
		for _, name := range c.Interleave {
			if name == "random-path" {
				return ErrMergeOverRandomPath
			}
		}
	}
	return nil
}
