package symgo_test

import (
	"fmt"
	"log"
	"strings"

	symgo "github.com/hupe1980/symgo"
	"github.com/hupe1980/symgo/testutil"
)

// ExampleNewSearcher builds a plain depth-first stack and schedules two
// states.
func ExampleNewSearcher() {
	s, err := symgo.NewSearcher(nil, nil, symgo.Config{Searcher: "dfs"})
	if err != nil {
		log.Fatal(err)
	}

	a, b := testutil.NewState(1), testutil.NewState(2)
	s.Update(nil, testutil.StateSlice(a, b), nil)

	fmt.Println(s.SelectState().ID())
	// Output: 2
}

// ExampleLoadConfig decodes a scheduling configuration from YAML.
func ExampleLoadConfig() {
	cfg, err := symgo.LoadConfig(strings.NewReader(`
searcher: covnew
use_batching: true
batch_time: 250ms
batch_instructions: 500
`))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(cfg.Searcher, cfg.BatchInstructions)
	// Output: covnew 500
}
