package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/defistate/arb-engine/catalogue"
)

// loadBootstrapPools reads a JSON array of catalogue.Pool records. An empty
// path is valid and yields an empty snapshot: arbd then starts with an
// empty world, and since World.Update ignores pools the world was not built
// with, no cycles are found until arbd is started with a snapshot (bulk
// discovery is a separate service's job).
func loadBootstrapPools(path string) ([]catalogue.Pool, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bootstrap file %q: %w", path, err)
	}

	var pools []catalogue.Pool
	if err := json.Unmarshal(data, &pools); err != nil {
		return nil, fmt.Errorf("failed to parse bootstrap file %q: %w", path, err)
	}
	return pools, nil
}
