package blocks

import (
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/config"
)

func TestSimulateDeterministic(t *testing.T) {
	cfg := config.DefaultBlocksConfig()

	a, err := Simulate(cfg, 2024, 3000, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	b, err := Simulate(cfg, 2024, 3000, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if a != b {
		t.Errorf("equal seeds gave different results:\n%+v\n%+v", a, b)
	}

	if a.Landed == 0 || a.Commands == 0 {
		t.Errorf("simulation looks idle: %+v", a)
	}
	if a.Score > a.BestScore {
		t.Errorf("final score %d exceeds best score %d", a.Score, a.BestScore)
	}
	if rows := strings.Split(a.Board, "\n"); len(rows) != 20 || len(rows[0]) != 10 {
		t.Errorf("board has wrong shape:\n%s", a.Board)
	}
}

func TestSimulateZeroTicks(t *testing.T) {
	res, err := Simulate(config.DefaultBlocksConfig(), 1, 0, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if res.Landed != 0 || res.Score != 0 || res.Commands != 0 {
		t.Errorf("zero ticks should do nothing, got %+v", res)
	}
}

func TestSimulateErrors(t *testing.T) {
	if _, err := Simulate(config.DefaultBlocksConfig(), 1, -1, nil); err == nil {
		t.Error("negative ticks should fail")
	}

	cfg := config.DefaultBlocksConfig()
	cfg.Grid.Cols = 2
	if _, err := Simulate(cfg, 1, 10, nil); err == nil {
		t.Error("a grid narrower than the pieces should fail")
	}
}

func TestSimulateResets(t *testing.T) {
	cfg := oneWellConfig()
	res, err := Simulate(cfg, 1, 50, nil)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if res.Resets == 0 {
		t.Errorf("a 3x3 well of O pieces should fill up within 50 ticks: %+v", res)
	}
}
