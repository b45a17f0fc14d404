package kitchen

import "testing"

// testEpisode builds an episode from ASCII rows using the layout characters:
// space=floor, P=pot, X=counter, O/T/D=sources, S=serving, digits=start cells.
func testEpisode(t *testing.T, rows ...string) *Episode {
	t.Helper()
	cfg := testConfig(t, rows...)
	ep, err := NewEpisode(cfg)
	if err != nil {
		t.Fatalf("new episode: %v", err)
	}
	return ep
}

func testConfig(t *testing.T, rows ...string) Config {
	t.Helper()
	width := len(rows[0])
	height := len(rows)
	terrain := make([]Terrain, 0, width*height)
	starts := make([]int, 0, MaxPlayers)
	startByDigit := map[byte]int{}
	for y, row := range rows {
		if len(row) != width {
			t.Fatalf("ragged test grid: row %d has width %d, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			cell := y*width + x
			switch c := row[x]; c {
			case ' ':
				terrain = append(terrain, Floor)
			case 'P':
				terrain = append(terrain, Pot)
			case 'X':
				terrain = append(terrain, Counter)
			case 'O':
				terrain = append(terrain, OnionSource)
			case 'T':
				terrain = append(terrain, TomatoSource)
			case 'D':
				terrain = append(terrain, DishSource)
			case 'S':
				terrain = append(terrain, Serving)
			case '1', '2':
				terrain = append(terrain, Floor)
				startByDigit[c] = cell
			default:
				t.Fatalf("unknown test grid char %q", c)
			}
		}
	}
	for _, digit := range []byte{'1', '2'} {
		if cell, ok := startByDigit[digit]; ok {
			starts = append(starts, cell)
		}
	}

	cfg := Config{
		Width:                width,
		Height:               height,
		Terrain:              terrain,
		StartCells:           starts,
		PlacementInPotReward: 3,
		DishPickupReward:     3,
		SoupPickupReward:     5,
		Horizon:              400,
	}
	for i := range cfg.RecipeValues {
		cfg.RecipeValues[i] = 20
		cfg.RecipeTimes[i] = 20
	}
	return cfg
}

func mustStep(t *testing.T, ep *Episode, actions ...Action) StepResult {
	t.Helper()
	res, err := ep.Step(actions)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	return res
}

func cellAt(ep *Episode, x, y int) int {
	return y*ep.World.Width + x
}
