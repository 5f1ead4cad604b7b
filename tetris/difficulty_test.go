package tetris_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestDifficultyLevels(t *testing.T) {
	score := tetris.NewScoreCounter()
	delays := []time.Duration{1000 * ms, 800 * ms, 500 * ms}
	d := tetris.NewDifficulty(score, delays, 600)

	assert.Equal(t, 0, d.Level())
	assert.Equal(t, 1000*ms, d.GravityDelay())

	score.AddScore(599)
	assert.Equal(t, 0, d.Level())

	score.AddScore(1)
	assert.Equal(t, 1, d.Level())
	assert.Equal(t, 800*ms, d.GravityDelay())

	score.AddScore(100000)
	assert.Equal(t, 2, d.Level(), "level is clamped to the last table entry")
	assert.Equal(t, 500*ms, d.GravityDelay())

	delays[2] = time.Hour
	assert.Equal(t, 500*ms, d.GravityDelay(), "the table is copied")
}

func TestDifficultyIsNonIncreasing(t *testing.T) {
	score := tetris.NewScoreCounter()
	d := tetris.NewDifficulty(score, tetris.DefaultConfig().GravityDelays, 600)

	prev := d.GravityDelay()
	for range 20 {
		score.AddScore(300)
		cur := d.GravityDelay()
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestScoreCounterBest(t *testing.T) {
	s := tetris.NewScoreCounter()
	s.AddScore(300)
	s.Reset()
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 300, s.Best())

	s.AddScore(100)
	s.Reset()
	assert.Equal(t, 300, s.Best())
}
