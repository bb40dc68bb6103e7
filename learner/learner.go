package learner

import (
	"time"

	"blackwhite/game"
	"blackwhite/meta"
	"blackwhite/qtable"
	"blackwhite/utils"

	"golang.org/x/exp/rand"
)

type Option func(l *Learner)

// Learner is a tabular Q-learning core: epsilon-greedy move selection over
// a Q-table and a one-step temporal-difference update. Reward shaping is
// delegated to a Shaper.
type Learner struct {
	table   *qtable.Table
	alpha   float64
	gamma   float64
	epsilon float64
	shaper  Shaper
	rng     *rand.Rand
	metrics Collector
}

func WithLearningRate(alpha float64) Option {
	return func(l *Learner) {
		if alpha > 0 && alpha <= 1 {
			l.alpha = alpha
		}
	}
}

func WithDiscount(gamma float64) Option {
	return func(l *Learner) {
		if gamma >= 0 && gamma <= 1 {
			l.gamma = gamma
		}
	}
}

// WithEpsilon sets the exploration rate. Zero makes the policy fully greedy.
func WithEpsilon(epsilon float64) Option {
	return func(l *Learner) {
		if epsilon >= 0 && epsilon <= 1 {
			l.epsilon = epsilon
		}
	}
}

func WithShaper(shaper Shaper) Option {
	return func(l *Learner) {
		if shaper != nil {
			l.shaper = shaper
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(l *Learner) {
		if rng != nil {
			l.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(l *Learner) {
		l.metrics = NewCollector()
	}
}

func New(table *qtable.Table, options ...Option) *Learner {
	if table == nil {
		panic("learner needs a q-table")
	}
	l := &Learner{ // Default values
		table:   table,
		alpha:   meta.LEARNING_RATE,
		gamma:   meta.DISCOUNT,
		epsilon: meta.EPSILON,
		shaper:  Default{},
		metrics: NewDummyCollector(),
	}
	for _, option := range options {
		option(l)
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return l
}

func (l *Learner) Table() *qtable.Table { return l.table }
func (l *Learner) Shaper() Shaper       { return l.shaper }
func (l *Learner) Metrics() Metrics     { return l.metrics.Snapshot() }

// Value returns the current estimate for playing m from b with p to move.
func (l *Learner) Value(b game.Board, p game.Player, m game.Move) float64 {
	return l.table.Get(game.KeyOf(b, p), m)
}

// SelectMove picks a move for p. With probability epsilon it is uniformly
// random, otherwise it is one of the highest valued moves with ties broken
// uniformly at random. It reports false when p has no legal move.
func (l *Learner) SelectMove(b game.Board, p game.Player) (game.Move, bool) {
	moves := game.LegalMoves(b, p)
	if len(moves) == 0 {
		return game.Move{}, false
	}

	if l.rng.Float64() < l.epsilon {
		l.metrics.AddExploration()
		return moves[l.rng.Intn(len(moves))], true
	}

	key := game.KeyOf(b, p)
	best, _ := utils.ArgMaxAll(moves, func(m game.Move) float64 {
		return l.table.Get(key, m)
	})
	l.metrics.AddExploitation(len(best) > 1)
	return best[l.rng.Intn(len(best))], true
}

// Record applies one temporal-difference update for a move made by mover,
// turning before into after. The reward is passed through the shaper first.
// The follow-up value is the best estimate over the opponent's moves from
// after, which is 0 when the opponent has none. It returns the reward that
// was applied and the new estimate.
func (l *Learner) Record(mover game.Player, before game.Board, m game.Move, reward float64, after game.Board) (applied, value float64) {
	applied = l.shaper.Shape(after, mover, reward)
	if applied != reward {
		l.metrics.AddShapedReward()
	}

	state := game.KeyOf(before, mover)
	next := mover.Opponent()
	future := l.MaxFuture(after, next)

	old := l.table.Get(state, m)
	value = Update(old, applied, future, l.alpha, l.gamma)
	l.table.Set(state, m, value)
	l.metrics.AddUpdate()
	return applied, value
}

// MaxFuture is the highest estimate over p's legal moves from b, or 0 when p
// cannot move.
func (l *Learner) MaxFuture(b game.Board, p game.Player) float64 {
	key := game.KeyOf(b, p)
	_, max := utils.ArgMaxAll(game.LegalMoves(b, p), func(m game.Move) float64 {
		return l.table.Get(key, m)
	})
	return max
}

// Update is the one-step temporal-difference rule
// old + alpha * (reward + gamma * future - old).
func Update(old, reward, future, alpha, gamma float64) float64 {
	return old + alpha*(reward+gamma*future-old)
}
