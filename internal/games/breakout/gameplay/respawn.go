package gameplay

import (
	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
)

// LivesRespawnCoordinator owns the life count and the respawn schedule. Each
// respawn runs Waiting, Growing and Settling before the next queued one
// starts.
type LivesRespawnCoordinator struct {
	s *Session
}

// NewLivesRespawnCoordinator creates a coordinator bound to a session.
func NewLivesRespawnCoordinator(s *Session) *LivesRespawnCoordinator {
	return &LivesRespawnCoordinator{s: s}
}

// HandleLoss consumes ball-lost signals: the ball and paddle go away, a life
// is taken and a respawn is queued.
func (c *LivesRespawnCoordinator) HandleLoss() {
	s := c.s
	for _, lost := range s.Bus.BallLost.Items() {
		s.World.Despawn(lost.Ball)
		if s.GameOver || s.Finished {
			continue
		}
		s.World.DespawnKind(physics.KindPaddle)
		s.Lives.set(s.Lives.Remaining - 1)
		s.Respawn.Queue = append(s.Respawn.Queue, LostBallRecord{Pos: lost.Pos})
		s.Logger.Debug("ball lost", "lives", s.Lives.Remaining, "queued", len(s.Respawn.Queue))

		if s.Lives.Remaining == 0 {
			c.gameOver()
			continue
		}
		if s.Respawn.Pending == nil {
			c.startNext()
		}
	}
}

// ApplyAwards adds awarded lives up to the configured maximum.
func (c *LivesRespawnCoordinator) ApplyAwards() {
	s := c.s
	for _, a := range s.Bus.LifeAwarded.Items() {
		if s.GameOver {
			return
		}
		n := s.Lives.Remaining + a.Amount
		if n > s.Settings.MaxLives {
			n = max(s.Settings.MaxLives, s.Lives.Remaining)
		}
		s.Lives.set(n)
	}
}

// Recover reacts to the lives watcher. Out of lives ends the game; otherwise
// a cleared field with nothing scheduled gets a respawn that costs no life.
func (c *LivesRespawnCoordinator) Recover() {
	s := c.s
	if s.Lives.Remaining == 0 {
		c.gameOver()
		return
	}
	if s.Bus.BallsCleared.Len() == 0 {
		return
	}
	if s.Respawn.Busy() || s.Advance.Active() || s.GameOver || s.Finished {
		return
	}
	s.Respawn.Queue = append(s.Respawn.Queue, LostBallRecord{Recovery: true})
}

func (c *LivesRespawnCoordinator) gameOver() {
	s := c.s
	if s.GameOver {
		return
	}
	s.GameOver = true
	s.Respawn.Pending = nil
	s.Overlay = Overlay{}
	s.World.DespawnKind(physics.KindPaddle)
	s.World.DespawnKind(physics.KindBall)
	s.Bus.GameOver.Emit(GameOver{Score: s.Score.Current, Level: s.Level.Number})
	s.Logger.Info("game over", "score", s.Score.Current, "level", s.Level.Number)
}

func (c *LivesRespawnCoordinator) startNext() bool {
	s := c.s
	if len(s.Respawn.Queue) == 0 {
		return false
	}
	rec := s.Respawn.Queue[0]
	s.Respawn.Queue = s.Respawn.Queue[1:]
	s.Respawn.Pending = &ActiveRespawn{Record: rec, Phase: PhaseWaiting}
	s.Overlay = Overlay{Visible: true}
	return true
}

// Advance drives the running respawn. It runs after the level controller so
// its paddle and ball writes win within a tick.
func (c *LivesRespawnCoordinator) Advance(dt float64) {
	s := c.s
	if s.GameOver || s.Finished {
		return
	}
	if s.Respawn.Pending == nil && !c.startNext() {
		return
	}

	r := s.Respawn.Pending
	switch r.Phase {
	case PhaseWaiting:
		r.Elapsed += dt
		frac := fraction(r.Elapsed, s.Settings.RespawnDelay)
		s.Overlay = Overlay{Visible: true, Opacity: frac}
		if frac >= 1 {
			c.enterGrowing(r)
		}
	case PhaseGrowing:
		r.Elapsed += dt
		frac := fraction(r.Elapsed, s.Settings.RespawnGrowth)
		if !s.World.Exists(r.Ball) {
			r.Ball = s.spawnBall(s.Spawns.Ball, true)
		}
		if p, ok := s.World.Get(r.Paddle); ok {
			p.Scale = growthScale(s.Settings.InitialPaddleScale, frac)
		}
		s.World.SetVelocity(r.Ball, physics.Zero)
		s.Overlay = Overlay{Visible: true, Opacity: 1 - frac}
		if frac >= 1 {
			r.Phase = PhaseSettling
		}
	case PhaseSettling:
		s.Overlay = Overlay{}
		if p, ok := s.World.Get(r.Paddle); ok {
			p.Locked = false
			p.Scale = 1
		}
		s.launchBall(r.Ball)
		s.Respawn.Pending = nil
	}
}

func (c *LivesRespawnCoordinator) enterGrowing(r *ActiveRespawn) {
	s := c.s
	s.World.DespawnKind(physics.KindPaddle)
	r.Paddle = s.spawnPaddle(s.Spawns.Paddle, s.Settings.InitialPaddleScale, true)
	r.Ball = s.spawnBall(s.Spawns.Ball, true)
	r.Phase = PhaseGrowing
	r.Elapsed = 0
	s.Overlay = Overlay{Visible: true, Opacity: 1}
}

// Discard drops the running respawn and the queue.
func (c *LivesRespawnCoordinator) Discard() {
	c.s.Respawn = RespawnSchedule{}
}

// ResetLives restores the starting life count.
func (c *LivesRespawnCoordinator) ResetLives() {
	c.s.Lives.set(c.s.Settings.StartLives)
}

// fraction returns elapsed/total clamped to [0, 1]; a non-positive total is
// already complete.
func fraction(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return clamp01(elapsed / total)
}
