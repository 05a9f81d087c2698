package mcts

import "github.com/gorgonia/c4uct/game"

// mockState is a game where the same moves are legal at every ply and the game ends after length plies.
type mockState struct {
	player game.Player
	moves  []game.Single
	played []game.Single
	length int
	result game.Result

	legalWhenEnded bool  // report moves even after the game has ended
	err            error // returned by every Apply
}

func (m *mockState) LegalActions() []game.Single {
	if m.Ended() && !m.legalWhenEnded {
		return nil
	}
	return m.moves
}

func (m *mockState) ToMove() game.Player  { return m.player }
func (m *mockState) Board() []game.Colour { return nil }
func (m *mockState) Ended() bool          { return len(m.played) >= m.length }
func (m *mockState) Result() game.Result  { return m.result }

func (m *mockState) Apply(move game.Single) error {
	if m.err != nil {
		return m.err
	}
	m.played = append(m.played, move)
	m.player = m.player.Opponent()
	return nil
}

func (m *mockState) Clone() game.State {
	retVal := *m
	retVal.played = append([]game.Single(nil), m.played...)
	return &retVal
}

// scriptedChooser replays a fixed sequence of choices, wrapped into range.
type scriptedChooser struct {
	seq   []int
	calls int
}

func (s *scriptedChooser) Intn(n int) int {
	var v int
	if len(s.seq) > 0 {
		v = s.seq[s.calls%len(s.seq)] % n
	}
	s.calls++
	return v
}
