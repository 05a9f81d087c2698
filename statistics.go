package c4uct

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Statistics records the running totals of every agent after each game.
type Statistics struct {
	Creation []string
	Wins     map[string][]float32
	Losses   map[string][]float32
	Draws    map[string][]float32
}

func makeStatistics() Statistics {
	return Statistics{
		Creation: make([]string, 0, 2),
		Wins:     make(map[string][]float32),
		Losses:   make(map[string][]float32),
		Draws:    make(map[string][]float32),
	}
}

func (s *Statistics) update(agents ...*Agent) {
	for _, A := range agents {
		name := A.Name()
		if _, ok := s.Wins[name]; !ok {
			s.Creation = append(s.Creation, name)
		}

		A.Lock()
		s.Wins[name] = append(s.Wins[name], A.Wins)
		s.Losses[name] = append(s.Losses[name], A.Loss)
		s.Draws[name] = append(s.Draws[name], A.Draw)
		A.Unlock()
	}
}

// Dump writes the statistics as a CSV file: one row per agent per game.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"agent", "game", "wins", "losses", "draws", "winrate"}); err != nil {
		return errors.WithStack(err)
	}
	var records [][]string
	for _, agent := range s.Creation {
		for j, win := range s.Wins[agent] {
			loss, draw := s.Losses[agent][j], s.Draws[agent][j]
			winRate := win / (win + loss + draw)
			records = append(records, []string{
				agent,
				strconv.Itoa(j),
				strconv.FormatFloat(float64(win), 'f', 0, 32),
				strconv.FormatFloat(float64(loss), 'f', 0, 32),
				strconv.FormatFloat(float64(draw), 'f', 0, 32),
				strconv.FormatFloat(float64(winRate), 'f', 3, 32),
			})
		}
	}
	if err := w.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	w.Flush()
	return errors.WithStack(w.Error())
}
