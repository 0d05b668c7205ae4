package chess

import "encoding/json"

// Snapshot is the wire and storage form of a Game.
type Snapshot struct {
	TeamTurn Color   `json:"teamTurn"`
	Board    Board   `json:"board"`
	GameOver bool    `json:"gameOver"`
	Outcome  Outcome `json:"outcome,omitempty"`
	Winner   *Color  `json:"winner,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		TeamTurn: g.turn,
		Board:    g.board,
		GameOver: g.over,
		Outcome:  g.outcome,
	}
	if w, ok := g.Winner(); ok {
		s.Winner = &w
	}
	return s
}

func (g *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*g = Game{
		board:   s.Board,
		turn:    s.TeamTurn,
		over:    s.GameOver,
		outcome: s.Outcome,
	}
	if s.Winner != nil {
		g.winner = *s.Winner
	}
	return nil
}
