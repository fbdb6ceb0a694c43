package component

// ScoreBoard holds the running score.
type ScoreBoard struct {
	Left  int
	Right int
}

// Award adds a point to side.
func (s *ScoreBoard) Award(side Side) {
	if s == nil {
		return
	}
	if side == SideRight {
		s.Right++
		return
	}
	s.Left++
}

var ScoreBoardComponent = NewComponent[ScoreBoard]()

// ScoreText places one side's counter relative to the top middle of the
// screen.
type ScoreText struct {
	Side    Side
	OffsetX float64
	OffsetY float64
	Size    float64
}

var ScoreTextComponent = NewComponent[ScoreText]()
