package gesture

// Mode 图表实例当前的交互模式，同一时刻只有一种
type Mode int

const (
	ModeNone Mode = iota
	ModePanning
	ModePinching
	ModeRubberBandZooming
	ModeMovingCursor
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModePanning:
		return "panning"
	case ModePinching:
		return "pinching"
	case ModeRubberBandZooming:
		return "rubber-band"
	case ModeMovingCursor:
		return "moving-cursor"
	}
	return "unknown"
}
