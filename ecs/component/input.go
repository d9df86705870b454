package component

// Input stores per-tick control state for an actor. JumpPressed is true only
// on the tick the button goes down.
type Input struct {
	MoveX       float64
	Down        bool
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()

// InputFrame holds one control state over the tick range [From, To].
type InputFrame struct {
	From  uint64  `yaml:"from"`
	To    uint64  `yaml:"to"`
	MoveX float64 `yaml:"move_x"`
	Jump  bool    `yaml:"jump"`
	Down  bool    `yaml:"down"`
}

// InputScript replays a timeline of frames into Input for headless runs.
type InputScript struct {
	Frames []InputFrame
	held   bool
}

// At merges every frame covering tick. Later frames win on MoveX.
func (s *InputScript) At(tick uint64) Input {
	var in Input
	for _, f := range s.Frames {
		if tick < f.From || tick > f.To {
			continue
		}
		if f.MoveX != 0 {
			in.MoveX = f.MoveX
		}
		in.Jump = in.Jump || f.Jump
		in.Down = in.Down || f.Down
	}
	in.JumpPressed = in.Jump && !s.held
	s.held = in.Jump
	return in
}

var InputScriptComponent = NewComponent[InputScript]()
