package scenes

import (
	"github.com/caaaan/springbox/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene         = (*DemoScene)(nil)
	_ game.Saveable = (*DemoScene)(nil)
	_ game.Closer   = (*DemoScene)(nil)
)
