package scenes

import (
	"github.com/gonewx/paintrings/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// GameSceneName 玩法场景名（重开/下一关时按此名称重载）
const GameSceneName = "game"
