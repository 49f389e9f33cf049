package game

// Session 跨场景重载保留的会话上下文
//
// 由会话层（app）持有，在每次构建 GameScene 时传入控制器。
// 会话结束时 Reset 清空关卡进度。
type Session struct {
	// CurrentLevel 当前关卡（从 1 开始；0 表示尚未开始）
	CurrentLevel int
	// IsRestart 场景重载后是否直接开始游戏（过关或失败后置为 true）
	IsRestart bool
	// SavedLevels 已保存/解锁的关卡列表（核心只读）
	SavedLevels []int
	// TimedOut 会话计时已耗尽（此后忽略玩法输入）
	TimedOut bool
}

// NewSession 创建会话
func NewSession(savedLevels []int) *Session {
	levels := make([]int, len(savedLevels))
	copy(levels, savedLevels)
	return &Session{SavedLevels: levels}
}

// Reset 会话结束时清理
func (s *Session) Reset() {
	s.IsRestart = false
	s.CurrentLevel = 0
	s.TimedOut = false
}

// IsLevelSaved 关卡是否在已保存列表中
func (s *Session) IsLevelSaved(level int) bool {
	for _, l := range s.SavedLevels {
		if l == level {
			return true
		}
	}
	return false
}
