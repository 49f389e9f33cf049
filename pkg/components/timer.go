package components

// TimerComponent 通用延时组件
// 用于固定时长的等待（背景音乐预播放延迟、触摸恢复延迟、结算界面延迟）
// 延时按帧时间推进，不受游戏暂停影响
type TimerComponent struct {
	Name        string  // 计时器名称，如 "enable_touch"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	// ExtraFrames 到时后再等待的帧数
	ExtraFrames int
	IsReady     bool   // 计时器是否已完成
	OnFire      func() // 到时回调，恰好调用一次
}
