package components

// CountdownComponent 单环涂色倒计时
//
// 仅在游戏状态为 Playing 时推进；暂停期间保留已过时间。
// 同一时刻只允许一个有效倒计时，新倒计时启动前旧的会被 Cancelled。
type CountdownComponent struct {
	Duration  float64 // 倒计时总时长（秒）
	Elapsed   float64 // 已过时间（秒）
	Cancelled bool    // 已被新的倒计时替换
	Expired   bool    // 已到时

	// OnProgress 每次推进后回调剩余比例（1 -> 0），驱动时间条
	OnProgress func(remaining float64)
	// OnExpire 到时回调，恰好调用一次
	OnExpire func()
}

// Remaining 剩余比例
func (c *CountdownComponent) Remaining() float64 {
	if c.Duration <= 0 {
		return 0
	}
	r := 1 - c.Elapsed/c.Duration
	if r < 0 {
		return 0
	}
	return r
}
