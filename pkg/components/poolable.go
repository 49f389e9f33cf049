package components

// PoolableComponent 对象池成员
// Active 为 false 的实体可以被 acquire 复用
type PoolableComponent struct {
	Pool   string
	Active bool
}
