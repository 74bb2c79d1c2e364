package iface

// IEvent is a one-shot signal
type IEvent interface {
	//执行一次
	Fire() bool
	Done() <-chan struct{}
	HasFired() bool
}
