package iface

// 消息监听器
type IMessageListener interface {
	Receive(IAgent, []byte)
}

// IAgent 发送方
type IAgent interface {
	//返回channel id
	ID() string
	Push([]byte) error
}
