package iface

import (
	"context"
	"net/http"
	"time"
)

type OpCode int

const (
	DefaultLoginWait time.Duration = time.Second * 3
	DefaultReadWait  time.Duration = time.Minute
)

const (
	OpContinuation OpCode = 0x0
	OpText         OpCode = 0x1
	OpBinary       OpCode = 0x2
	OpClose        OpCode = 0x8
	OpPing         OpCode = 0x9
	OpPong         OpCode = 0xa
)

// IServer 事件流服务端
type IServer interface {
	http.Handler
	ServiceID() string
	//设置握手处理
	SetAcceptor(IAcceptor)
	//设置消息监听器
	SetMessageListener(IMessageListener)
	//设置断开监听器
	SetStateListener(IStatelistener)
	//设置读超时
	SetReadWait(time.Duration)
	//设置连接管理器
	SetChannelMap(IChannelMap)
	ChannelMap() IChannelMap

	Start() error
	Push(string, []byte) error
	Shutdown(context.Context) error
}

// IAcceptor 握手鉴权，返回channel id
type IAcceptor interface {
	Accept(IConn, time.Duration) (string, error)
}

// 断开连接回调函数
type IStatelistener interface {
	Disconnect(string) error
}

// IConnectListener may be implemented by an acceptor; Connected runs once
// the channel is registered and can be pushed to
type IConnectListener interface {
	Connected(IChannel)
}
