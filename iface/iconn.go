package iface

import "net"

// IConn 连接
type IConn interface {
	net.Conn
	ReadFrame() (IFrame, error)
	WriteFrame(OpCode, []byte) error
	Flush() error
}
