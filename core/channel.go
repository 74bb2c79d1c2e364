package core

import (
	"errors"
	"sync"
	"time"

	"chatapi/iface"
	"chatapi/logger"
)

var ErrChannelClosed = errors.New("err:channel closed")

type Channel struct {
	sync.Mutex
	id string
	iface.IConn
	wmu       sync.Mutex
	writechan chan []byte
	once      sync.Once
	writewait time.Duration
	readwait  time.Duration
	closed    iface.IEvent
}

func NewChannel(id string, conn iface.IConn) iface.IChannel {
	log := logger.WithFields(logger.Fields{
		"module": "channel",
		"id":     id,
	})

	ch := &Channel{
		id:        id,
		IConn:     conn,
		writechan: make(chan []byte, 16),
		closed:    NewEvent(),
		writewait: iface.DefaultWriteWait,
		readwait:  iface.DefaultReadWait,
	}

	go func() {
		err := ch.writeloop()
		if err != nil {
			log.Info(err)
		}
	}()
	return ch
}

func (ch *Channel) writeloop() error {
	for {
		select {
		case payload := <-ch.writechan:
			if err := ch.write(payload); err != nil {
				return err
			}
			// drain whatever queued up meanwhile before flushing
			chanlen := len(ch.writechan)
			for i := 0; i < chanlen; i++ {
				if err := ch.write(<-ch.writechan); err != nil {
					return err
				}
			}
			if err := ch.IConn.Flush(); err != nil {
				return err
			}
		case <-ch.closed.Done():
			return nil
		}
	}
}

func (ch *Channel) write(payload []byte) error {
	return ch.writeFrame(iface.OpText, payload)
}

// writeFrame serializes the write loop with control frames from Readloop
func (ch *Channel) writeFrame(code iface.OpCode, payload []byte) error {
	ch.wmu.Lock()
	defer ch.wmu.Unlock()
	_ = ch.SetWriteDeadline(time.Now().Add(ch.writewait))
	return ch.WriteFrame(code, payload)
}

func (ch *Channel) ID() string {
	return ch.id
}

// Push queues payload for the write loop
func (ch *Channel) Push(payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	if ch.closed.HasFired() {
		return ErrChannelClosed
	}
	select {
	case ch.writechan <- payload:
		return nil
	case <-ch.closed.Done():
		return ErrChannelClosed
	case <-time.After(ch.writewait):
		return errors.New("err:push timeout")
	}
}

func (ch *Channel) Close() error {
	ch.once.Do(func() {
		ch.closed.Fire()
		_ = ch.IConn.Close()
	})
	return nil
}

func (ch *Channel) SetWriteWait(t time.Duration) {
	if t > 0 {
		ch.writewait = t
	}
}

func (ch *Channel) SetReadWait(t time.Duration) {
	if t > 0 {
		ch.readwait = t
	}
}

// Readloop blocks until the remote side closes or a read fails
func (ch *Channel) Readloop(lst iface.IMessageListener) error {
	ch.Lock()
	defer ch.Unlock()
	log := logger.WithFields(logger.Fields{
		"struct": "Channel",
		"func":   "Readloop",
		"id":     ch.id,
	})
	for {
		_ = ch.SetReadDeadline(time.Now().Add(ch.readwait))

		frame, err := ch.ReadFrame()
		if err != nil {
			return err
		}

		if frame.GetOpCode() == iface.OpClose {
			return errors.New("remote side close the channel")
		}

		if frame.GetOpCode() == iface.OpPing {
			log.Trace("recv a ping; resp with a pong")
			_ = ch.writeFrame(iface.OpPong, nil)
			continue
		}
		payload := frame.GetPayload()
		if len(payload) == 0 || lst == nil {
			continue
		}
		lst.Receive(ch, payload)
	}
}
