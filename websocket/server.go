package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"chatapi/core"
	"chatapi/iface"
	"chatapi/logger"

	"github.com/gobwas/ws"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

type ServerOptions struct {
	loginwait time.Duration //登陆超时
	readwait  time.Duration //读超时
	writewait time.Duration //写超时
}

// Server accepts websocket streams; it can be mounted as an http.Handler
// or run on its own listener with Start
type Server struct {
	listen          string
	id              string
	channelMap      iface.IChannelMap
	Acceptor        iface.IAcceptor
	MessageListener iface.IMessageListener
	Statelistener   iface.IStatelistener
	once            sync.Once
	options         ServerOptions
	httpServer      *http.Server
}

// NewServer NewServer
func NewServer(listen string, id string) iface.IServer {
	return &Server{
		listen:     listen,
		id:         id,
		channelMap: core.NewChannels(),
		options: ServerOptions{
			loginwait: iface.DefaultLoginWait,
			readwait:  iface.DefaultReadWait,
			writewait: time.Second * 10,
		},
	}
}

func (s *Server) ServiceID() string {
	return s.id
}

func (s *Server) Start() error {
	log := logger.WithFields(logger.Fields{
		"module": "ws.server",
		"listen": s.listen,
		"id":     s.id,
	})
	if s.Statelistener == nil {
		return errors.New("StateListener is nil")
	}
	s.httpServer = &http.Server{Addr: s.listen, Handler: s}
	log.Info("started")
	return s.httpServer.ListenAndServe()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.WithFields(logger.Fields{
		"module": "ws.server",
		"id":     s.id,
		"remote": r.RemoteAddr,
	})
	acceptor := s.Acceptor
	if acceptor == nil {
		acceptor = new(defaultAcceptor)
	}
	channels := s.ChannelMap()

	raw, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		log.Debug(err)
		return
	}

	//包装conn
	conn := NewConn(raw)
	//鉴权
	id, err := acceptor.Accept(conn, s.options.loginwait)
	if err != nil {
		log.Info(err)
		_ = conn.WriteFrame(iface.OpClose, ws.NewCloseFrameBody(ws.StatusPolicyViolation, err.Error()))
		conn.Close()
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	if _, ok := channels.Get(id); ok {
		log.Warnf("channel %s existed", id)
		_ = conn.WriteFrame(iface.OpClose, ws.NewCloseFrameBody(ws.StatusPolicyViolation, "channelId is repeated"))
		conn.Close()
		return
	}

	channel := core.NewChannel(id, conn)
	channel.SetWriteWait(s.options.writewait)
	channel.SetReadWait(s.options.readwait)
	channels.Add(channel)
	log.WithField("channel", id).Debug("accepted")
	if cl, ok := acceptor.(iface.IConnectListener); ok {
		cl.Connected(channel)
	}
	go func(channel iface.IChannel) {
		err := channel.Readloop(s.MessageListener)
		if err != nil {
			log.WithField("channel", channel.ID()).Debug(err)
		}
		channels.Remove(channel.ID())
		if s.Statelistener != nil {
			if err = s.Statelistener.Disconnect(channel.ID()); err != nil {
				log.Warn(err)
			}
		}
		channel.Close()
	}(channel)
}

func (s *Server) Push(id string, data []byte) error {
	ch, ok := s.ChannelMap().Get(id)
	if !ok {
		return errors.Errorf("push to channel [ID]:%s , channel not found", id)
	}
	return ch.Push(data)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log := logger.WithFields(logger.Fields{
		"module": "ws.server",
		"id":     s.id,
	})

	var err error
	s.once.Do(func() {
		defer func() {
			log.Infoln("shutdown")
		}()
		if s.httpServer != nil {
			err = s.httpServer.Shutdown(ctx)
		}
		for _, ch := range s.ChannelMap().All() {
			ch.Close()
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	})
	return err
}

// SetAcceptor SetAcceptor
func (s *Server) SetAcceptor(acceptor iface.IAcceptor) {
	s.Acceptor = acceptor
}

// SetMessageListener SetMessageListener
func (s *Server) SetMessageListener(listener iface.IMessageListener) {
	s.MessageListener = listener
}

// SetStateListener SetStateListener
func (s *Server) SetStateListener(listener iface.IStatelistener) {
	s.Statelistener = listener
}

// SetChannelMap SetChannelMap
func (s *Server) SetChannelMap(channels iface.IChannelMap) {
	s.channelMap = channels
}

func (s *Server) ChannelMap() iface.IChannelMap {
	return s.channelMap
}

// SetReadWait set read wait duration
func (s *Server) SetReadWait(readwait time.Duration) {
	s.options.readwait = readwait
}

type defaultAcceptor struct {
}

// Accept defaultAcceptor
func (a *defaultAcceptor) Accept(conn iface.IConn, timeout time.Duration) (string, error) {
	return ksuid.New().String(), nil
}
