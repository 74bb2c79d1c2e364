package fakechat

import (
	"context"
	"hash/crc32"
	"net/http"
	"time"

	"chatapi/iface"
	"chatapi/logger"
	"chatapi/services/fakechat/conf"
	"chatapi/services/fakechat/handler"
	"chatapi/services/fakechat/serv"
	"chatapi/storage"
	"chatapi/websocket"
	"chatapi/wire"

	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type ServerStartOptions struct {
	config string
}

func NewServerStartCmd(ctx context.Context, version string) *cobra.Command {
	opts := &ServerStartOptions{}
	cmd := &cobra.Command{
		Use:   "fakechat",
		Short: "start a fake messaging service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServerStart(ctx, opts, version)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "./fakechat/conf.yaml", "Config file")
	return cmd
}

func RunServerStart(ctx context.Context, opts *ServerStartOptions, version string) error {
	config, err := conf.Init(opts.config)
	if err != nil {
		return err
	}
	if err = logger.Init(logger.Settings{
		Level:    config.LogLevel,
		Filename: config.LogFile,
	}); err != nil {
		return err
	}

	svc, err := New(config)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv := &http.Server{Addr: config.Listen, Handler: svc}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	logger.WithFields(logger.Fields{
		"module":  "fakechat",
		"listen":  config.Listen,
		"id":      config.ServiceID,
		"version": version,
	}).Info("started")
	if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Service is the whole fake messaging service behind one http.Handler
type Service struct {
	config  *conf.Config
	stream  iface.IServer
	mux     *http.ServeMux
	closers []func() error
}

func New(config *conf.Config) (*Service, error) {
	dir, err := storage.NewDirectory(config.Directory, config.ProfileBaseURL)
	if err != nil {
		return nil, err
	}
	svc := &Service{config: config}

	//会话存储
	sessions := storage.NewMemoryStorage()
	if config.RedisAddrs != "" {
		rdb, err := storage.InitRedis(config.RedisAddrs, "")
		if err != nil {
			return nil, err
		}
		sessions = storage.NewRedisStorage(rdb)
		svc.closers = append(svc.closers, rdb.Close)
	}

	//消息存储
	messages := storage.NewMemoryMessageStore()
	if config.MessageDb != "" {
		db, err := storage.InitMysqlDb(config.MessageDb)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		messages = storage.NewGormMessageStore(db)
		svc.closers = append(svc.closers, sqlDB.Close)
	}

	if config.NodeID == 0 {
		config.NodeID = int64(HashCode(config.ServiceID))
	}
	idgen, err := storage.NewIDGenerator(config.NodeID)
	if err != nil {
		return nil, err
	}

	stream := websocket.NewServer(config.Listen, config.ServiceID)
	streamHandler := &serv.Handler{
		ServiceID: config.ServiceID,
		Sessions:  sessions,
		Channels:  stream.ChannelMap(),
	}
	stream.SetAcceptor(streamHandler)
	stream.SetMessageListener(streamHandler)
	stream.SetStateListener(streamHandler)
	svc.stream = stream

	app := newApp(&handler.ServiceHandler{
		ServiceID: config.ServiceID,
		Directory: dir,
		Sessions:  sessions,
		Messages:  messages,
		Idgen:     idgen,
		Stream:    streamHandler,
	})
	if err = app.Build(); err != nil {
		return nil, errors.Wrap(err, "build app")
	}

	mux := http.NewServeMux()
	mux.Handle(wire.PathStream, stream)
	mux.Handle(wire.PathMetrics, promhttp.Handler())
	mux.Handle("/", app)
	svc.mux = mux
	return svc, nil
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close drops every stream and releases storage clients
func (s *Service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := s.stream.Shutdown(ctx)
	for _, closer := range s.closers {
		if cerr := closer(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func newApp(h *handler.ServiceHandler) *iris.Application {
	app := iris.New()
	app.Logger().SetLevel("disable")

	app.Get(wire.PathHealth, h.Health)
	app.Post(wire.PathLogin, h.Login)

	app.Post(wire.PathLogout, h.Auth, h.Logout)
	app.Post(wire.PathMessages, h.Auth, h.SendMessage)
	app.Get(wire.PathMessages, h.Auth, h.History)
	app.Post(wire.PathTyping, h.Auth, h.Typing)
	app.Get(wire.PathUsers, h.Auth, h.Users)
	app.Get(wire.PathFriends, h.Auth, h.Friends)
	return app
}

// HashCode maps a service id to a snowflake node id
func HashCode(key string) uint32 {
	hash32 := crc32.NewIEEE()
	hash32.Write([]byte(key))
	return hash32.Sum32() % 1000
}
