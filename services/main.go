package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"chatapi/logger"
	"chatapi/services/chatcli"
	"chatapi/services/fakechat"

	"github.com/spf13/cobra"
)

const version = "v1"

func main() {
	flag.Parse()

	root := &cobra.Command{
		Use:     "chatapi",
		Version: version,
		Short:   "messaging client and fake service",
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root.AddCommand(fakechat.NewServerStartCmd(ctx, root.Version))
	root.AddCommand(chatcli.NewSendCmd(ctx))
	root.AddCommand(chatcli.NewListenCmd(ctx))
	if err := root.Execute(); err != nil {
		logger.WithError(err).Fatal("Could not run command")
	}
}
