// Package chatcli has the client side commands: log in, act, log out.
package chatcli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"chatapi/client"
	"chatapi/logger"
	"chatapi/wire"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type loginOptions struct {
	email    string
	password string
	pageID   string
	baseURL  string
}

func (o *loginOptions) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.email, "email", "e", os.Getenv("CHATAPI_EMAIL"), "account email")
	cmd.PersistentFlags().StringVarP(&o.password, "password", "p", os.Getenv("CHATAPI_PASSWORD"), "account password")
	cmd.PersistentFlags().StringVar(&o.pageID, "page", "", "act as this page")
	cmd.PersistentFlags().StringVar(&o.baseURL, "url", "", "service url")
}

func (o *loginOptions) login(ctx context.Context, listenEvents bool) (*client.API, error) {
	opts, err := client.OptionsFromEnv()
	if err != nil {
		return nil, err
	}
	if o.pageID != "" {
		opts.PageID = o.pageID
	}
	if o.baseURL != "" {
		opts.BaseURL = o.baseURL
	}
	opts.ListenEvents = opts.ListenEvents || listenEvents
	return client.Login(ctx, client.Credentials{Email: o.email, Password: o.password}, opts)
}

type SendOptions struct {
	loginOptions
	to      string
	sticker string
	url     string
}

func NewSendCmd(ctx context.Context) *cobra.Command {
	opts := &SendOptions{}
	cmd := &cobra.Command{
		Use:   "send [body]",
		Short: "send one message and log out",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSend(ctx, opts, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "thread id")
	cmd.Flags().StringVar(&opts.sticker, "sticker", "", "sticker id")
	cmd.Flags().StringVar(&opts.url, "link", "", "url to share")
	return cmd
}

func RunSend(ctx context.Context, opts *SendOptions, body string, out io.Writer) error {
	msg := wire.Message{Body: body, Sticker: opts.sticker, URL: opts.url}
	if msg.Empty() {
		return errors.New("nothing to send")
	}
	api, err := opts.login(ctx, false)
	if err != nil {
		return err
	}
	defer func() {
		if err := api.Logout(context.Background()); err != nil {
			logger.WithError(err).Warn("logout failed")
		}
	}()

	info, err := api.SendMessage(ctx, msg, opts.to)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s %s\n", info.ThreadID, info.MessageID)
	return err
}

type ListenOptions struct {
	loginOptions
	events bool
}

func NewListenCmd(ctx context.Context) *cobra.Command {
	opts := &ListenOptions{}
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "print incoming events as json lines until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunListen(ctx, opts, cmd.OutOrStdout())
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&opts.events, "events", false, "print typing and other events too")
	return cmd
}

func RunListen(ctx context.Context, opts *ListenOptions, out io.Writer) error {
	api, err := opts.login(ctx, opts.events)
	if err != nil {
		return err
	}
	defer func() {
		if err := api.Logout(context.Background()); err != nil {
			logger.WithError(err).Warn("logout failed")
		}
	}()

	enc := json.NewEncoder(out)
	errs := make(chan error, 1)
	stop := api.Listen(func(ev *wire.Event, err error) {
		if err != nil {
			select {
			case errs <- err:
			default:
			}
			return
		}
		_ = enc.Encode(ev)
	})
	defer stop()

	select {
	case <-ctx.Done():
		return nil
	case err = <-errs:
		return err
	}
}
