package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"ex-tgnorm/internal/driver/telegram"
	"ex-tgnorm/internal/fixture"
	"ex-tgnorm/pkg/tgnorm"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRenderCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render FIXTURE...",
		Short: "Decode fixture files and print one rendered message per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.logLevel}))
			return runRender(cmd.Context(), logger, cfg, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("telegram-tags", false, "Emit Telegram-specific HTML tags.")
	cmd.Flags().String("format", "", "Output format: html or json.")
	_ = v.BindPFlag("telegram_tags", cmd.Flags().Lookup("telegram-tags"))
	_ = v.BindPFlag("format", cmd.Flags().Lookup("format"))

	return cmd
}

// runRender decodes every fixture with one shared decoder so chats introduced
// by earlier batches resolve in later ones.
func runRender(ctx context.Context, logger *slog.Logger, cfg appConfig, paths []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	decoder, err := telegram.NewDecoder(telegram.WithDecoderLogger(logger))
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	printer := newMessagePrinter(out, cfg)
	for _, path := range paths {
		file, err := fixture.Load(path)
		if err != nil {
			return err
		}
		batches, err := file.Updates()
		if err != nil {
			return fmt.Errorf("fixture %s: %w", path, err)
		}

		rendered := 0
		for _, batch := range batches {
			messages, err := decoder.Decode(ctx, batch)
			if err != nil {
				return fmt.Errorf("fixture %s: %w", path, err)
			}
			for _, message := range messages {
				if err := printer.print(message); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			rendered += len(messages)
		}

		logger.Info("rendered fixture",
			"path", path,
			"batches", len(batches),
			"messages", rendered,
		)
	}

	return nil
}

type messagePrinter struct {
	out          io.Writer
	encoder      *json.Encoder
	format       string
	telegramTags bool
}

func newMessagePrinter(out io.Writer, cfg appConfig) messagePrinter {
	return messagePrinter{
		out:          out,
		encoder:      json.NewEncoder(out),
		format:       cfg.format,
		telegramTags: cfg.telegramTags,
	}
}

func (p messagePrinter) print(message *tgnorm.Message) error {
	if p.format == formatJSON {
		return p.encoder.Encode(newRenderedMessage(message, p.telegramTags))
	}

	_, err := fmt.Fprintf(p.out, "%s\t%s\n", message.UpdateID(), message.HTML(p.telegramTags))
	return err
}

// renderedMessage is the JSON Lines projection of one message.
type renderedMessage struct {
	UpdateID     string     `json:"update_id"`
	Kind         string     `json:"kind"`
	ChatID       int64      `json:"chat_id"`
	MessageID    int        `json:"message_id"`
	SenderID     int64      `json:"sender_id"`
	Out          bool       `json:"out"`
	TopicID      *int       `json:"topic_id,omitempty"`
	ReplyToMsgID *int       `json:"reply_to_msg_id,omitempty"`
	ThreadID     *int       `json:"thread_id,omitempty"`
	Forwarded    bool       `json:"forwarded"`
	PSAType      string     `json:"psa_type,omitempty"`
	Buttons      [][]string `json:"buttons,omitempty"`
	HTML         string     `json:"html"`
}

func newRenderedMessage(message *tgnorm.Message, telegramTags bool) renderedMessage {
	rendered := renderedMessage{
		UpdateID:  message.UpdateID(),
		Kind:      string(message.UpdateKind()),
		ChatID:    message.ChatID(),
		MessageID: message.ID(),
		SenderID:  message.SenderID(),
		Out:       message.Out(),
		Forwarded: message.FwdInfo() != nil,
		HTML:      message.HTML(telegramTags),
	}
	rendered.TopicID = optionalInt(message.TopicID())
	rendered.ReplyToMsgID = optionalInt(message.ReplyToMsgID())
	rendered.ThreadID = optionalInt(message.ThreadID())
	if psaType, ok := message.PSAType(); ok {
		rendered.PSAType = psaType
	}

	if keyboard := message.Keyboard(); keyboard != nil {
		for _, row := range keyboard.Rows() {
			labels := make([]string, 0, len(row))
			for _, button := range row {
				labels = append(labels, button.Text)
			}
			rendered.Buttons = append(rendered.Buttons, labels)
		}
	}

	return rendered
}

func optionalInt(value int, ok bool) *int {
	if !ok {
		return nil
	}
	return &value
}
