package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/corvidmail/attachbrowser/internal/attach"
	"github.com/corvidmail/attachbrowser/internal/body"
	"github.com/corvidmail/attachbrowser/internal/config"
	"github.com/corvidmail/attachbrowser/internal/crypto"
	"github.com/corvidmail/attachbrowser/internal/logging"
	"github.com/corvidmail/attachbrowser/internal/mailcap"
	"github.com/corvidmail/attachbrowser/internal/menu"
	"github.com/corvidmail/attachbrowser/internal/store"
)

var viewCmd = &cobra.Command{
	Use:   "view <message-id>",
	Short: "open a stored message and browse its attachments",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func runView(cmd *cobra.Command, args []string) error {
	messageID := args[0]
	cfg := config.FromEnv()
	if v, _ := cmd.Flags().GetString("mongo-uri"); v != "" {
		cfg.MongoURI = v
	}
	if v, _ := cmd.Flags().GetString("mongo-db"); v != "" {
		cfg.MongoDatabase = v
	}
	mailcapPath, _ := cmd.Flags().GetString("mailcap")
	if mailcapPath == "" {
		mailcapPath = mailcap.DefaultPath()
	}

	// The standard logger is the one whose level --verbose sets.
	logger := logging.New(logrus.StandardLogger(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}

	st, err := store.New(client.Database(cfg.MongoDatabase), logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	msg, err := st.Open(ctx, messageID)
	if err != nil {
		return fmt.Errorf("open message %s: %w", messageID, err)
	}

	root, hdr, err := body.ParseMessage(msg.Raw)
	if err != nil {
		return fmt.Errorf("parse message %s: %w", messageID, err)
	}
	hdr.Security |= crypto.DetectSecurity(root)

	passphrase := newPassphraseCache("PGP passphrase:")
	pgpEngine := &crypto.PGPEngine{Passphrase: passphrase}
	unwrapped, err := crypto.Unwrap(hdr, root, pgpEngine, nil)
	if err != nil && err != crypto.ErrNoPassphrase {
		return fmt.Errorf("decrypt message %s: %w", messageID, err)
	}
	if unwrapped != nil {
		root = unwrapped.Root
	}

	mailcapTable, err := mailcap.Load(mailcapPath)
	if err != nil {
		return fmt.Errorf("load mailcap %s: %w", mailcapPath, err)
	}
	runner := mailcap.Runner{}
	viewer := &mailcap.Viewer{Table: mailcapTable}
	splitPrinter := &mailcap.SplitPrinter{Table: mailcapTable}
	prompter := menu.Prompter{}

	homeDir, _ := os.UserHomeDir()
	formatter := attach.NewEntryFormatter(attach.FormatOptions{
		StatAttach: cfg.StatAttach,
		StatFile:   func(b *body.Body) (int64, bool) { return 0, false },
		HomeDir:    homeDir,
	})

	session := &attach.SessionController{
		Logger:  logger,
		Mailbox: &mailboxAdapter{ctx: ctx, msg: msg},
		Menu:    &menu.Driver{Formatter: formatter, Format: cfg.AttachFormat},
		Viewer:  viewer,

		SaveEngine:  attach.NewSaveEngine(prompter, cfg.AttachSplit, cfg.AttachSep),
		PipeEngine:  &attach.PipeEngine{Runner: runner, Overwrite: prompter, Separator: cfg.AttachSep, FromParsedMessage: true},
		PrintEngine: &attach.PrintEngine{Mailcap: mailcapTable, Split: splitPrinter, Confirm: prompter, Separator: cfg.AttachSep, Runner: runner},
		Compose:     noComposeHandoff{},

		ExtractKeys: func(parts []*body.Body) error {
			for _, p := range parts {
				keys, err := pgpEngine.ExtractKeys(p.Raw)
				if err != nil {
					return err
				}
				logger.Info("extracted pgp key material", "part", p.ID, "bytes", len(keys))
			}
			return nil
		},
		ForgetPassphrase: passphrase.Forget,
		CommandPrompt:    prompter,

		Config: attach.SessionConfig{
			AttachSplit:    cfg.AttachSplit,
			DigestCollapse: cfg.DigestCollapse,
			Resolve:        cfg.Resolve,
			WaitKey:        cfg.WaitKey,
			Weed:           cfg.Weed,
			AttachSep:      cfg.AttachSep,
			PrintCommand:   cfg.PrintCommand,
		},
	}

	return session.ViewAttachments(hdr, root)
}
