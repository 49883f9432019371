// Command attachbrowser is the CLI entry point wiring the attachment
// browser core (internal/attach) to a MongoDB+GridFS mailbox store, a
// mailcap-driven viewer/printer, and a bubbletea menu, the way
// cmd/guerrillad wires go-guerrilla's SMTP backend to a cobra command
// tree (github.com/flashmob/go-guerrilla).
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "attachbrowser",
	Short: "browse, save, pipe, and print a message's MIME attachments",
	Long: `attachbrowser opens a stored message, flattens its MIME body tree into
a navigable list of attachments, and drives save/pipe/print/delete
operations over whichever parts are tagged or under the cursor.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug-level logging")
	rootCmd.PersistentFlags().String("mongo-uri", "", "override ATTACHBROWSER_MONGO_URI")
	rootCmd.PersistentFlags().String("mongo-db", "", "override ATTACHBROWSER_MONGO_DATABASE")
	rootCmd.PersistentFlags().String("mailcap", "", "path to a mailcap file (default: $MAILCAPS or ~/.mailcap)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
	}
	rootCmd.AddCommand(viewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
