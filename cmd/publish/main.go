// Package main is the entry point for the publish CLI.
//
// publish is a one-shot collaborator of the trafficpulse server: it connects
// to /ws/traffic as a plain WebSocket client, sends a single traffic record
// and disconnects. The server relays the record to every other connected
// client; no special server-side affordance exists for this tool.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/weathall1/trafficpulse/internal/store"
)

var (
	serverURL string
	location  string
	event     string
	dataFile  string
	wait      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "publish",
	Short: "Send one traffic update over the live channel",
	Long: `publish connects to a trafficpulse server's /ws/traffic channel,
sends a single {location, event} JSON message and disconnects.

The record comes from --location/--event, or from the first record of the
JSON file given by --file (falling back to the built-in defaults when the
file is missing or malformed).`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&serverURL, "url", "u", "ws://localhost:8080/ws/traffic", "WebSocket URL of the live channel")
	rootCmd.Flags().StringVarP(&location, "location", "l", "", "location of the traffic record (requires --event)")
	rootCmd.Flags().StringVarP(&event, "event", "e", "", "event of the traffic record (requires --location)")
	rootCmd.Flags().StringVarP(&dataFile, "file", "f", "traffic_data.json", "JSON file to take the first record from")
	rootCmd.Flags().DurationVarP(&wait, "wait", "w", time.Second, "time to wait after sending before disconnecting")
	rootCmd.MarkFlagsRequiredTogether("location", "event")
}

func run(cmd *cobra.Command, args []string) error {
	record, err := resolveRecord()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", serverURL, err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("failed to send record: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %s\n", payload)

	// Give the server a moment to relay before tearing the connection down.
	time.Sleep(wait)

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)

	return nil
}

func resolveRecord() (store.Record, error) {
	if location != "" || event != "" {
		return store.Record{Location: location, Event: event}, nil
	}

	st := store.New(dataFile)
	st.Load()

	record, ok := st.First()
	if !ok {
		return store.Record{}, fmt.Errorf("no records available in %s", dataFile)
	}
	return record, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
