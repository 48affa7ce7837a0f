package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tyrius02/next-gen-vision/internal/devices"
	"github.com/tyrius02/next-gen-vision/internal/logging"
)

// CreateWatchCmd creates the watch command.
func CreateWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream device hotplug events to stdout",
		Long: `Subscribes to kernel uevents for the video4linux subsystem and prints ` +
			`one line per attach or detach. Runs until interrupted.`,
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scanner := devices.NewScanner("/dev", "video")
			hotplugEvents, err := scanner.Events(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "hotplug monitoring failed: %v\n", err)
				os.Exit(1)
			}

			fmt.Fprintln(os.Stderr, "Watching for device changes, Ctrl-C to stop")
			enc := json.NewEncoder(os.Stdout)
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-hotplugEvents:
					if !ok {
						return
					}
					if jsonOutput {
						if encErr := enc.Encode(map[string]string{
							"time":   time.Now().Format(time.RFC3339),
							"action": ev.Action,
							"device": ev.DevNode(),
						}); encErr != nil {
							fmt.Fprintf(os.Stderr, "encoding failed: %v\n", encErr)
						}
						continue
					}
					fmt.Printf("%s  %-7s %s\n", time.Now().Format(time.RFC3339), ev.Action, ev.DevNode())
				}
			}
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print events as JSON lines")

	return cmd
}
