package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tyrius02/next-gen-vision/internal/api/models"
	"github.com/tyrius02/next-gen-vision/internal/devices"
	"github.com/tyrius02/next-gen-vision/internal/logging"
)

// CreateScanCmd creates the scan command.
func CreateScanCmd() *cobra.Command {
	var deviceDir string
	var devicePrefix string
	var jsonOutput bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Discover video devices and print their capabilities",
		Long: `Probes every video device node once and prints what it found. ` +
			`The default table lists one line per device; --json dumps the full ` +
			`capability snapshots including formats, frame sizes and rates.`,
		Run: func(_ *cobra.Command, _ []string) {
			// Keep probe chatter off the output unless something breaks.
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			registry := devices.NewRegistry(&devices.Options{
				Scanner: devices.NewScanner(deviceDir, devicePrefix),
			})
			result, err := registry.Scan(ctx, devices.TriggerManual)
			if err != nil {
				fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
				os.Exit(1)
			}

			snapshots := registry.List()
			if jsonOutput {
				details := make([]models.DeviceDetailData, 0, len(snapshots))
				for _, snap := range snapshots {
					details = append(details, models.NewDeviceDetail(snap))
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(details); encErr != nil {
					fmt.Fprintf(os.Stderr, "encoding failed: %v\n", encErr)
					os.Exit(1)
				}
				return
			}

			printDeviceTable(snapshots, result)
		},
	}

	cmd.Flags().StringVar(&deviceDir, "dir", "/dev", "Directory scanned for device nodes")
	cmd.Flags().StringVar(&devicePrefix, "prefix", "video", "Device node name prefix")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print full snapshots as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Abort the scan after this duration")

	return cmd
}

func printDeviceTable(snapshots []*devices.Snapshot, result *devices.ScanResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tNAME\tDRIVER\tCAPABILITIES\tFORMATS")
	for _, snap := range snapshots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			snap.Path, snap.Name, snap.Driver,
			strings.Join(snap.CapNames, ","), len(snap.Formats))
	}
	w.Flush()
	fmt.Printf("\n%d device(s), %d probe error(s) in %s\n",
		len(snapshots), result.Errors, result.Duration.Round(time.Millisecond))
}
