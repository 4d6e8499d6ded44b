package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Zilvh/Vesta-Sries/internal/export"
	"github.com/Zilvh/Vesta-Sries/internal/scan"
)

const (
	// bannerDisplayWidth caps the banner column in the results table.
	bannerDisplayWidth = 40

	maxPortNumber = 65535
)

var (
	scanHost           string
	scanPortSpec       string
	scanWorkers        int
	scanBanner         bool
	scanConnectTimeout time.Duration
	scanBannerTimeout  time.Duration
	scanOutput         string
	scanFormat         string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a host for open TCP ports",
	Long: `Scan a single host for TCP ports that accept a connection within a
bounded timeout. Closed and filtered ports are omitted from the output.

Ports are probed through a bounded pool of concurrent connect attempts,
so even a full 1-65535 sweep keeps a fixed file-descriptor ceiling.
Interrupting a running scan (Ctrl-C) stops dispatching new probes and
reports whatever was collected.`,
	Example: `  vesta scan --host 192.168.1.10
  vesta scan --host example.com --ports 1-1024
  vesta scan --host 10.0.0.5 --ports "22,80,443,8080" --banner
  vesta scan --host localhost --ports 1-65535 --workers 200
  vesta scan --host 10.0.0.5 --output results.json
  vesta scan --host 10.0.0.5 --output results.csv --format csv`,
	Run: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanHost, "host", "", "Target host (IP address or hostname)")
	scanCmd.Flags().StringVar(&scanPortSpec, "ports", "", "Ports to scan: '80,443', '1-1024', or a mix")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Maximum number of concurrent probes")
	scanCmd.Flags().BoolVar(&scanBanner, "banner", false, "Capture service banners from open ports")
	scanCmd.Flags().DurationVar(&scanConnectTimeout, "connect-timeout", 0, "Timeout for a single connect attempt")
	scanCmd.Flags().DurationVar(&scanBannerTimeout, "banner-timeout", 0, "Timeout for a single banner read")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Write results to a file after the scan")
	scanCmd.Flags().StringVar(&scanFormat, "format", "", "Export format: json or csv (default inferred from --output)")

	if err := scanCmd.MarkFlagRequired("host"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to mark host flag required: %v\n", err)
	}
}

func runScan(cmd *cobra.Command, args []string) {
	spec := scanPortSpec
	if spec == "" {
		spec = viper.GetString("scanning.default_ports")
	}

	ports, err := parsePortSpec(spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid port specification '%s': %v\n", spec, err)
		os.Exit(1)
	}

	target := buildTarget(cmd, ports)

	// A user interrupt seals the session early with partial results
	// instead of discarding the scan.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "Scanning %s (%d ports, %d workers)\n",
		target.Host, len(ports), target.Concurrency)

	session, err := scan.RunWithContext(ctx, target, progressPrinter(len(ports)))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "Scan interrupted, showing partial results")
	}

	displayResults(session)

	if scanOutput != "" {
		exportResults(session)
	}
}

// buildTarget assembles the scan target from flags, falling back to
// configuration values for anything not set on the command line.
func buildTarget(cmd *cobra.Command, ports []int) scan.Target {
	target := scan.NewTarget(scanHost, ports)

	if cmd.Flags().Changed("workers") {
		target.Concurrency = scanWorkers
	} else if w := viper.GetInt("scanning.worker_pool_size"); w > 0 {
		target.Concurrency = w
	}
	if cmd.Flags().Changed("connect-timeout") {
		target.ConnectTimeout = scanConnectTimeout
	} else if d := viper.GetDuration("scanning.connect_timeout"); d > 0 {
		target.ConnectTimeout = d
	}
	if cmd.Flags().Changed("banner-timeout") {
		target.BannerTimeout = scanBannerTimeout
	} else if d := viper.GetDuration("scanning.banner_timeout"); d > 0 {
		target.BannerTimeout = d
	}
	target.WithBanner = scanBanner || (!cmd.Flags().Changed("banner") && viper.GetBool("scanning.grab_banners"))

	return target
}

// progressPrinter returns an advisory progress observer writing a
// carriage-return status line to stderr.
func progressPrinter(total int) scan.ProgressFunc {
	return func(done, _ int) {
		fmt.Fprintf(os.Stderr, "\rProbing ports... %d/%d", done, total)
	}
}

// displayResults renders the sealed session as a table plus summary.
func displayResults(session *scan.Session) {
	if len(session.Results) == 0 {
		fmt.Println("No open ports found")
		fmt.Printf("Scanned %s in %.2f seconds\n", session.Host, session.Duration.Seconds())
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Port", "Service", "Status", "Banner")

	for _, result := range session.Results {
		_ = table.Append([]string{
			strconv.Itoa(result.Port),
			result.Service,
			result.Status,
			clipBanner(result.Banner),
		})
	}

	_ = table.Render()

	fmt.Printf("\nFound %d open ports on %s in %.2f seconds\n",
		len(session.Results), session.Host, session.Duration.Seconds())
}

// clipBanner shortens a banner to the table's column width without
// splitting a multi-byte rune.
func clipBanner(banner string) string {
	runes := []rune(banner)
	if len(runes) <= bannerDisplayWidth {
		return banner
	}
	return string(runes[:bannerDisplayWidth]) + "..."
}

// exportResults writes the session to the requested file. An export
// failure is reported but the session (already rendered) is not lost.
func exportResults(session *scan.Session) {
	name := scanFormat
	if name == "" {
		switch filepath.Ext(scanOutput) {
		case ".csv":
			name = "csv"
		default:
			name = "json"
		}
	}

	format, err := export.ParseFormat(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := export.Write(scanOutput, format, session); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results saved to %s\n", scanOutput)
}

// parsePortSpec expands a port specification like "22,80,8000-8010"
// into an ordered list of ports. Bounds are checked here so bad input
// fails before the engine re-checks defensively.
func parsePortSpec(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty port specification")
	}

	seen := make(map[int]struct{})
	var ports []int

	add := func(p int) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			ports = append(ports, p)
		}
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			rangeParts := strings.Split(part, "-")
			if len(rangeParts) != 2 {
				return nil, fmt.Errorf("invalid port range: %s", part)
			}

			start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
			if err != nil || start < 1 || start > maxPortNumber {
				return nil, fmt.Errorf("invalid start port in range: %s", rangeParts[0])
			}
			end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
			if err != nil || end < 1 || end > maxPortNumber {
				return nil, fmt.Errorf("invalid end port in range: %s", rangeParts[1])
			}
			if start > end {
				return nil, fmt.Errorf("start port cannot be greater than end port: %s", part)
			}

			for p := start; p <= end; p++ {
				add(p)
			}
		} else {
			p, err := strconv.Atoi(part)
			if err != nil || p < 1 || p > maxPortNumber {
				return nil, fmt.Errorf("invalid port: %s", part)
			}
			add(p)
		}
	}

	if len(ports) == 0 {
		return nil, fmt.Errorf("no valid ports in specification")
	}

	sort.Ints(ports)
	return ports, nil
}
