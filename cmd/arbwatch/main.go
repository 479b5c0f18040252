// Command arbwatch is a terminal dashboard over a running arbitrage feed:
// it connects to the same reserve-update source as arbd and renders
// profitable cycles as they're found, styled in the console idiom of
// cmd/console's live monitor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/defistate/arb-engine/arb"
	"github.com/defistate/arb-engine/engine"
	"github.com/defistate/arb-engine/ingestion"
	"github.com/prometheus/client_golang/prometheus"
)

// --- VISUAL CONSTANTS ---
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
)

func header(title string) {
	fmt.Println("\n" + Bold + Cyan + ":: " + title + " ::" + Reset)
}

// safeCycles is a thread-safe container for the most recent profitable
// cycle set, mirroring cmd/console's SafeState.
type safeCycles struct {
	mu     sync.RWMutex
	quotes []arb.CycleQuote
	at     time.Time
}

func (s *safeCycles) Update(quotes []arb.CycleQuote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = quotes
	s.at = time.Now()
}

func (s *safeCycles) Get() ([]arb.CycleQuote, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quotes, s.at
}

func main() {
	logFile, err := os.OpenFile("arbwatch.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic(fmt.Sprintf("failed to open log file: %v", err))
	}
	defer logFile.Close()

	rootLogger := slog.New(slog.NewJSONHandler(logFile, nil))

	closeApp := func() {
		fmt.Println("\n" + Red + "Fatal error occurred. Check arbwatch.log for details." + Reset)
		os.Exit(1)
	}

	rpcURL := flag.String("rpc-url", "", "Reserve-update feed URL.")
	bufferSize := flag.Uint("buffer-size", 16, "Ingestion channel buffer size.")
	maxDepth := flag.Int("max-cycle-depth", arb.DefaultMaxCycleDepth, "Max cycle depth to search.")
	flag.Parse()

	if *rpcURL == "" {
		fmt.Println(Red + "-rpc-url is required" + Reset)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := ingestion.NewJSONRPCSource(ctx, ingestion.Config{
		URL:        *rpcURL,
		Logger:     slogAdapter{rootLogger.With("component", "jsonrpc-source")},
		BufferSize: *bufferSize,
	})
	if err != nil {
		rootLogger.Error("failed to initialize ingestion source", "error", err)
		closeApp()
	}

	driver, err := engine.New(
		ctx,
		nil,
		source,
		slogAdapter{rootLogger.With("component", "driver")},
		prometheus.NewRegistry(),
		engine.WithMaxCycleDepth(*maxDepth),
	)
	if err != nil {
		rootLogger.Error("failed to initialize driver", "error", err)
		closeApp()
	}

	cycles := &safeCycles{}
	fmt.Println(Green + "Starting arbwatch..." + Reset)
	fmt.Println("Logs are being written to 'arbwatch.log'")
	go renderLoop(ctx, cycles)

	for {
		select {
		case update, ok := <-driver.Updates():
			if !ok {
				return
			}
			if !update.HasAllReserves() {
				continue
			}
			quotes, err := update.ProfitableCycleQuotes()
			if err != nil {
				rootLogger.Error("failed to compute profitable cycle quotes", "error", err)
				continue
			}
			if len(quotes) > 0 {
				cycles.Update(quotes)
			}

		case err := <-driver.Err():
			rootLogger.Error("fatal driver error", "error", err)
			closeApp()

		case <-ctx.Done():
			fmt.Println("\n" + Yellow + "Shutting down..." + Reset)
			return
		}
	}
}

func renderLoop(ctx context.Context, cycles *safeCycles) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			quotes, at := cycles.Get()
			if quotes == nil {
				continue
			}
			render(quotes, at)
		}
	}
}

func render(quotes []arb.CycleQuote, at time.Time) {
	fmt.Print("\033[H\033[2J")
	header(fmt.Sprintf("PROFITABLE CYCLES (as of %s)", at.Format("15:04:05")))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintln(w, "HOPS\tAMOUNT IN\tAMOUNT OUT\tPROFIT\tMARGIN (BPS)\t")
	fmt.Fprintln(w, "----\t---------\t----------\t------\t------------\t")

	for _, q := range quotes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s%s%s\t%d\t\n",
			len(q.SwapQuotes()),
			q.AmountIn().String(),
			q.AmountOut().String(),
			Green, q.Profit().String(), Reset,
			q.ProfitMargin(),
		)
	}
	w.Flush()
}

type slogAdapter struct {
	logger *slog.Logger
}

func (s slogAdapter) Debug(msg string, args ...any) { s.logger.Debug(msg, args...) }
func (s slogAdapter) Info(msg string, args ...any)  { s.logger.Info(msg, args...) }
func (s slogAdapter) Warn(msg string, args ...any)  { s.logger.Warn(msg, args...) }
func (s slogAdapter) Error(msg string, args ...any) { s.logger.Error(msg, args...) }
