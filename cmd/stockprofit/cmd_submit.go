package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"stockprofit/internal/form"
	"stockprofit/internal/typewriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	submitTicker string
	submitDate   string
	submitShares string
)

var errInterrupted = errors.New("interrupted")

// notifySignals registers c for the signals that cancel a submission.
var notifySignals = func(c chan<- os.Signal) {
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
}

// submitCmd runs one submission without the interactive form
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit one purchase and type the prediction to stdout",
	Long: `Posts the ticker, purchase date and share count to the prediction
endpoint and prints the response one character at a time.

Example:
  stockprofit submit --ticker AAPL --date 2020-01-02 --shares 10`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitTicker, "ticker", "t", "", "Stock ticker symbol")
	submitCmd.Flags().StringVarP(&submitDate, "date", "d", "", "Purchase date (YYYY-MM-DD)")
	submitCmd.Flags().StringVarP(&submitShares, "shares", "n", "", "Number of shares")
}

// runSubmit validates the flags, fetches the prediction and reveals it.
// A validation alert is returned as the command error so the process exits 1.
func runSubmit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)
	defer signal.Stop(sigCh)

	var alert string
	ctrl := form.NewController(
		newPredictor(cfg),
		form.AlerterFunc(func(msg string) { alert = msg }),
		form.WithInterval(cfg.GetInterval()),
		form.WithCancelPrevious(cfg.Animation.CancelPrevious),
	)

	fields := form.Fields{
		Ticker:       submitTicker,
		PurchaseDate: submitDate,
		Shares:       submitShares,
	}
	logger.Info("Submitting",
		zap.String("ticker", fields.Ticker),
		zap.String("purchase_date", fields.PurchaseDate),
		zap.String("shares", fields.Shares))

	out := cmd.OutOrStdout()
	surface := typewriter.NewWriterSurface(out)

	var interrupted atomic.Bool
	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		return ctrl.Submit(gctx, fields, surface)
	})
	g.Go(func() error {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			interrupted.Store(true)
			ctrl.Cancel()
			return errInterrupted
		case <-done:
			return nil
		}
	})
	err := g.Wait()
	if interrupted.Load() && errors.Is(err, context.Canceled) {
		err = errInterrupted
	}

	if surface.Text() != "" {
		fmt.Fprintln(out)
	}
	if alert != "" {
		return errors.New(alert)
	}
	return err
}
