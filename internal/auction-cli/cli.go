// Package auctioncli implements the auction-bid and auction-result command
// line programs.
package auctioncli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	json "github.com/nikkolasg/hexjson"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/sealedbid/sealedbid/common/log"
	"github.com/sealedbid/sealedbid/internal/auction"
	"github.com/sealedbid/sealedbid/internal/config"
	"github.com/sealedbid/sealedbid/internal/controller"
	"github.com/sealedbid/sealedbid/internal/fs"
	"github.com/sealedbid/sealedbid/internal/metrics"
)

// Automatically set through -ldflags
// Example: go install -ldflags "-X github.com/sealedbid/sealedbid/internal/auction-cli.version=`git describe --tags`
//   -X github.com/sealedbid/sealedbid/internal/auction-cli.gitCommit=`git rev-parse HEAD`"
var (
	version   = "master"
	gitCommit = "none"
	buildDate = "unknown"
)

var setVersionPrinter sync.Once

const refreshRate = 200 * time.Millisecond

// errMissingBid is returned when auction-bid is run without an amount.
var errMissingBid = errors.New("the --bid flag is required")

var confFlag = &cli.StringFlag{
	Name:    "conf",
	Aliases: []string{"c"},
	Usage: "Path to the TOML file listing the computation servers. " +
		"When not set, the default locations are searched.",
	EnvVars: []string{"SEALEDBID_CONF"},
}

var aliceFlag = &cli.BoolFlag{
	Name:    "alice",
	Aliases: []string{"a"},
	Usage:   "Submit the bid as Alice.",
}

var bobFlag = &cli.BoolFlag{
	Name:    "bob",
	Aliases: []string{"b"},
	Usage:   "Submit the bid as Bob.",
}

var bidFlag = &cli.Uint64Flag{
	Name:  "bid",
	Usage: "The amount to bid. It is secret-shared and never leaves this machine in the clear.",
}

var verboseFlag = &cli.BoolFlag{
	Name:    "verbose",
	Usage:   "If set, verbosity is at the debug level",
	EnvVars: []string{"SEALEDBID_VERBOSE"},
}

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "Log in JSON and print the auction outcome as a JSON object.",
}

var logFileFlag = &cli.StringFlag{
	Name:  "log-file",
	Usage: "File the logs are copied to, overwritten on every run. Set it to an empty string to disable it.",
}

var metricsGatewayFlag = &cli.StringFlag{
	Name:    "metrics-gateway",
	Usage:   "Push the client metrics to this Prometheus push gateway once done.",
	EnvVars: []string{"SEALEDBID_METRICS_GATEWAY"},
}

var progressFlag = &cli.BoolFlag{
	Name:  "progress",
	Usage: "Show a spinner while the servers are computing.",
}

func toArray(flags ...cli.Flag) []cli.Flag {
	return flags
}

// BidCLI returns the auction-bid program.
func BidCLI() *cli.App {
	app := newApp("auction-bid", "submit a sealed bid to the computation servers")
	logFile := *logFileFlag
	logFile.Value = "auction-bid.log"
	app.Flags = toArray(aliceFlag, bobFlag, bidFlag, confFlag, verboseFlag, jsonFlag,
		&logFile, metricsGatewayFlag, progressFlag)
	app.Action = bidCmd
	return app
}

// ResultCLI returns the auction-result program.
func ResultCLI() *cli.App {
	app := newApp("auction-result", "reveal the winner of the sealed-bid auction")
	logFile := *logFileFlag
	logFile.Value = "auction-result.log"
	app.Flags = toArray(confFlag, verboseFlag, jsonFlag, &logFile, metricsGatewayFlag, progressFlag)
	app.Action = resultCmd
	return app
}

func newApp(name, usage string) *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Usage = usage
	app.Version = version
	app.HideHelpCommand = true
	setVersionPrinter.Do(func() {
		cli.VersionPrinter = func(c *cli.Context) {
			fmt.Fprintf(c.App.Writer, "%s %s (date %v, commit %v)\n", c.App.Name, version, buildDate, gitCommit)
		}
	})
	app.ExitErrHandler = func(*cli.Context, error) {
		// the caller decides on the exit code, tests run several apps in one process
	}
	return app
}

func bidCmd(c *cli.Context) error {
	bidder, err := auction.ParseBidder(c.Bool(aliceFlag.Name), c.Bool(bobFlag.Name))
	if err != nil {
		return usageError(c, err)
	}
	if !c.IsSet(bidFlag.Name) {
		return usageError(c, errMissingBid)
	}
	amount := c.Uint64(bidFlag.Name)

	return withSession(c, func(ctx context.Context, l log.Logger, ctrl *controller.Controller) error {
		l.Infow("submitting bid", "bidder", bidder.String(), "program", bidder.Program())
		if err := auction.Bid(ctx, ctrl, bidder, amount); err != nil {
			return err
		}
		l.Infow("bid submitted", "bidder", bidder.String())
		return nil
	})
}

func resultCmd(c *cli.Context) error {
	return withSession(c, func(ctx context.Context, l log.Logger, ctrl *controller.Controller) error {
		outcome, err := auction.Result(ctx, ctrl)
		if err != nil {
			return err
		}
		l.Infow("auction resolved", "winner", outcome.Winner().String(), "winning_bid", outcome.WinningBid)
		return printOutcome(c, outcome)
	})
}

type jsonOutcome struct {
	Winner     string `json:"winner"`
	AliceWon   bool   `json:"aliceWon"`
	WinningBid uint64 `json:"winningBid"`
}

func printOutcome(c *cli.Context, o auction.Outcome) error {
	if !c.Bool(jsonFlag.Name) {
		_, err := fmt.Fprintln(c.App.Writer, o.String())
		return err
	}
	buff, err := json.Marshal(jsonOutcome{
		Winner:     o.Winner().String(),
		AliceWon:   o.AliceWon,
		WinningBid: o.WinningBid,
	})
	if err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(buff))
	return err
}

func usageError(c *cli.Context, err error) error {
	fmt.Fprintf(c.App.ErrWriter, "%s: %v\n\n", c.App.Name, err)
	_ = cli.ShowAppHelp(c)
	return err
}

// withSession sets up logging, opens a controller on the configured quorum,
// runs fn and tears everything down. Failures are logged before being
// returned.
func withSession(c *cli.Context, fn func(context.Context, log.Logger, *controller.Controller) error) error {
	l, closeLog, err := newLogger(c)
	if err != nil {
		return err
	}
	defer closeLog()

	err = runSession(c, l, fn)
	if err != nil {
		auction.LogFailure(l, err)
	}
	if gw := c.String(metricsGatewayFlag.Name); gw != "" {
		if perr := metrics.Push(gw, c.App.Name, nil); perr != nil {
			l.Warnw("pushing metrics", "gateway", gw, "err", perr)
		}
	}
	return err
}

func runSession(c *cli.Context, l log.Logger, fn func(context.Context, log.Logger, *controller.Controller) error) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	tlsConf, err := conf.TLSConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.ToContext(ctx, l)

	ctrl, err := controller.New(ctx, l.Named("controller"), conf, controller.WithTLSConfig(tlsConf))
	if err != nil {
		return fmt.Errorf("connecting to the computation servers: %w", err)
	}
	defer func() {
		if cerr := ctrl.Close(); cerr != nil {
			l.Warnw("closing controller", "err", cerr)
		}
	}()

	if c.Bool(progressFlag.Name) {
		s := spinner.New(spinner.CharSets[9], refreshRate, spinner.WithWriter(c.App.ErrWriter))
		s.Suffix = fmt.Sprintf("  waiting on %d computation servers...", ctrl.NumWorkers())
		s.Start()
		defer s.Stop()
	}
	return fn(ctx, l, ctrl)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if c.IsSet(confFlag.Name) {
		return config.Load(c.String(confFlag.Name))
	}
	return config.LoadDefault()
}

// newLogger logs to the app's error output and, unless disabled, to a fresh
// log file.
func newLogger(c *cli.Context) (log.Logger, func(), error) {
	level := log.InfoLevel
	if c.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	outputs := []zapcore.WriteSyncer{zapcore.AddSync(writer(c.App.ErrWriter))}

	closeFile := func() {}
	if path := c.String(logFileFlag.Name); path != "" {
		f, err := fs.CreateSecureFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating log file %s: %w", path, err)
		}
		outputs = append(outputs, f)
		closeFile = func() { _ = f.Close() }
	}

	l := log.NewTee(level, c.Bool(jsonFlag.Name), outputs...).Named(c.App.Name)
	return l, func() {
		_ = l.Sync()
		closeFile()
	}, nil
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}
