package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tminus/tminus/cmd/common"
	"github.com/tminus/tminus/internal/scheduler"
	"github.com/tminus/tminus/pkg/tminuscli"
	"github.com/urfave/cli"
)

var (
	atTarget string
	inTarget string
	cronExpr string
	hidden   bool

	addFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "at, t",
			Usage:       "target as a date, RFC3339 timestamp, or unix milliseconds",
			Destination: &atTarget,
		},
		cli.StringFlag{
			Name:        "in, i",
			Usage:       "target as a duration relative to now (e.g. 15m, 2h30m)",
			Destination: &inTarget,
		},
		cli.StringFlag{
			Name:        "every, e",
			Usage:       "cron expression to re-arm the countdown after it elapses",
			Destination: &cronExpr,
		},
		cli.BoolFlag{
			Name:        "hidden, g",
			Usage:       "exclude the countdown from default listings",
			Destination: &hidden,
		},
	}
)

// resolveTarget turns the --at/--in flag pair into the target string
// sent to the daemon. The flags are mutually exclusive; --in is
// converted to an absolute unix-millisecond timestamp here so clock
// skew between invocation and daemon handling cannot shift the target.
func resolveTarget(at, in string) (string, error) {
	if at != "" && in != "" {
		return "", errors.New("--at and --in are mutually exclusive")
	}
	if in == "" {
		return at, nil
	}
	d, err := time.ParseDuration(in)
	if err != nil {
		return "", fmt.Errorf("invalid duration %q: %w", in, err)
	}
	if d <= 0 {
		return "", errors.New("duration must be positive")
	}
	return strconv.FormatInt(time.Now().Add(d).UnixMilli(), 10), nil
}

func add(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return common.PrintErrWithCmdHelp(
			ctx,
			errors.New("no name provided"),
		)
	} else if name == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	target, err := resolveTarget(atTarget, inTarget)
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	if cronExpr != "" && !scheduler.IsValidCron(cronExpr) {
		return common.PrintErrWithCmdHelp(
			ctx,
			fmt.Errorf("invalid cron expression: %s", cronExpr),
		)
	}
	client, err := tminuscli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "add", "new_client", err)
		return nil
	}
	defer client.Close()
	client.CheckVersionMismatch(currentBuildArgs.Version)
	res, err := client.Add(name, target, &tminuscli.AddOpts{
		CronExpr: cronExpr,
		IsHidden: hidden,
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "add", "client-add", err)
		return nil
	}
	fmt.Printf("Added countdown %s (#%s)\n", res.Name, res.Hash)
	if res.TargetAt > 0 {
		fmt.Println("Time remaining:", res.Display)
	} else {
		fmt.Println("No target set, use \"tminus set-target\" to arm it.")
	}
	return nil
}
