package cmd

import (
	"errors"
	"fmt"

	"github.com/tminus/tminus/cmd/common"
	"github.com/tminus/tminus/pkg/tminuscli"
	"github.com/urfave/cli"
)

var (
	newAtTarget string
	newInTarget string

	targetFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "at, t",
			Usage:       "new target as a date, RFC3339 timestamp, or unix milliseconds",
			Destination: &newAtTarget,
		},
		cli.StringFlag{
			Name:        "in, i",
			Usage:       "new target as a duration relative to now (e.g. 15m, 2h30m)",
			Destination: &newInTarget,
		},
	}
)

func setTarget(ctx *cli.Context) error {
	hash := ctx.Args().First()
	if hash == "" {
		return common.PrintErrWithCmdHelp(
			ctx,
			errors.New("no hash provided"),
		)
	} else if hash == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	target, err := resolveTarget(newAtTarget, newInTarget)
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	client, err := tminuscli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "set-target", "new_client", err)
		return nil
	}
	defer client.Close()
	res, err := client.SetTarget(hash, target)
	if err != nil {
		common.PrintRuntimeErr(ctx, "set-target", "client-set-target", err)
		return nil
	}
	if res.TargetAt == 0 {
		fmt.Printf("Unset target of countdown #%s\n", res.Hash)
		return nil
	}
	fmt.Printf("Moved countdown #%s\n", res.Hash)
	fmt.Println("Time remaining:", res.Display)
	return nil
}
