package cmd

import (
	"errors"
	"fmt"

	"github.com/tminus/tminus/cmd/common"
	"github.com/tminus/tminus/pkg/tminuscli"
	"github.com/urfave/cli"
)

func remove(ctx *cli.Context) error {
	hash := ctx.Args().First()
	if hash == "" {
		return common.PrintErrWithCmdHelp(
			ctx,
			errors.New("no hash provided"),
		)
	} else if hash == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := tminuscli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "remove", "new_client", err)
		return nil
	}
	defer client.Close()
	if _, err := client.Remove(hash); err != nil {
		common.PrintRuntimeErr(ctx, "remove", "client-remove", err)
		return nil
	}
	fmt.Printf("Removed countdown #%s\n", hash)
	return nil
}
