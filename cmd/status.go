package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/tminus/tminus/cmd/common"
	"github.com/tminus/tminus/pkg/tminuscli"
	"github.com/urfave/cli"
)

func status(ctx *cli.Context) error {
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
		common.PrintRuntimeErr(ctx, "status", "new_client", err)
		return nil
	}
	defer client.Close()
	st, err := client.Status(hash)
	if err != nil {
		common.PrintRuntimeErr(ctx, "status", "client-status", err)
		return nil
	}
	target := "(unset)"
	if st.TargetAt > 0 {
		target = time.UnixMilli(st.TargetAt).Format("2006-01-02 15:04:05")
	}
	txt := fmt.Sprintf(`
Countdown Info
Name`+"\t\t"+`: %s
Hash`+"\t\t"+`: %s
Target`+"\t\t"+`: %s
Display`+"\t\t"+`: %s
`,
		st.Name,
		st.Hash,
		target,
		st.Display,
	)
	if st.CronExpr != "" {
		txt += fmt.Sprintf("Recurs\t\t: %s\n", st.CronExpr)
	}
	if st.LastError != "" {
		txt += fmt.Sprintf("Warning\t\t: %s\n", st.LastError)
	}
	fmt.Println(txt)
	return nil
}
