package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/tminus/tminus/cmd/common"
	"github.com/tminus/tminus/pkg/tminuscli"
	"github.com/tminus/tminus/pkg/tminuslib"
	"github.com/urfave/cli"
)

var (
	showHidden  bool
	showElapsed bool
	showPending bool
	showAll     bool

	lsFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "show-elapsed, c",
			Usage:       "use this flag to list elapsed countdowns (default: false)",
			Destination: &showElapsed,
		},
		cli.BoolTFlag{
			Name:        "show-pending, p",
			Usage:       "use this flag to include pending countdowns (default: true)",
			Destination: &showPending,
		},
		cli.BoolFlag{
			Name:        "show-all, a",
			Usage:       "use this flag to list all countdowns (default: false)",
			Destination: &showAll,
		},
		cli.BoolFlag{
			Name:        "show-hidden, g",
			Usage:       "use this flag to list hidden countdowns (default: false)",
			Destination: &showHidden,
		},
	}
)

func list(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := tminuscli.NewClient()
	if err != nil {
		common.PrintRuntimeErr(ctx, "list", "new_client", err)
		return nil
	}
	defer client.Close()
	l, err := client.List(&tminuscli.ListOpts{
		ShowElapsed: showElapsed || showAll,
		ShowPending: showPending || showAll,
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "list", "get_list", err)
		return nil
	}
	fback := func() error {
		fmt.Println("tminus: no countdowns found")
		return nil
	}
	if len(l.Items) == 0 {
		return fback()
	}
	now := time.Now().UnixMilli()
	txt := "Here are your countdowns:"
	txt += "\n\n--------------------------------------------------------------------"
	txt += "\n|Num|\t         Name         | Unique Hash      |     Remaining     |"
	txt += "\n|---|-------------------------|------------------|-------------------|"
	var i int
	sort.Sort(tminuslib.ItemSlice(l.Items))
	for _, item := range l.Items {
		if !showHidden && item.Hidden {
			continue
		}
		i++
		name := item.Name
		n := len(name)
		switch {
		case n > 23:
			name = name[:20] + "..."
		case n < 23:
			name = common.Beaut(name, 23)
		}
		// Items decoded from the wire carry no manager lock, so the
		// target field is read directly instead of via GetTarget.
		remaining := tminuslib.ElapsedText
		if item.TargetAt > now {
			remaining = tminuslib.FormatDuration(item.TargetAt - now)
		}
		if len(remaining) > 17 {
			remaining = remaining[:14] + "..."
		}
		txt += fmt.Sprintf("\n| %d | %s | %s | %s |", i, name, item.Hash, common.Beaut(remaining, 17))
	}
	if i == 0 {
		return fback()
	}
	txt += "\n--------------------------------------------------------------------"
	fmt.Println(txt)
	return nil
}
