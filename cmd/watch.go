package cmd

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tminus/tminus/common"
	"github.com/tminus/tminus/pkg/tminuscli"
	"github.com/tminus/tminus/pkg/tminuslib"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	cmdCommon "github.com/tminus/tminus/cmd/common"
)

func watch(ctx *cli.Context) (err error) {
	hash := ctx.Args().First()
	if hash == "" {
		if ctx.Command.Name == "" {
			return cmdCommon.Help(ctx)
		}
		return cmdCommon.PrintErrWithCmdHelp(
			ctx,
			errors.New("no hash provided"),
		)
	} else if hash == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := tminuscli.NewClient()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "watch", "new_client", err)
		return nil
	}
	client.CheckVersionMismatch(currentBuildArgs.Version)
	w, err := client.Watch(hash)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "watch", "client-watch", err)
		return nil
	}
	target := "(unset)"
	if w.TargetAt > 0 {
		target = time.UnixMilli(w.TargetAt).Format("2006-01-02 15:04:05")
	}
	txt := fmt.Sprintf(`
Countdown Info
Name`+"\t\t"+`: %s
Target`+"\t\t"+`: %s
Remaining`+"\t"+`: %s
`,
		w.Name,
		target,
		w.Display,
	)
	fmt.Println(txt)
	p := registerTickHandlers(client, w)
	err = client.Listen()
	p.Wait()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "watch", "listen", err)
		return nil
	}
	return nil
}

// watchRenderer drives the live progress bar from tick updates. The bar
// drains from the remaining time at attach toward the target; a
// recurring countdown gets a fresh bar every time it re-arms.
type watchRenderer struct {
	p       *mpb.Progress
	name    string
	mu      sync.Mutex
	bar     *mpb.Bar
	total   int64
	display string
}

func newWatchRenderer(name string, totalMs int64, display string) *watchRenderer {
	r := &watchRenderer{
		p:       mpb.New(mpb.WithWidth(64)),
		name:    name,
		display: display,
	}
	r.resetBar(totalMs)
	return r
}

func (r *watchRenderer) resetBar(totalMs int64) {
	if totalMs <= 0 {
		totalMs = 1
	}
	r.total = totalMs
	r.bar = cmdCommon.InitCountdownBar(r.p, r.name, totalMs, func() string {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.display
	})
}

func (r *watchRenderer) setDisplay(text string) {
	r.mu.Lock()
	r.display = text
	r.mu.Unlock()
}

func registerTickHandlers(client *tminuscli.Client, w *common.WatchResponse) *mpb.Progress {
	r := newWatchRenderer(w.Name, w.RemainingMs, w.Display)
	recurring := w.CronExpr != ""
	client.Handle(
		common.UPDATE_TICK,
		tminuscli.NewTickHandler("", func(t *common.TickResponse) error {
			if t.Hash != w.Hash {
				return nil
			}
			r.setDisplay(t.Display)
			switch t.Action {
			case common.TickProgress:
				r.bar.SetCurrent(r.total - t.RemainingMs)
			case common.TickElapsed:
				r.bar.SetCurrent(r.total)
				if !recurring {
					r.setDisplay(tminuslib.ElapsedText)
					return tminuscli.ErrDisconnect
				}
			case common.TickRearmed:
				// Old bar has completed; start a fresh one for the
				// next occurrence.
				r.resetBar(t.RemainingMs)
			}
			return nil
		}),
	)
	return r.p
}
