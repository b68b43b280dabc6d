// This file is part of Chimeraboy.
//
// Chimeraboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chimeraboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chimeraboy.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/chimeraboy/config"
	"github.com/jetsetilly/chimeraboy/guest"
	"github.com/jetsetilly/chimeraboy/host"
	"github.com/jetsetilly/chimeraboy/logger"
	"github.com/jetsetilly/chimeraboy/notifications"
	"github.com/jetsetilly/chimeraboy/ports/scripted"
	"github.com/jetsetilly/chimeraboy/relay"
	"github.com/jetsetilly/chimeraboy/statsview"
	"github.com/jetsetilly/chimeraboy/version"
)

// echoNotify prints notifications to stdout. used when no relay observer is
// interested
type echoNotify struct{}

func (n echoNotify) Notify(notice notifications.Notice, args ...interface{}) error {
	if len(args) > 0 {
		fmt.Printf("* %s %v\n", notice, args)
	} else {
		fmt.Printf("* %s\n", notice)
	}
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	configFile := flag.String("config", "", "path to session configuration file")
	frames := flag.Int("frames", 3600, "number of frames to step the demonstration scenario")
	echoLog := flag.Bool("log", false, "echo log entries to stderr as they happen")
	stats := flag.Bool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	showVersion := flag.Bool("version", false, "display version information and quit")
	flag.Parse()

	if *showVersion {
		ver, rev, _ := version.Version()
		fmt.Printf("%s (%s)\n", ver, rev)
		return 0
	}

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		statsview.Launch(os.Stderr)
	}

	cfg := config.Default()
	path := *configFile
	if path == "" {
		// fall back to the user's config directory, if a file is there
		if p, err := config.DefaultPath(); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			fmt.Printf("* %v\n", err)
			return 10
		}
	}

	if err := demo(cfg, *frames); err != nil {
		fmt.Printf("* %v\n", err)
		return 10
	}

	return 0
}

// demo drives a scripted battle scenario. until a real emulator core is
// connected through the ports.Port interface this is what the binary is
// for: exercising the whole session against the scripted port and showing
// the event stream an observer would see.
func demo(cfg config.Config, frames int) error {
	notify := notifications.Group{echoNotify{}}

	var rel *relay.Relay
	if cfg.Relay.Bind != "" {
		rel = relay.NewRelay()
		notify = append(notify, rel)

		srv := &http.Server{Addr: cfg.Relay.Bind, Handler: rel.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				logger.Logf(logger.Allow, "relay", "%v", err)
			}
		}()
		defer srv.Close()
		fmt.Printf("* relay listening on %s\n", cfg.Relay.Bind)
	}

	prt := scripted.NewPort()
	hst, err := host.NewHost(prt, cfg, notify)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := hst.Prime(ctx); err != nil {
		return err
	}

	off := guest.Standard()
	if cfg.Guest.BattleActive != 0 {
		off.BattleActive = cfg.Guest.BattleActive
	}

	// script a battle: it begins a second in, the sprite routine runs a
	// second later, and the battle ends a second after that. the scenario
	// then repeats
	scenario := []func(frame int){
		func(frame int) { prt.Poke(off.BattleActive, 2) },
		func(frame int) {
			prt.Poke(off.SpriteRoutineEntry+3, guest.ReturnOpcode)
			prt.ScheduleHalt(uint64(frame)*guest.TicksPerFrame+100, off.SpriteRoutineEntry)
		},
		func(frame int) {
			prt.Poke(off.BattleActive, 0)
			prt.Poke(off.BattleResult, uint8(hst.Session().BattleCount%3))
		},
	}

	const framesPerSecond = 60

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			fmt.Println("* interrupted")
			return nil
		default:
		}

		if i > 0 && i%framesPerSecond == 0 {
			scenario[(i/framesPerSecond-1)%len(scenario)](i)
		}

		hst.AdvanceFrame()

		// the relay is only worth watching at something like guest speed
		if rel != nil {
			time.Sleep(time.Second / framesPerSecond)
		}
	}

	fmt.Printf("* %d battles over %d frames\n", hst.Session().BattleCount, hst.Frame())
	return nil
}
