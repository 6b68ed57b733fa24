package main

import (
	"context"
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/txtest/pkg/cli/sh"
	"github.com/robotalks/txtest/pkg/env"
	fx "github.com/robotalks/txtest/pkg/framework"
	"github.com/robotalks/txtest/pkg/joystick"
	"github.com/robotalks/txtest/pkg/sim"
	"github.com/robotalks/txtest/pkg/tx"

	_ "github.com/robotalks/txtest/pkg/cli/cmds/bench"
)

var runShell bool

func init() {
	env.SetupFlags()
	tx.SetupFlags()
	sim.SetupFlags()
	joystick.SetupFlags()
	sh.SetupFlags()
	flag.BoolVar(&runShell, "shell", runShell, "Run the bench shell, diagnostic lines are not printed on stdout.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	txConf := tx.NewConfig()
	if err := txConf.Validate(); err != nil {
		log.Fatalln(err)
	}
	simConf := sim.NewConfig()
	simConf.Counter = txConf.ReceptionCounter
	board, err := simConf.NewBoard()
	if err != nil {
		log.Fatalln(err)
	}

	envConf := env.NewConfig()
	if runShell {
		envConf.Quiet = true
	}
	e := envConf.MustNewEnv()
	defer e.Close()

	ctl := txConf.NewController(board)
	e.Attach(ctl)
	loop := fx.NewLoop(board).Add(board, e, ctl)
	if joyConf := joystick.NewConfig(); joyConf.Enabled {
		feeder, err := joyConf.NewFeeder(board.Sticks)
		if err != nil {
			log.Fatalln(err)
		}
		loop.AddRunnable(feeder)
	}
	glog.Infof("device %s", envConf.Device)

	runner := fx.NewRunner().HandleSignals()
	if runShell {
		ctx, cancel := context.WithCancel(runner.Context)
		runner.GoWith(ctx, loop)
		sh.New(envConf.Device, board, ctl).Run(flag.Args()...)
		cancel()
	} else {
		runner.Go(loop)
	}
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
