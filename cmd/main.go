package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/config"
	"src.goblgobl.com/ticketgimp/http"
	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/storage"
	"src.goblgobl.com/ticketgimp/ticket"
	"src.goblgobl.com/ticketgimp/tui"
)

const usage = `Usage:
  ticketgimp [flags] serve          http api + refresh loop (default)
  ticketgimp [flags] show           barcode in the terminal
  ticketgimp [flags] token          print the current signed token
  ticketgimp [flags] set <ticket>   store a ticket
  ticketgimp encode --bearer B --ck HEX --ek HEX

Flags:
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var configPath, bearer, customerKey, eventKey string
	var migrations bool

	flagSet := pflag.NewFlagSet("ticketgimp", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "config.json", "full path to config file (.json or .yaml)")
	flagSet.BoolVar(&migrations, "migrations", false, "only run migrations and exit")
	flagSet.StringVar(&bearer, "bearer", "", "encode: bearer id")
	flagSet.StringVar(&customerKey, "ck", "", "encode: customer key, hex")
	flagSet.StringVar(&eventKey, "ek", "", "encode: event key, hex")
	flagSet.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	command := "serve"
	args := flagSet.Args()
	if len(args) > 0 {
		command = args[0]
	}

	// the only command that doesn't need storage
	if command == "encode" {
		return encode(bearer, customerKey, eventKey)
	}

	config, err := config.Configure(configPath)
	if err != nil {
		log.Fatal("load_config", zap.String("path", configPath), zap.Error(err))
		return err
	}
	defer log.Sync()
	defer storage.DB.Close()

	if migrations || config.Migrations == nil || *config.Migrations {
		if err := storage.DB.EnsureMigrations(); err != nil {
			log.Error("ticketgimp_migrations", zap.Error(err))
			return err
		}
	} else {
		log.Info("migrations_skip")
	}

	if migrations {
		return nil
	}

	if err := ticketgimp.Init(config); err != nil {
		log.Error("ticketgimp_init", zap.Error(err))
		return err
	}

	switch command {
	case "serve":
		return serve()
	case "show":
		return tui.Run(ticketgimp.Active, ticketgimp.Barcode)
	case "token":
		state := ticketgimp.Active.Current()
		if state.Status != ticketgimp.StatusReady {
			return fmt.Errorf("no token (%s)", state.Status)
		}
		fmt.Println(state.Text())
		return nil
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("set expects exactly one ticket")
		}
		if err := ticketgimp.Active.Save(args[1]); err != nil {
			return err
		}
		state := ticketgimp.Active.Current()
		fmt.Println(state.Status)
		if state.Err != nil {
			fmt.Fprintln(os.Stderr, state.Err)
		}
		return nil
	}

	flagSet.Usage()
	return fmt.Errorf("unknown command: %s", command)
}

func serve() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stopRefresh := ticketgimp.Refresh(ctx)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- http.Listen()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-listenErr:
	}

	// before storage (deferred in run) goes away
	stopRefresh()
	log.Info("shutdown", zap.Error(err))
	return err
}

func encode(bearer string, customerKeyHex string, eventKeyHex string) error {
	raw := ticket.Encode(bearer, customerKeyHex, eventKeyHex)
	// catches bad hex before anyone tries to use it
	if _, err := ticket.Decode(raw); err != nil {
		return err
	}
	fmt.Println(raw)
	return nil
}
