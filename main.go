package main

import (
	"context"
	"log"
	"os"

	"github.com/dialogs/firebase-messaging/service"
	"github.com/jessevdk/go-flags"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const usage = "usage: send <message.json> | validate <message.json> | " +
	"subscribe <topic> <token>... | unsubscribe <topic> <token>... | info <token>"

var opts struct {
	ConfigLocation string `short:"c" long:"config" description:"Config file location" required:"true"`
	Details        bool   `short:"d" long:"details" description:"Include topic relations in info output"`
}

func main() {

	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		log.Fatal("failed to parse arguments:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to create logger:", err)
	}

	v := viper.New()
	v.SetConfigFile(opts.ConfigLocation)
	if err := v.ReadInConfig(); err != nil {
		log.Fatal("failed to parse config:", err)
	}

	svc, err := service.New(v, logger)
	if err != nil {
		log.Fatal("failed to create service:", err)
	}

	if len(args) == 0 {
		log.Fatal(usage)
	}

	ctx := context.Background()

	switch command, rest := args[0], args[1:]; command {
	case "send":
		if len(rest) != 1 {
			log.Fatal(usage)
		}
		err = svc.Send(ctx, rest[0])

	case "validate":
		if len(rest) != 1 {
			log.Fatal(usage)
		}
		err = svc.Validate(ctx, rest[0])

	case "subscribe":
		if len(rest) < 2 {
			log.Fatal(usage)
		}
		err = svc.Subscribe(ctx, rest[0], rest[1:])

	case "unsubscribe":
		if len(rest) < 2 {
			log.Fatal(usage)
		}
		err = svc.Unsubscribe(ctx, rest[0], rest[1:])

	case "info":
		if len(rest) != 1 {
			log.Fatal(usage)
		}
		err = svc.Info(ctx, rest[0], opts.Details)

	default:
		log.Fatal("unknown command: ", command)
	}

	if err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}
