package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Rok93/jwp-dashboard-http/directory"
)

var (
	port     = flag.String("port", "8080", "port number")
	static   = flag.String("static", "static", "directory of html pages")
	origin   = flag.String("origin", "http://localhost:8080", "scheme and host used in redirects")
	store    = flag.String("store", "memory", "user store: memory, postgres or mongo")
	dsn      = flag.String("dsn", "", "postgres connection string or mongo uri")
	mongoDB  = flag.String("mongo-db", "jwp", "mongo database name")
	maxConns = flag.Int("max-conns", 10, "postgres pool size")
	logLevel = flag.String("log-level", "info", "log level")
	pretty   = flag.Bool("pretty", false, "human readable logs")
)

// Accounts present in a fresh memory store.
var defaultUsers = []directory.User{
	{Account: "gugu", Password: "password", Email: "hkkang@woowahan.com"},
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if *pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

func openDirectory(ctx context.Context) (directory.Directory, func(), error) {
	switch *store {
	case "memory":
		return directory.NewMemory(defaultUsers...), func() {}, nil
	case "postgres":
		pg, err := directory.NewPostgres(*dsn, *maxConns)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case "mongo":
		m, err := directory.NewMongo(ctx, *dsn, *mongoDB)
		if err != nil {
			return nil, nil, err
		}
		return m, func() { m.Close(context.Background()) }, nil
	}
	return nil, nil, errors.Errorf("unknown store %q", *store)
}

func serve(ctx context.Context, ln net.Listener, router *Router, log zerolog.Logger) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn().Err(err).Msg("accept error")
			continue
		}
		go NewWorker(ctx, router, log).Start(conn) // worker takes the ownership of |conn|
	}
}

func main() {
	flag.Parse()
	log := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, closeUsers, err := openDirectory(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("store", *store).Msg("failed to open user store")
	}
	defer closeUsers()

	router := NewAppRouter(NewDirLoader(*static), users, *origin)

	ln, err := net.Listen("tcp", ":"+*port)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	color.New(color.FgGreen, color.Bold).Fprintf(os.Stderr, "listening on :%s ", *port)
	color.New(color.FgCyan).Fprintf(os.Stderr, "(store=%s, pages=%s)\n", *store, *static)
	serve(ctx, ln, router, log)
}
