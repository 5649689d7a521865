package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface. An empty host means all
// interfaces.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the command-line flags shared by the binaries.
//
// Flags:
//
//	-c/-config INI file path (acme.ini)
//	-listen CSE listen address in format [host]:port
//	-http-address public base URL of the CSE
//	-db-type memory, sqlite or postgresql
//	-db-path sqlite database file
//	-db-reset drop all resources on startup
//	-postgres-dsn postgresql connection string
//	-log-level trace, debug, info, warn, error or off
//	-cse-url CSE base URL used by the scheduler
//	-callback-address scheduler callback listen address [host]:port
//	-timezone schedule timezone
//
// Only flags that were explicitly set end up in the returned config, so that
// unset flags never shadow lower priority sources.
func ParseFlags(name string, args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var listen, callbackAddress NetAddress
	var configPath, httpAddress, dbType, dbPath, postgresDSN, logLevel, cseURL, timezone string
	var dbReset bool

	fs.StringVar(&configPath, "c", "", "INI config file path")
	fs.StringVar(&configPath, "config", "", "INI config file path (alias)")
	fs.Var(&listen, "listen", "CSE listen address [host]:port")
	fs.StringVar(&httpAddress, "http-address", "", "Public base URL of the CSE")
	fs.StringVar(&dbType, "db-type", "", "Database type: memory, sqlite or postgresql")
	fs.StringVar(&dbPath, "db-path", "", "SQLite database file")
	fs.BoolVar(&dbReset, "db-reset", false, "Drop all resources on startup")
	fs.StringVar(&postgresDSN, "postgres-dsn", "", "PostgreSQL DSN")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&cseURL, "cse-url", "", "CSE base URL used by the scheduler")
	fs.Var(&callbackAddress, "callback-address", "Scheduler callback address [host]:port")
	fs.StringVar(&timezone, "timezone", "", "Schedule timezone")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &StructuredConfig{
		ConfigFilePath: configPath,
		HTTP: HTTP{
			Address:  httpAddress,
			ListenIF: listen.Host,
			Port:     listen.Port,
		},
		Database: Database{
			Type:        dbType,
			Path:        dbPath,
			PostgresDSN: postgresDSN,
		},
		Logging: Logging{Level: logLevel},
		Scheduler: Scheduler{
			CSEURL:          cseURL,
			CallbackAddress: callbackAddress.String(),
			Timezone:        timezone,
		},
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "db-reset" {
			cfg.Database.ResetOnStartup = &dbReset
		}
	})

	return cfg, nil
}

// String returns host:port, or an empty string for an unset address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host may be empty, "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
