/*
Fixgod starts fixgo's history service and begins listening for new HTTP
connections.

Usage:

	fixgod [flags]
	fixgod [flags] -l [[ADDRESS]:PORT]

Once started, fixgod accepts authenticated POST /runs submissions, runs each
one through fixgo's engines, and makes the result queryable via GET /runs and
GET /runs/{id} for as long as it keeps running.

If a token secret is not given, one is generated at startup and printed once;
every bearer token issued against it becomes invalid as soon as the server
shuts down. This is fine for local testing but must be set explicitly, via
flag or environment variable, for anything long-lived.

The flags are:

	-v, --version
		Print fixgod's version and exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be ADDRESS:PORT or :PORT. Defaults
		to the FIXGOD_LISTEN_ADDRESS environment variable, then
		"localhost:8080".

	-s, --secret TOKEN_SECRET
		Secret used to sign bearer tokens, repeated until at least 32 bytes
		and truncated past 64. Defaults to FIXGOD_TOKEN_SECRET, then a
		randomly generated secret.

	--db DRIVER[:PARAMS]
		Run-history store connection string: "inmem" or "sqlite:PATH".
		Defaults to FIXGOD_DATABASE, then "inmem".

	--issue-token SUBJECT
		Print a bearer token labeled SUBJECT, signed with the resolved
		secret, then exit without starting the server. Useful for handing a
		CI job a token out of band.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/dekarrin/fixgo/internal/version"
	"github.com/dekarrin/fixgo/server"
)

const (
	EnvListen = "FIXGOD_LISTEN_ADDRESS"
	EnvSecret = "FIXGOD_TOKEN_SECRET"
	EnvDB     = "FIXGOD_DATABASE"
)

var (
	flagVersion    = pflag.BoolP("version", "v", false, "Print fixgod's version and exit.")
	flagListen     = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret     = pflag.StringP("secret", "s", "", "Use the given secret for signing bearer tokens.")
	flagDB         = pflag.String("db", "", "Run-history store connection string.")
	flagIssueToken = pflag.String("issue-token", "", "Print a bearer token for SUBJECT and exit.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("fixgod %s (fixgo %s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}

	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr == "" {
		dbConnStr = "inmem"
	}
	db, err := server.ParseDBConnString(dbConnStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err)
		os.Exit(1)
	}

	secret := resolveSecret()

	cfg := server.Config{TokenSecret: secret, DB: db}
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err)
	}
	defer srv.Close()

	if *flagIssueToken != "" {
		tok, err := srv.IssueToken(*flagIssueToken, 24*time.Hour)
		if err != nil {
			log.Fatalf("FATAL could not issue token: %s", err)
		}
		fmt.Println(tok)
		return
	}

	log.Printf("INFO  Starting fixgod %s on %s (db: %s)...", version.ServerCurrent, listenAddr, db.Type)
	if err := srv.ServeForever(listenAddr); err != nil {
		log.Fatalf("FATAL %s", err)
	}
}

func resolveSecret() []byte {
	secretStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		secretStr = *flagSecret
	}
	if secretStr == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err)
			os.Exit(1)
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return secret
	}

	secret := []byte(secretStr)
	for len(secret) < 32 {
		secret = append(secret, secret...)
	}
	if len(secret) > 64 {
		secret = secret[:64]
	}
	return secret
}
