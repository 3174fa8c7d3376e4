package main

import (
	"context"
	"flag"
	"os"

	"github.com/josuelns/authapi/internal/cli"
	"github.com/josuelns/authapi/internal/flagx"
)

func main() {

	serverAddr := flag.String("s", "http://localhost:8080", "server base URL")
	flag.CommandLine.Parse(flagx.FilterArgs(os.Args[1:], []string{"-s"}))

	app := cli.NewApp(*serverAddr)
	app.Run(context.Background())
}
