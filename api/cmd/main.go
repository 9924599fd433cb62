package main

import (
	"log"

	api "Yatube/api"

	"github.com/spf13/pflag"
)

func main() {
	var opts api.Options
	pflag.StringVar(&opts.Addr, "addr", "", "listen address (default :$PORT)")
	pflag.BoolVar(&opts.Seed, "seed", false, "reset the database with demo users, groups and posts")
	pflag.BoolVar(&opts.ClearIndexCache, "clear-index-cache", false, "drop cached index pages and exit")
	pflag.Parse()

	if err := api.Run(opts); err != nil {
		log.Fatal(err)
	}
}
