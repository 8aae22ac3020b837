package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/unosim/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	flag.Parse()

	srv := web.NewServer()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("unosim API listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
