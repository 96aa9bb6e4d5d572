package main

import "github.com/thereayou/sparks/internal/server"

func main() {
	server.NewServer().Run()
}
