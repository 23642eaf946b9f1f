// Command proxy is the forward HTTP/1.x proxy's entry point: parse the
// port and filter list from argv, wire up the singletons, listen, and
// serve until told to stop. Grounded on original_source/main.c (argument
// parsing) and original_source/server_listener.c (listener + signal setup
// + accept loop).
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Lucretiel/NPproject2/internal/procinit"
	"github.com/Lucretiel/NPproject2/pkg/limits"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "BETTER ARGS PLEASE")
		os.Exit(1)
	}

	port, err := strconv.ParseUint(os.Args[1], 10, 16)
	if err != nil {
		fmt.Fprintln(os.Stderr, "BETTER PORT PLEASE")
		os.Exit(1)
	}

	debug := os.Getenv("PROXY_DEBUG") != ""
	proxy := procinit.New(os.Args[2:], debug)

	ln, err := net.Listen("tcp4", fmt.Sprintf(":%d", port))
	if err != nil {
		fmt.Fprintln(os.Stderr, "listen:", err)
		os.Exit(1)
	}
	if l, ok := ln.(*net.TCPListener); ok {
		defer l.Close()
	}
	_ = limits.ListenBacklog // documented contract; net.Listen has no backlog knob to set directly

	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, syscall.SIGUSR1, syscall.SIGUSR2)
	signal.Ignore(syscall.SIGINT)

	shutdown := make(chan struct{})
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGUSR1:
				proxy.Print.Submit(proxy.Stats.Snapshot().Report())
			case syscall.SIGUSR2:
				close(shutdown)
				ln.Close()
				return
			}
		}
	}()

	acceptLoop(ln, proxy, shutdown)

	proxy.Shutdown()
}

// acceptLoop accepts connections until ln is closed (by the SIGUSR2
// handler) or shutdown is closed, dispatching each to the manager.
func acceptLoop(ln net.Listener, proxy *procinit.Proxy, shutdown <-chan struct{}) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-shutdown:
				return
			default:
				fmt.Fprintln(os.Stderr, "accept:", err)
				return
			}
		}
		proxy.Manager.Spawn(func() {
			proxy.Worker.Handle(conn)
		})
	}
}
