package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

// Tails the security event stream. Requires a token whose roles grant
// security.events.read.
func main() {
	addr := flag.String("addr", "localhost:10000", "API host:port")
	tenantID := flag.Uint("tenant", 0, "Only show attempts against this tenant id")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: websocket_client [-addr host:port] [-tenant id] <JWT_TOKEN>")
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/api/v1/admin/security-events/stream"}
	if *tenantID != 0 {
		u.RawQuery = url.Values{"requested_tenant_id": {fmt.Sprint(*tenantID)}}.Encode()
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+flag.Arg(0))

	fmt.Printf("Connecting to %s...\n", u.String())
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Waiting for security events...")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			fmt.Printf("%s\n", string(message))
		}
	}()

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\nDisconnecting...")
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close:", err)
			return
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
