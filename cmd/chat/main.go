package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"jerkwad-backend/internal/client"
)

func main() {
	url := flag.String("url", "http://localhost:8080/api/chat", "chat endpoint")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := client.NewSession(client.NewHTTPAPI(*url, &http.Client{}))

	fmt.Println("Jerkwad AI -- Don't say I didn't warn you.")
	fmt.Println("Go ahead, ask me something. I dare you.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := scanner.Text()
		if strings.TrimSpace(input) == "" {
			continue
		}

		fmt.Println("Thinking of a mean insult...")
		reply, err := session.Submit(ctx, input)
		if err != nil {
			log.Printf("Error: %v", err)
			continue
		}
		fmt.Println(reply.Text())

		if ctx.Err() != nil {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}
